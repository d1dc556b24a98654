package migration

import (
	"github.com/iov-one/versioned"
	"github.com/iov-one/versioned/codec"
	"github.com/iov-one/versioned/errors"
)

// Codec serializes records using a text format and deserializes them back,
// migrating to the current schema version on the way.
type Codec struct {
	registry *Registry
	format   codec.Format
}

// NewCodec returns a codec using given registry to decode and migrate
// records serialized in given format.
func NewCodec(r *Registry, f codec.Format) *Codec {
	return &Codec{registry: r, format: f}
}

// Registry returns the registry used by this codec.
func (c *Codec) Registry() *Registry {
	return c.registry
}

// Format returns the text format used by this codec.
func (c *Codec) Format() codec.Format {
	return c.format
}

// Encode serializes given record, of any schema version, together with its
// schema version. No migration is applied.
func (c *Codec) Encode(rec versioned.Record) ([]byte, error) {
	if rec == nil {
		return nil, errors.Wrap(errors.ErrInput, "nil record")
	}
	raw, err := c.format.Marshal(rec, rec.SchemaVersion())
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s version %d", rec.TypeName(), rec.SchemaVersion())
	}
	return raw, nil
}

// Decode deserializes raw text into the current schema version shape T.
//
// Text is decoded using the handler of the schema version declared by the
// text. Text that does not declare a version is considered to be of the
// current version. Decoded record is migrated to the current version.
func Decode[T versioned.Record](c *Codec, raw []byte) (T, error) {
	var zero T
	rec, err := c.decode(zero.TypeName(), raw)
	if err != nil {
		return zero, err
	}
	current, err := MigrateToCurrent[T](c.registry, rec)
	if err != nil {
		c.registry.metrics.observeDecodeFailure(zero.TypeName())
		return zero, err
	}
	return current, nil
}

// DecodeAny deserializes raw text into the current schema version of the data
// family with given name. Use it when the data family is known only during
// the runtime, otherwise use Decode.
func (c *Codec) DecodeAny(typeName string, raw []byte) (versioned.Record, error) {
	rec, err := c.decode(typeName, raw)
	if err != nil {
		return nil, err
	}
	current, err := migrate(c.registry, rec)
	if err != nil {
		c.registry.metrics.observeDecodeFailure(typeName)
		return nil, err
	}
	return current, nil
}

// SchemaVersion returns the schema version of a record serialized in given
// text. Text that does not declare a version is considered to be of the
// current version.
func (c *Codec) SchemaVersion(typeName string, raw []byte) (uint32, error) {
	version, err := c.format.SchemaVersion(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "%s schema version", typeName)
	}
	if version == 0 {
		return c.registry.CurrentVersion(typeName)
	}
	return version, nil
}

// decode returns the record serialized in given text, as declared by the
// text. No migration is applied.
func (c *Codec) decode(typeName string, raw []byte) (versioned.Record, error) {
	current, err := c.registry.CurrentVersion(typeName)
	if err != nil {
		return nil, err
	}
	version, err := c.format.SchemaVersion(raw)
	if err != nil {
		c.registry.metrics.observeDecodeFailure(typeName)
		return nil, errors.Wrapf(err, "%s schema version", typeName)
	}
	if version == 0 {
		// Data written before the schema versioning was introduced is
		// always of the current version.
		version = current
	}

	h, ok := c.registry.Lookup(typeName, version)
	if !ok {
		c.registry.logger.Error("handler not found", "type", typeName, "version", version)
		c.registry.metrics.observeDecodeFailure(typeName)
		return nil, errors.Wrapf(errors.ErrSchema, "%s: no handler for version %d", typeName, version)
	}
	rec, err := h.Decode(c.format, raw)
	if err != nil {
		c.registry.metrics.observeDecodeFailure(typeName)
		return nil, err
	}
	return rec, nil
}

// Clone returns a deep copy of given record, migrated to the current schema
// version. The copy is created by encoding and decoding the record.
func Clone[T versioned.Record](c *Codec, rec versioned.Record) (T, error) {
	var zero T
	raw, err := c.Encode(rec)
	if err != nil {
		return zero, errors.Wrap(err, "clone")
	}
	return Decode[T](c, raw)
}
