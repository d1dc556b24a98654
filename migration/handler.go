package migration

import (
	"fmt"

	"github.com/iov-one/versioned"
	"github.com/iov-one/versioned/codec"
	"github.com/iov-one/versioned/errors"
)

// Handler owns a single schema version of a data family. It knows how to
// decode text into the shape of that version and how to create that shape
// from the shape of the immediately preceding version.
type Handler interface {
	// TypeName returns the identity of the data family this handler
	// belongs to.
	TypeName() string

	// SchemaVersion returns the schema version owned by this handler.
	SchemaVersion() uint32

	// MigrateFromPrevious returns a new record of this handler version,
	// created from a record of the preceding version. Handler of the first
	// schema version panics, because there is no prior version to migrate
	// from.
	MigrateFromPrevious(prev versioned.Record) (versioned.Record, error)

	// Decode deserializes raw text into the shape of this handler version.
	Decode(f codec.Format, raw []byte) (versioned.Record, error)
}

// Initial returns a handler for the first schema version of a data family,
// represented by T.
func Initial[T versioned.Record]() Handler {
	return &initialHandler[T]{
		shape: shape[T]{
			typeName: versioned.TypeNameOf[T](),
			version:  versioned.SchemaVersionOf[T](),
		},
	}
}

type initialHandler[T versioned.Record] struct {
	shape[T]
}

func (h *initialHandler[T]) MigrateFromPrevious(prev versioned.Record) (versioned.Record, error) {
	err := errors.Wrapf(errors.ErrHuman, "%s: no schema version before %d", h.typeName, h.version)
	panic(err)
}

// Upgrade returns a handler for the schema version represented by T, that
// creates T out of the preceding version P using given function.
//
// Both P and T must belong to the same data family. This function panics
// otherwise, as it is always a programming mistake.
func Upgrade[P, T versioned.Record](migrate func(P) (T, error)) Handler {
	from := versioned.TypeNameOf[P]()
	to := versioned.TypeNameOf[T]()
	if from != to {
		panic(errors.Wrapf(errors.ErrHuman, "cannot upgrade %s to %s", from, to))
	}
	return &upgradeHandler[P, T]{
		shape: shape[T]{
			typeName: to,
			version:  versioned.SchemaVersionOf[T](),
		},
		migrate: migrate,
	}
}

type upgradeHandler[P, T versioned.Record] struct {
	shape[T]
	migrate func(P) (T, error)
}

func (h *upgradeHandler[P, T]) MigrateFromPrevious(prev versioned.Record) (versioned.Record, error) {
	p, ok := prev.(P)
	if !ok {
		var want P
		return nil, errors.Wrapf(errors.ErrType, "%s version %d migrates from %T, got %T", h.typeName, h.version, want, prev)
	}
	next, err := h.migrate(p)
	if err != nil {
		return nil, err
	}
	return next, nil
}

// shape implements the version bookkeeping and decoding common to all
// handlers of T.
type shape[T versioned.Record] struct {
	typeName string
	version  uint32
}

func (s shape[T]) TypeName() string {
	return s.typeName
}

func (s shape[T]) SchemaVersion() uint32 {
	return s.version
}

func (s shape[T]) Decode(f codec.Format, raw []byte) (versioned.Record, error) {
	var rec T
	if err := f.Unmarshal(raw, &rec); err != nil {
		return nil, errors.Wrapf(err, "decode %s version %d", s.typeName, s.version)
	}
	return rec, nil
}

func (s shape[T]) String() string {
	return fmt.Sprintf("%s:%d", s.typeName, s.version)
}
