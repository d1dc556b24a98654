package migration

import (
	"github.com/iov-one/versioned"
	"github.com/iov-one/versioned/errors"
	"github.com/iov-one/versioned/store"
)

// Bucket is a storage of records of a single data family, that migrates
// records on the fly, before returning them to the user. Records are stored as
// text, encoded by the codec, under keys prefixed with the bucket name.
//
// Records written to the bucket are always of the current schema version.
// Records persisted using an older schema version are returned migrated but
// not updated in the store, until Upgrade is called.
type Bucket[T versioned.Record] struct {
	name   string
	prefix []byte
	codec  *Codec
}

// NewBucket returns a bucket using given name as the key namespace. T must be
// the shape of the current version of the data family.
func NewBucket[T versioned.Record](name string, c *Codec) *Bucket[T] {
	return &Bucket[T]{
		name:   name,
		prefix: []byte(name + ":"),
		codec:  c,
	}
}

// Name returns the name of this bucket.
func (b *Bucket[T]) Name() string {
	return b.name
}

func (b *Bucket[T]) dbKey(key []byte) []byte {
	k := make([]byte, 0, len(b.prefix)+len(key))
	k = append(k, b.prefix...)
	return append(k, key...)
}

// Get returns the record stored under given key, migrated to the current
// schema version. It returns ErrNotFound if no record is stored under the key.
func (b *Bucket[T]) Get(db store.ReadOnlyKVStore, key []byte) (T, error) {
	var zero T
	raw, err := db.Get(b.dbKey(key))
	if err != nil {
		return zero, errors.Wrap(err, "get")
	}
	if raw == nil {
		return zero, errors.Wrapf(errors.ErrNotFound, "%s %q", b.name, key)
	}
	rec, err := Decode[T](b.codec, raw)
	if err != nil {
		return zero, errors.Wrapf(err, "%s %q", b.name, key)
	}
	return rec, nil
}

// Put stores given record under given key.
func (b *Bucket[T]) Put(db store.KVStore, key []byte, rec T) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	raw, err := b.codec.Encode(rec)
	if err != nil {
		return errors.Wrap(err, "encode")
	}
	if err := db.Set(b.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "set")
	}
	return nil
}

// Delete removes the record stored under given key. Deleting a key that does
// not exist is not an error.
func (b *Bucket[T]) Delete(db store.KVStore, key []byte) error {
	if err := db.Delete(b.dbKey(key)); err != nil {
		return errors.Wrap(err, "delete")
	}
	return nil
}

// Keys returns all keys of records stored in this bucket, in ascending order.
func (b *Bucket[T]) Keys(db store.ReadOnlyKVStore) ([][]byte, error) {
	start, end := store.PrefixRange(b.prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	defer it.Close()

	var keys [][]byte
	for it.Valid() {
		keys = append(keys, it.Key()[len(b.prefix):])
		if err := it.Next(); err != nil {
			return nil, errors.Wrap(err, "iterator next")
		}
	}
	return keys, nil
}

// Upgrade rewrites all records stored using an older schema version, so that
// they are persisted using the current schema version. It returns the number
// of rewritten records. Records that are of the current version are not
// modified.
//
// Upgrade stops on the first record that cannot be migrated. Records
// rewritten before that remain upgraded.
func (b *Bucket[T]) Upgrade(db store.KVStore) (int, error) {
	typeName := versioned.TypeNameOf[T]()
	current, err := b.codec.Registry().CurrentVersion(typeName)
	if err != nil {
		return 0, err
	}

	start, end := store.PrefixRange(b.prefix)
	it, err := db.Iterator(start, end)
	if err != nil {
		return 0, errors.Wrap(err, "iterator")
	}
	defer it.Close()

	logger := b.codec.Registry().logger.With("bucket", b.name)
	var upgraded int
	for ; it.Valid(); it.Next() {
		key, raw := it.Key()[len(b.prefix):], it.Value()
		version, err := b.codec.SchemaVersion(typeName, raw)
		if err != nil {
			return upgraded, errors.Wrapf(err, "%s %q", b.name, key)
		}
		if version == current {
			continue
		}

		rec, err := Decode[T](b.codec, raw)
		if err != nil {
			return upgraded, errors.Wrapf(err, "%s %q", b.name, key)
		}
		if err := b.Put(db, key, rec); err != nil {
			return upgraded, errors.Wrapf(err, "%s %q", b.name, key)
		}
		logger.Debug("record upgraded", "key", string(key), "from", version, "to", current)
		upgraded++
	}
	logger.Info("bucket upgraded", "type", typeName, "records", upgraded)
	return upgraded, nil
}
