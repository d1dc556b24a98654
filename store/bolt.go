package store

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/versioned/errors"
	bolt "go.etcd.io/bbolt"
)

// BoltStore is a KVStore persisting data in a single bucket of a bolt
// database file.
type BoltStore struct {
	db     *bolt.DB
	bucket []byte
}

var _ KVStore = (*BoltStore)(nil)

// OpenBolt opens or creates a bolt database file at given path and ensures
// given bucket exists. Opening a file that is locked by another process fails
// after one second.
func OpenBolt(path string, bucket string) (*BoltStore, error) {
	if bucket == "" {
		return nil, errors.Wrap(errors.ErrInput, "bucket name is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create directory for %s: %s", path, err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %s: %s", path, err)
	}
	name := []byte(bucket)
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	}); err != nil {
		db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create bucket %q: %s", bucket, err)
	}
	return &BoltStore{db: db, bucket: name}, nil
}

// Close releases the database file.
func (s *BoltStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Get returns a copy of the value stored under given key.
func (s *BoltStore) Get(key []byte) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Values returned by bolt are valid only during the transaction.
		if v := tx.Bucket(s.bucket).Get(key); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return value, nil
}

// Has checks if a key exists.
func (s *BoltStore) Has(key []byte) (bool, error) {
	v, err := s.Get(key)
	return v != nil, err
}

// Set stores the value under given key.
func (s *BoltStore) Set(key, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(key, append([]byte{}, value...))
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes given key.
func (s *BoltStore) Delete(key []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete(key)
	})
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Iterator over a domain of keys in ascending order.
func (s *BoltStore) Iterator(start, end []byte) (Iterator, error) {
	var data []Model
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil; k, v = c.Next() {
			if end != nil && bytes.Compare(k, end) >= 0 {
				break
			}
			data = append(data, Model{
				Key:   append([]byte{}, k...),
				Value: append([]byte{}, v...),
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return NewSliceIterator(data), nil
}
