package store

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid. A nil start
	// or end means the domain is not bounded on that side.
	Iterator(start, end []byte) (Iterator, error)
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Empty key is not allowed.
	Set(key, value []byte) error

	// Delete deletes the key. Deleting a key that does not exist is not
	// an error.
	Delete(key []byte) error
}

// Iterator allows us to access a set of items within a range of keys. The
// iterated data is a snapshot taken when the iterator was created and it is
// not affected by writes done after that. It is safe to modify the store
// while iterating.
//
// Usage:
//
//	for it := kv.Iterator(start, end); it.Valid(); it.Next() {
//		key := it.Key()
//		value := it.Value()
//		// ...
//	}
type Iterator interface {
	// Valid returns whether the current position is valid.
	// Once invalid, an Iterator is forever invalid.
	Valid() bool

	// Next moves the iterator to the next sequential key in the database, as
	// defined by order of iteration.
	//
	// If Valid returns false, this method will panic.
	Next() error

	// Key returns the key of the cursor.
	// If Valid returns false, this method will panic.
	Key() (key []byte)

	// Value returns the value of the cursor.
	// If Valid returns false, this method will panic.
	Value() (value []byte)

	// Close releases the Iterator.
	Close()
}

// Model groups together key and value to return.
type Model struct {
	Key   []byte
	Value []byte
}
