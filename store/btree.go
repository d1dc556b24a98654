package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree
	DefaultFreeListSize = btree.DefaultFreeListSize

	degree = 2
)

// MemStore returns a btree backed, in memory store. There is no persistence
// here. It is safe to use returned store from multiple goroutines.
func MemStore() *BTreeStore {
	return &BTreeStore{
		bt: btree.NewWithFreeList(degree, btree.NewFreeList(DefaultFreeListSize)),
	}
}

// BTreeStore keeps all data sorted by key in memory.
type BTreeStore struct {
	mu sync.RWMutex
	bt *btree.BTree
}

var _ KVStore = (*BTreeStore)(nil)

// Get reads from the btree.
func (b *BTreeStore) Get(key []byte) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	res := b.bt.Get(bkey{key})
	if res == nil {
		return nil, nil
	}
	return copyBytes(res.(setItem).value), nil
}

// Has reads from the btree.
func (b *BTreeStore) Has(key []byte) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.bt.Has(bkey{key}), nil
}

// Set writes to the btree.
func (b *BTreeStore) Set(key, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bt.ReplaceOrInsert(newSetItem(copyBytes(key), append([]byte{}, value...)))
	return nil
}

// Delete deletes from the btree.
func (b *BTreeStore) Delete(key []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.bt.Delete(bkey{key})
	return nil
}

// Iterator over a domain of keys in ascending order.
func (b *BTreeStore) Iterator(start, end []byte) (Iterator, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var data []Model
	collect := func(item btree.Item) bool {
		it := item.(setItem)
		data = append(data, Model{Key: copyBytes(it.key), Value: copyBytes(it.value)})
		return true
	}

	if start == nil && end == nil {
		b.bt.Ascend(collect)
	} else if start == nil { // end != nil
		b.bt.AscendLessThan(bkey{end}, collect)
	} else if end == nil { // start != nil
		b.bt.AscendGreaterOrEqual(bkey{start}, collect)
	} else { // both != nil
		b.bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return NewSliceIterator(data), nil
}

/////////////////////////////////////////////////////////
// Items to write to btree

// we enforce all data in our btree implements keyer so we
// can compare nicely
type keyer interface {
	Key() []byte
}

// bkey implements keyer and btree.Item
// and may be used for queries or embedded in data to store
type bkey struct {
	key []byte
}

var _ keyer = bkey{}
var _ btree.Item = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff second argument is greater than first
//
// panics if the item to compare doesn't implement keyer.
func (k bkey) Less(item btree.Item) bool {
	cmp := item.(keyer).Key()
	return bytes.Compare(k.key, cmp) < 0
}

type setItem struct {
	bkey
	value []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{bkey{key}, value}
}
