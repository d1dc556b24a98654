package migration

import (
	"testing"

	"github.com/iov-one/versioned/codec"
	"github.com/iov-one/versioned/errors"
	"github.com/iov-one/versioned/store"
	"github.com/iov-one/versioned/versionedtest/assert"
)

func TestBucketPutGet(t *testing.T) {
	c, _ := newTestCodec(t, codec.JSON)
	db := store.MemStore()
	b := NewBucket[myMsg]("msgs", c)

	want := myMsg{Words: []string{"a"}, Count: 1}
	assert.Nil(t, b.Put(db, []byte("one"), want))

	got, err := b.Get(db, []byte("one"))
	assert.Nil(t, err)
	assert.Equal(t, want, got)

	// Records are namespaced by the bucket name.
	raw, err := db.Get([]byte("msgs:one"))
	assert.Nil(t, err)
	ver, err := codec.JSON.SchemaVersion(raw)
	assert.Nil(t, err)
	assert.Equal(t, uint32(3), ver)

	_, err = b.Get(db, []byte("two"))
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.IsErr(t, errors.ErrInput, b.Put(db, nil, want))

	assert.Nil(t, b.Delete(db, []byte("one")))
	_, err = b.Get(db, []byte("one"))
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestBucketMigratesOnGet(t *testing.T) {
	c, _ := newTestCodec(t, codec.JSON)
	db := store.MemStore()
	b := NewBucket[myMsg]("msgs", c)

	stored := []byte(`{"content": "legacy data", "schemaVersion": 1}`)
	assert.Nil(t, db.Set([]byte("msgs:old"), stored))

	got, err := b.Get(db, []byte("old"))
	assert.Nil(t, err)
	assert.Equal(t, myMsg{Words: []string{"legacy", "data"}, Count: -1}, got)

	// Reading does not modify the stored data.
	raw, err := db.Get([]byte("msgs:old"))
	assert.Nil(t, err)
	assert.Equal(t, string(stored), string(raw))
}

func TestBucketUpgrade(t *testing.T) {
	c, _ := newTestCodec(t, codec.JSON)
	db := store.MemStore()
	b := NewBucket[myMsg]("msgs", c)
	other := NewBucket[otherMsg]("others", c)

	assert.Nil(t, db.Set([]byte("msgs:a"), []byte(`{"content": "x", "schemaVersion": 1}`)))
	assert.Nil(t, db.Set([]byte("msgs:b"), []byte(`{"content": "y", "count": 3, "schemaVersion": 2}`)))
	assert.Nil(t, b.Put(db, []byte("c"), myMsg{Words: []string{"z"}, Count: 4}))
	assert.Nil(t, other.Put(db, []byte("a"), otherMsg{Name: "untouched"}))

	current, err := db.Get([]byte("msgs:c"))
	assert.Nil(t, err)
	untouched, err := db.Get([]byte("others:a"))
	assert.Nil(t, err)

	n, err := b.Upgrade(db)
	assert.Nil(t, err)
	assert.Equal(t, 2, n)

	for _, key := range []string{"msgs:a", "msgs:b", "msgs:c"} {
		raw, err := db.Get([]byte(key))
		assert.Nil(t, err)
		ver, err := codec.JSON.SchemaVersion(raw)
		assert.Nil(t, err)
		assert.Equal(t, uint32(3), ver)
	}

	// Records of the current version are not rewritten.
	raw, err := db.Get([]byte("msgs:c"))
	assert.Nil(t, err)
	assert.Equal(t, string(current), string(raw))

	// Other buckets are not affected.
	raw, err = db.Get([]byte("others:a"))
	assert.Nil(t, err)
	assert.Equal(t, string(untouched), string(raw))

	// Running an upgrade again is a no-op.
	n, err = b.Upgrade(db)
	assert.Nil(t, err)
	assert.Equal(t, 0, n)

	keys, err := b.Keys(db)
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, keys)
}

func TestBucketUpgradeFailure(t *testing.T) {
	c, _ := newTestCodec(t, codec.JSON)
	db := store.MemStore()
	b := NewBucket[myMsg]("msgs", c)

	assert.Nil(t, db.Set([]byte("msgs:a"), []byte(`{"content": "ok", "schemaVersion": 1}`)))
	assert.Nil(t, db.Set([]byte("msgs:b"), []byte(`{"content": "fail", "schemaVersion": 1}`)))

	n, err := b.Upgrade(db)
	assert.IsErr(t, errors.ErrInput, err)
	assert.Equal(t, 1, n)

	// The record processed before the failure remains upgraded.
	raw, err := db.Get([]byte("msgs:a"))
	assert.Nil(t, err)
	ver, err := codec.JSON.SchemaVersion(raw)
	assert.Nil(t, err)
	assert.Equal(t, uint32(3), ver)
}

func TestBucketWithBoltStore(t *testing.T) {
	c, _ := newTestCodec(t, codec.YAML)
	db, err := store.OpenBolt(t.TempDir()+"/records.db", "records")
	assert.Nil(t, err)
	defer db.Close()

	b := NewBucket[myMsg]("msgs", c)
	assert.Nil(t, db.Set([]byte("msgs:a"), []byte("content: from disk\nschemaVersion: 1\n")))

	n, err := b.Upgrade(db)
	assert.Nil(t, err)
	assert.Equal(t, 1, n)

	got, err := b.Get(db, []byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, myMsg{Words: []string{"from", "disk"}, Count: -1}, got)
}
