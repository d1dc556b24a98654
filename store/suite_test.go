package store

import (
	"testing"

	"github.com/iov-one/versioned/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreConstructor returns a new, empty store to be tested by the backend
// suite and a function releasing it.
type testStoreConstructor func(t *testing.T) (kv KVStore, cleanup func())

// runBackendSuite runs all tests that every KVStore implementation must pass.
func runBackendSuite(t *testing.T, makeStore testStoreConstructor) {
	tests := map[string]func(*testing.T, KVStore){
		"get set":           testGetSet,
		"delete":            testDelete,
		"empty key":         testEmptyKey,
		"empty value":       testEmptyValue,
		"iterator ranges":   testIteratorRanges,
		"iterator prefix":   testIteratorPrefix,
		"iterator snapshot": testIteratorSnapshot,
	}
	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			kv, cleanup := makeStore(t)
			defer cleanup()
			fn(t, kv)
		})
	}
}

func assertGetHas(t *testing.T, kv ReadOnlyKVStore, key, want []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	exists, err := kv.Has(key)
	require.NoError(t, err)
	assert.Equal(t, has, exists)
}

func testGetSet(t *testing.T, kv KVStore) {
	k, v := []byte("french"), []byte("fry")
	assertGetHas(t, kv, k, nil, false)
	require.NoError(t, kv.Set(k, v))
	assertGetHas(t, kv, k, v, true)

	// Overwrite.
	v2 := []byte("toast")
	require.NoError(t, kv.Set(k, v2))
	assertGetHas(t, kv, k, v2, true)

	// Returned value must be a copy.
	got, err := kv.Get(k)
	require.NoError(t, err)
	got[0] = 'X'
	assertGetHas(t, kv, k, v2, true)
}

func testDelete(t *testing.T, kv KVStore) {
	k, v := []byte("LA"), []byte("Dodgers")
	require.NoError(t, kv.Set(k, v))
	require.NoError(t, kv.Delete(k))
	assertGetHas(t, kv, k, nil, false)

	// Deleting a missing key is not an error.
	require.NoError(t, kv.Delete([]byte("missing")))
}

func testEmptyKey(t *testing.T, kv KVStore) {
	assert.True(t, errors.ErrInput.Is(kv.Set(nil, []byte("x"))))
	assert.True(t, errors.ErrInput.Is(kv.Delete([]byte{})))
	_, err := kv.Get(nil)
	assert.True(t, errors.ErrInput.Is(err))
}

func testEmptyValue(t *testing.T, kv KVStore) {
	k := []byte("empty")
	require.NoError(t, kv.Set(k, nil))
	assertGetHas(t, kv, k, []byte{}, true)
}

func collect(t *testing.T, kv ReadOnlyKVStore, start, end []byte) []string {
	t.Helper()
	it, err := kv.Iterator(start, end)
	require.NoError(t, err)
	defer it.Close()

	var keys []string
	for ; it.Valid(); require.NoError(t, it.Next()) {
		keys = append(keys, string(it.Key())+"="+string(it.Value()))
	}
	return keys
}

func testIteratorRanges(t *testing.T, kv KVStore) {
	for _, k := range []string{"c", "a", "e", "b", "d"} {
		require.NoError(t, kv.Set([]byte(k), []byte("v"+k)))
	}

	cases := map[string]struct {
		start, end []byte
		want       []string
	}{
		"unbounded": {
			want: []string{"a=va", "b=vb", "c=vc", "d=vd", "e=ve"},
		},
		"start only": {
			start: []byte("c"),
			want:  []string{"c=vc", "d=vd", "e=ve"},
		},
		"end only is exclusive": {
			end:  []byte("c"),
			want: []string{"a=va", "b=vb"},
		},
		"both": {
			start: []byte("b"),
			end:   []byte("d"),
			want:  []string{"b=vb", "c=vc"},
		},
		"empty domain": {
			start: []byte("x"),
			end:   []byte("z"),
			want:  nil,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, collect(t, kv, tc.start, tc.end))
		})
	}
}

func testIteratorPrefix(t *testing.T, kv KVStore) {
	for _, k := range []string{"item:1", "item:2", "itemz", "other:1"} {
		require.NoError(t, kv.Set([]byte(k), []byte("x")))
	}
	start, end := PrefixRange([]byte("item:"))
	assert.Equal(t, []string{"item:1=x", "item:2=x"}, collect(t, kv, start, end))
}

func testIteratorSnapshot(t *testing.T, kv KVStore) {
	require.NoError(t, kv.Set([]byte("a"), []byte("1")))
	require.NoError(t, kv.Set([]byte("b"), []byte("2")))

	it, err := kv.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Close()

	// Writes done while iterating are not visible to the iterator.
	for ; it.Valid(); require.NoError(t, it.Next()) {
		require.NoError(t, kv.Set(it.Key(), []byte("updated")))
		require.NoError(t, kv.Set([]byte("c"), []byte("3")))
		assert.NotEqual(t, "updated", string(it.Value()))
	}
	assert.Equal(t, []string{"a=updated", "b=updated", "c=3"}, collect(t, kv, nil, nil))
}

func TestPrefixRange(t *testing.T) {
	cases := map[string]struct {
		prefix    []byte
		wantStart []byte
		wantEnd   []byte
	}{
		"nil prefix": {},
		"simple": {
			prefix:    []byte("ab"),
			wantStart: []byte("ab"),
			wantEnd:   []byte("ac"),
		},
		"trailing max byte": {
			prefix:    []byte{'a', 0xff},
			wantStart: []byte{'a', 0xff},
			wantEnd:   []byte{'b'},
		},
		"all max bytes": {
			prefix:    []byte{0xff, 0xff},
			wantStart: []byte{0xff, 0xff},
			wantEnd:   nil,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			start, end := PrefixRange(tc.prefix)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}
