package migration

import (
	"testing"

	"github.com/iov-one/versioned"
	"github.com/iov-one/versioned/errors"
	"github.com/iov-one/versioned/versionedtest/assert"
)

func TestMigrateToCurrent(t *testing.T) {
	reg := MustNewRegistry(allHandlers())

	cases := map[string]struct {
		rec  versioned.Record
		want myMsg
	}{
		"from the first version": {
			rec:  myMsgV1{Content: "init to2"},
			want: myMsg{Words: []string{"init", "to2"}, Count: -1},
		},
		"from the second version": {
			rec:  myMsgV2{Content: "a", Count: 7},
			want: myMsg{Words: []string{"a"}, Count: 7},
		},
		"current version is not modified": {
			rec:  myMsg{Words: []string{"keep"}, Count: 3},
			want: myMsg{Words: []string{"keep"}, Count: 3},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := MigrateToCurrent[myMsg](reg, tc.rec)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, uint32(3), got.SchemaVersion())
		})
	}
}

func TestMigrationStepsAreSelfConsistent(t *testing.T) {
	reg := MustNewRegistry(allHandlers())

	for _, name := range reg.Types() {
		current, err := reg.CurrentVersion(name)
		assert.Nil(t, err)
		for v := uint32(1); v <= current; v++ {
			h, ok := reg.Lookup(name, v)
			if !ok {
				t.Fatalf("%s: no handler for version %d", name, v)
			}
			if h.TypeName() != name || h.SchemaVersion() != v {
				t.Fatalf("%s: handler %d declares %s:%d", name, v, h.TypeName(), h.SchemaVersion())
			}
		}
	}

	// Each step produces a record of exactly the next version.
	var rec versioned.Record = myMsgV1{Content: "a"}
	for v := uint32(2); v <= 3; v++ {
		h, _ := reg.Lookup("my", v)
		next, err := h.MigrateFromPrevious(rec)
		assert.Nil(t, err)
		assert.Equal(t, v, next.SchemaVersion())
		assert.Equal(t, "my", next.TypeName())
		rec = next
	}
}

func TestMigrateWithRegistryGap(t *testing.T) {
	// Version 2 is missing. Migration must not skip to version 3.
	reg := NewRegistry([]Handler{Initial[myMsgV1](), Upgrade(myMsgToV3)})

	ver, err := reg.CurrentVersion("my")
	assert.Nil(t, err)
	assert.Equal(t, uint32(3), ver)

	_, err = MigrateToCurrent[myMsg](reg, myMsgV1{Content: "a"})
	assert.IsErr(t, errors.ErrSchema, err)
}

func TestMigrateNewerThanCurrent(t *testing.T) {
	// Code knows only of the first two versions.
	reg := MustNewRegistry([]Handler{Initial[myMsgV1](), Upgrade(myMsgToV2)})

	_, err := MigrateToCurrent[myMsgV2](reg, myMsg{Words: []string{"from", "future"}})
	assert.IsErr(t, errors.ErrSchema, err)
}

func TestMigrateFailures(t *testing.T) {
	reg := MustNewRegistry(allHandlers())

	_, err := MigrateToCurrent[myMsg](reg, myMsgV1{Content: "fail"})
	assert.IsErr(t, errors.ErrInput, err)

	_, err = MigrateToCurrent[myMsg](reg, otherMsg{Name: "x"})
	assert.IsErr(t, errors.ErrType, err)

	_, err = MigrateToCurrent[myMsg](reg, nil)
	assert.IsErr(t, errors.ErrInput, err)

	// Asking for a shape that is not the current version.
	_, err = MigrateToCurrent[myMsgV2](reg, myMsgV1{Content: "a"})
	assert.IsErr(t, errors.ErrType, err)

	// Unknown data family.
	_, err = MigrateToCurrent[myMsg](NewRegistry(nil), myMsgV1{Content: "a"})
	assert.IsErr(t, errors.ErrNotFound, err)
}

// zeroMsg declares an invalid schema version.
type zeroMsg struct{}

func (zeroMsg) TypeName() string      { return "my" }
func (zeroMsg) SchemaVersion() uint32 { return 0 }

func TestMigrateZeroVersion(t *testing.T) {
	reg := MustNewRegistry(allHandlers())
	_, err := MigrateToCurrent[myMsg](reg, zeroMsg{})
	assert.IsErr(t, errors.ErrInput, err)
}

// A step returning a record of an unexpected version must stop the migration.
func TestMigrateInconsistentStep(t *testing.T) {
	broken := Upgrade(func(v1 myMsgV1) (myMsgV2, error) { return myMsgV2{}, nil })
	reg := MustNewRegistry([]Handler{
		Initial[myMsgV1](),
		broken,
		Upgrade(myMsgToV3),
		// Overwrite version 2 with a handler producing version 3 shapes.
		inconsistentHandler{Handler: broken},
	})

	_, err := MigrateToCurrent[myMsg](reg, myMsgV1{Content: "a"})
	assert.IsErr(t, errors.ErrState, err)
}

type inconsistentHandler struct {
	Handler
}

func (inconsistentHandler) MigrateFromPrevious(prev versioned.Record) (versioned.Record, error) {
	return myMsg{}, nil
}
