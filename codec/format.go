package codec

import (
	"sort"
	"strings"

	"github.com/iov-one/versioned/errors"
)

// VersionKey is the name of the top level attribute holding the schema
// version of a serialized record.
const VersionKey = "schemaVersion"

// Format is a human readable, structured text encoding of records.
//
// The exact layout of record attributes is owned by each data family. A
// format only guarantees that the schema version is present at the top level
// of a serialized record, under the VersionKey attribute.
type Format interface {
	// Name returns the name of this format, for example "json".
	Name() string

	// Marshal serializes given value and sets its top level schema
	// version attribute to the given version. The value must serialize
	// into an object with named fields.
	Marshal(v interface{}, version uint32) ([]byte, error)

	// Unmarshal deserializes raw text into dest. The schema version
	// attribute is ignored unless dest declares it.
	Unmarshal(raw []byte, dest interface{}) error

	// SchemaVersion returns the top level schema version declared by raw
	// text, without decoding anything else. Zero is returned when the
	// version attribute is absent.
	SchemaVersion(raw []byte) (uint32, error)
}

var formats = map[string]Format{
	JSON.Name(): JSON,
	YAML.Name(): YAML,
}

// ByName returns a format registered under given name. Names are case
// insensitive.
func ByName(name string) (Format, error) {
	f, ok := formats[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "format %q, available: %s", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names returns the sorted names of all available formats.
func Names() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// versionFromInt validates a version number read from the text.
func versionFromInt(n int64) (uint32, error) {
	if n < 0 || n > int64(^uint32(0)) {
		return 0, errors.Wrapf(errors.ErrInput, "schema version %d out of range", n)
	}
	return uint32(n), nil
}
