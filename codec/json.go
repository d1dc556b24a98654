package codec

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/iov-one/versioned/errors"
)

// JSON is a tab indented JSON format.
var JSON Format = jsonFormat{}

type jsonFormat struct{}

func (jsonFormat) Name() string {
	return "json"
}

func (jsonFormat) Marshal(v interface{}, version uint32) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, errors.Wrapf(errors.ErrInput, "%T does not serialize into an object", v)
	}

	ver := []byte(strconv.FormatUint(uint64(version), 10))
	if bytes.Equal(raw, []byte("{}")) {
		raw = []byte(`{"` + VersionKey + `":` + string(ver) + `}`)
	} else if raw, err = jsonparser.Set(raw, ver, VersionKey); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "\t"); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return out.Bytes(), nil
}

func (jsonFormat) Unmarshal(raw []byte, dest interface{}) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (jsonFormat) SchemaVersion(raw []byte) (uint32, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return 0, errors.Wrap(errors.ErrInput, "not a JSON object")
	}
	value, tp, _, err := jsonparser.Get(raw, VersionKey)
	switch {
	case err == jsonparser.KeyPathNotFoundError:
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(errors.ErrInput, err.Error())
	}
	switch tp {
	case jsonparser.Null:
		return 0, nil
	case jsonparser.Number:
		n, err := jsonparser.ParseInt(value)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrInput, "schema version %q", value)
		}
		return versionFromInt(n)
	default:
		return 0, errors.Wrapf(errors.ErrInput, "schema version must be a number, got %s", tp)
	}
}
