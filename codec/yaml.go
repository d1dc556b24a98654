package codec

import (
	"github.com/iov-one/versioned/errors"
	yaml "gopkg.in/yaml.v2"
)

// YAML is a block style YAML format.
var YAML Format = yamlFormat{}

type yamlFormat struct{}

func (yamlFormat) Name() string {
	return "yaml"
}

func (yamlFormat) Marshal(v interface{}, version uint32) ([]byte, error) {
	raw, err := yaml.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}

	// Round trip through an ordered mapping so that the attributes order
	// declared by the value is preserved.
	var doc yaml.MapSlice
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "%T does not serialize into a mapping", v)
	}
	withVersion := make(yaml.MapSlice, 0, len(doc)+1)
	for _, item := range doc {
		if key, ok := item.Key.(string); ok && key == VersionKey {
			continue
		}
		withVersion = append(withVersion, item)
	}
	withVersion = append(withVersion, yaml.MapItem{Key: VersionKey, Value: version})

	out, err := yaml.Marshal(withVersion)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return out, nil
}

func (yamlFormat) Unmarshal(raw []byte, dest interface{}) error {
	if err := yaml.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (yamlFormat) SchemaVersion(raw []byte) (uint32, error) {
	var header struct {
		SchemaVersion *int64 `yaml:"schemaVersion"`
	}
	if err := yaml.Unmarshal(raw, &header); err != nil {
		return 0, errors.Wrap(errors.ErrInput, err.Error())
	}
	if header.SchemaVersion == nil {
		return 0, nil
	}
	return versionFromInt(*header.SchemaVersion)
}
