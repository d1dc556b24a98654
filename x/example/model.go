package example

// TypeName is the data family identity of all example shapes.
const TypeName = "Example"

// ExampleV1 is the first schema version of the example data.
type ExampleV1 struct {
	ID           string `json:"id" yaml:"id"`
	ExampleValue int    `json:"exampleValue" yaml:"exampleValue"`
}

func (ExampleV1) TypeName() string      { return TypeName }
func (ExampleV1) SchemaVersion() uint32 { return 1 }

// Example is the current schema version of the example data.
type Example struct {
	ID     string       `json:"id" yaml:"id"`
	Values ValueWrapped `json:"values" yaml:"values"`
}

func (Example) TypeName() string      { return TypeName }
func (Example) SchemaVersion() uint32 { return 2 }

// ValueWrapped groups example values, introduced with the second schema
// version.
type ValueWrapped struct {
	ExampleValue1 int `json:"exampleValue1" yaml:"exampleValue1"`
	ExampleValue2 int `json:"exampleValue2" yaml:"exampleValue2"`
}

// DefaultExampleValue2 is set for records that were created before the
// second value existed.
const DefaultExampleValue2 = -1
