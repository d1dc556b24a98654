package versioned

// Record is implemented by every schema versioned data shape.
//
// A data family is a set of shapes sharing the same type name, one shape for
// each historical schema version. Shapes are plain values. A migration never
// modifies a record but creates a new one, representing the next version.
type Record interface {
	// TypeName returns the identity of the data family. It must be the same
	// for all schema versions of the family.
	TypeName() string
	// SchemaVersion returns the schema version this shape represents.
	// The first version of any family is 1.
	SchemaVersion() uint32
}

// TypeNameOf returns the type name declared by the zero value of T.
func TypeNameOf[T Record]() string {
	var zero T
	return zero.TypeName()
}

// SchemaVersionOf returns the schema version declared by the zero value of T.
func SchemaVersionOf[T Record]() uint32 {
	var zero T
	return zero.SchemaVersion()
}
