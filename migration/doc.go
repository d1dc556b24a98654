/*

Package migration provides tooling necessary for working with schema versioned
records. Data persisted under an old structure can be loaded, migrated one
version at a time into the current structure and serialized again.


Declaring a data family.

1. declare a struct for every schema version of the data family. Each struct
implements versioned.Record, returning the same type name and its own schema
version. The current version shape should not have a version suffix, for
example:

    type ExampleV1 struct {
        ID           string `json:"id"`
        ExampleValue int    `json:"exampleValue"`
    }

    func (ExampleV1) TypeName() string      { return "Example" }
    func (ExampleV1) SchemaVersion() uint32 { return 1 }

2. declare handlers for all versions. The first version handler is created
with Initial. Every following version is created with Upgrade, providing a
function that creates the new shape out of the previous one:

    func Handlers() []migration.Handler {
        return []migration.Handler{
            migration.Initial[ExampleV1](),
            migration.Upgrade(func(v1 ExampleV1) (Example, error) {
                ...
            }),
        }
    }


Application preparation.

1. build a registry once during the program startup, using a static list of
handlers of all data families. MustNewRegistry ensures that the version chain
of every data family is complete:

    reg := migration.MustNewRegistry(example.Handlers())

2. create a codec for the text format used to persist records:

    c := migration.NewCodec(reg, codec.JSON)

3. use Decode to load a record of any version as the current version shape
and Encode to serialize it. To keep records in a key value store, use Bucket.

A registry is never modified after being created and it is safe to use it
from many goroutines.

*/
package migration
