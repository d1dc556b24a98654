/*
Package x contains data families declared using the migration package.

Each sub-package declares all historical shapes of a single data family
together with their handlers. Handlers are exposed by the Handlers function
of each package and they are meant to be combined into a single registry
during the application startup.

The current shape of a family is named after the family, without a version
suffix. Previous shapes carry the version they represent, for example
example.ExampleV1 and example.Example.
*/
package x
