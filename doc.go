/*

Package versioned defines the contract of schema versioned data.

Data persisted under an old structure is loaded, migrated step by step into
the current structure, and serialized again. Look into the migration package
for the registry, the migration algorithm and the serialization round trip.
Text formats are implemented by the codec package.

*/

package versioned
