package example

import (
	"github.com/iov-one/versioned/migration"
)

// Handlers returns handlers of all example schema versions.
func Handlers() []migration.Handler {
	return []migration.Handler{
		migration.Initial[ExampleV1](),
		migration.Upgrade(migrateToV2),
	}
}

func migrateToV2(v1 ExampleV1) (Example, error) {
	return Example{
		ID: v1.ID,
		Values: ValueWrapped{
			ExampleValue1: v1.ExampleValue,
			ExampleValue2: DefaultExampleValue2,
		},
	}, nil
}
