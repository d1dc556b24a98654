package main

import (
	"github.com/iov-one/versioned"
	"github.com/iov-one/versioned/migration"
	"github.com/iov-one/versioned/store"
	"github.com/iov-one/versioned/x/example"
	"github.com/iov-one/versioned/x/profile"
	"github.com/tendermint/tendermint/libs/log"
)

// handlers returns handlers of all data families known to this program.
func handlers() []migration.Handler {
	var hs []migration.Handler
	hs = append(hs, example.Handlers()...)
	hs = append(hs, profile.Handlers()...)
	return hs
}

func newRegistry(logger log.Logger) *migration.Registry {
	return migration.MustNewRegistry(handlers(), migration.WithLogger(logger))
}

// upgraders maps a data family name to a function rewriting all stale stored
// records of that family. Records are namespaced by the family name.
var upgraders = map[string]func(db store.KVStore, c *migration.Codec) (int, error){
	example.TypeName: upgradeBucket[example.Example],
	profile.TypeName: upgradeBucket[profile.Profile],
}

func upgradeBucket[T versioned.Record](db store.KVStore, c *migration.Codec) (int, error) {
	return migration.NewBucket[T](versioned.TypeNameOf[T](), c).Upgrade(db)
}
