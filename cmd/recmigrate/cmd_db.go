package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/versioned/errors"
	"github.com/iov-one/versioned/migration"
	"github.com/iov-one/versioned/store"
	"go.uber.org/multierr"
)

func cmdDBUpgrade(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Rewrite all records of a given data family, stored in a bolt database using an
older schema version, so that they use the current schema version. Records are
expected to be stored under keys prefixed with the data family name. The
number of rewritten records is printed.
		`)
		fl.PrintDefaults()
	}
	var cfg config
	cfg.typeFlag(fl)
	cfg.formatFlags(fl)
	cfg.dbFlags(fl)
	cfg.logFlag(fl)
	fl.Parse(args)

	if err := multierr.Combine(cfg.Validate(), cfg.requireType(), cfg.requireDB()); err != nil {
		return err
	}
	upgrade, ok := upgraders[cfg.Type]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "unknown type %q", cfg.Type)
	}
	logger := cfg.Logger()
	reg := newRegistry(logger)

	db, err := store.OpenBolt(cfg.DB, cfg.Bucket)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer db.Close()

	n, err := upgrade(db, migration.NewCodec(reg, cfg.InputFormat()))
	if err != nil {
		return errors.Wrapf(err, "upgraded %d records", n)
	}
	fmt.Fprintln(output, n)
	return nil
}
