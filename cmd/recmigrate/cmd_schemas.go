package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/versioned"
)

func cmdSchemas(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Print all known data families together with their current schema version.
		`)
		fl.PrintDefaults()
	}
	var cfg config
	cfg.logFlag(fl)
	fl.Parse(args)

	if err := cfg.Validate(); err != nil {
		return err
	}
	reg := newRegistry(cfg.Logger())
	for _, name := range reg.Types() {
		v, err := reg.CurrentVersion(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "%s\t%d\n", name, v)
	}
	return nil
}

func cmdVersion(input io.Reader, output io.Writer, args []string) error {
	fmt.Fprintln(output, versioned.Version())
	return nil
}
