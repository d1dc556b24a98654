package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/versioned/errors"
	"github.com/iov-one/versioned/migration"
	"go.uber.org/multierr"
)

func cmdUpgrade(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Read a single record from the standard input and write it migrated to the
current schema version. A record that does not declare its schema version is
considered to be of the current version.
		`)
		fl.PrintDefaults()
	}
	var cfg config
	cfg.typeFlag(fl)
	cfg.formatFlags(fl)
	cfg.outputFlag(fl)
	cfg.logFlag(fl)
	fl.Parse(args)

	if err := multierr.Combine(cfg.Validate(), cfg.requireType()); err != nil {
		return err
	}
	logger := cfg.Logger()
	reg := newRegistry(logger)

	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	logger.Info("before", "type", cfg.Type, "text", string(raw))

	rec, err := migration.NewCodec(reg, cfg.InputFormat()).DecodeAny(cfg.Type, raw)
	if err != nil {
		return errors.Wrap(err, "decode")
	}
	out, err := migration.NewCodec(reg, cfg.OutputFormat()).Encode(rec)
	if err != nil {
		return errors.Wrap(err, "encode")
	}
	logger.Info("after", "type", cfg.Type, "text", string(out))

	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err = output.Write(out)
	return err
}
