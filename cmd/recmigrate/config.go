package main

import (
	"flag"
	"io"
	"os"

	"github.com/iov-one/versioned/codec"
	"github.com/iov-one/versioned/errors"
	"github.com/tendermint/tendermint/libs/log"
	"go.uber.org/multierr"
)

// logOutput is where all commands write log messages.
var logOutput io.Writer = os.Stderr

// config holds command line configuration shared by all commands. Each
// command registers only the flags it is using.
type config struct {
	Format   string
	Output   string
	Type     string
	LogLevel string
	DB       string
	Bucket   string
}

func (c *config) formatFlags(fl *flag.FlagSet) {
	fl.StringVar(&c.Format, "format", "json", "Format of the stored data. One of: json, yaml.")
}

func (c *config) outputFlag(fl *flag.FlagSet) {
	fl.StringVar(&c.Output, "output", "", "Format of the output data. Defaults to the input format.")
}

func (c *config) typeFlag(fl *flag.FlagSet) {
	fl.StringVar(&c.Type, "type", "", "Name of the data family that records belong to.")
}

func (c *config) logFlag(fl *flag.FlagSet) {
	fl.StringVar(&c.LogLevel, "log-level", "info", "Log level. One of: debug, info, error, none.")
}

func (c *config) dbFlags(fl *flag.FlagSet) {
	fl.StringVar(&c.DB, "db", "", "Path to the bolt database file.")
	fl.StringVar(&c.Bucket, "bucket", "records", "Name of the bolt bucket that records are stored in.")
}

// Validate returns an error describing all invalid configuration values.
// Values of flags that were not registered are not validated.
func (c *config) Validate() error {
	var err error
	if c.Format != "" {
		if _, e := codec.ByName(c.Format); e != nil {
			err = multierr.Append(err, errors.Wrap(e, "format"))
		}
	}
	if c.Output != "" {
		if _, e := codec.ByName(c.Output); e != nil {
			err = multierr.Append(err, errors.Wrap(e, "output"))
		}
	}
	if c.LogLevel != "" {
		if _, e := log.AllowLevel(c.LogLevel); e != nil {
			err = multierr.Append(err, errors.Wrap(errors.ErrInput, e.Error()))
		}
	}
	return err
}

func (c *config) requireType() error {
	if c.Type == "" {
		return errors.Wrap(errors.ErrInput, "type is required")
	}
	return nil
}

func (c *config) requireDB() error {
	var err error
	if c.DB == "" {
		err = multierr.Append(err, errors.Wrap(errors.ErrInput, "db path is required"))
	}
	if c.Bucket == "" {
		err = multierr.Append(err, errors.Wrap(errors.ErrInput, "bucket is required"))
	}
	return err
}

// Logger returns a logger writing to logOutput, filtered by the configured
// log level.
func (c *config) Logger() log.Logger {
	logger := log.NewTMLogger(log.NewSyncWriter(logOutput))
	if c.LogLevel == "" {
		return logger
	}
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		panic(err)
	}
	return log.NewFilter(logger, opt)
}

// InputFormat returns the format that input data is expected to use.
func (c *config) InputFormat() codec.Format {
	f, err := codec.ByName(c.Format)
	if err != nil {
		panic(err)
	}
	return f
}

// OutputFormat returns the format that output data must be written with.
func (c *config) OutputFormat() codec.Format {
	if c.Output == "" {
		return c.InputFormat()
	}
	f, err := codec.ByName(c.Output)
	if err != nil {
		panic(err)
	}
	return f
}
