package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/alexflint/go-arg"
	ulog "github.com/nsqlite/userstore/internal/log"
	"github.com/nsqlite/userstore/internal/userstore/output"
	"github.com/nsqlite/userstore/internal/version"
)

// Config represents the configuration for userstore. Every field has a
// default so the program runs without arguments.
type Config struct {
	Database string        `arg:"--database,env:USERSTORE_DATABASE" help:"Path of the SQLite database file, created if missing" default:"veritabani.db"`
	Format   string        `arg:"--format,env:USERSTORE_FORMAT" help:"Output format for the stored users (tuple, table)" default:"tuple"`
	LogLevel string        `arg:"--log-level,env:USERSTORE_LOG_LEVEL" help:"Minimum level of the JSON logs written to stderr (debug, info, warn, error)" default:"warn"`
	Output   output.Format `arg:"-"`
	Level    ulog.Level    `arg:"-"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n", version.CLIVersion())
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := cfg.resolve(); err != nil {
		log.Fatal(err)
	}

	return cfg
}

// resolve validates the string fields and fills the parsed ones.
func (cfg *Config) resolve() error {
	if err := validateDatabase(cfg.Database); err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	cfg.Output = format

	level, err := ulog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	cfg.Level = level

	return nil
}

// validateDatabase validates that a database path was given.
func validateDatabase(path string) error {
	if path == "" {
		return errors.New("invalid database path, must not be empty")
	}
	return nil
}
