package userstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/nsqlite/userstore/internal/db"
	"github.com/nsqlite/userstore/internal/log"
	"github.com/nsqlite/userstore/internal/userstore/config"
	"github.com/nsqlite/userstore/internal/userstore/output"
)

// The record inserted on every run.
const (
	DefaultName = "Ahmet"
	DefaultAge  = 30
)

// Run runs the userstore CLI.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.NewLogger(os.Stderr, conf.Level)
	return run(ctx, conf, os.Stdout, logger)
}

// run opens the database, inserts the default user, prints every stored
// user to stdout and commits. The database is closed on every path.
func run(
	ctx context.Context, conf config.Config, stdout io.Writer, logger log.Logger,
) (err error) {
	runId := uuid.NewString()
	logger.InfoNs(log.NsRunner, "starting userstore", log.KV{
		"runId":    runId,
		"database": conf.Database,
		"format":   conf.Output.Value,
	})

	dbInstance, err := db.Open(ctx, db.Config{
		Logger: logger,
		Path:   conf.Database,
	})
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer func() {
		if closeErr := dbInstance.Close(); closeErr != nil {
			logger.ErrorNs(log.NsRunner, "error closing database", log.KV{
				"runId": runId,
				"error": closeErr,
			})
			if err == nil {
				err = closeErr
			}
		}
	}()

	if err := dbInstance.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("error ensuring schema: %w", err)
	}

	id, err := dbInstance.Insert(ctx, DefaultName, DefaultAge)
	if err != nil {
		return fmt.Errorf("error inserting user: %w", err)
	}
	logger.InfoNs(log.NsRunner, "user inserted", log.KV{"runId": runId, "id": id})

	users, err := dbInstance.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("error fetching users: %w", err)
	}

	if err := output.Write(stdout, conf.Output, users, conf.Database); err != nil {
		return fmt.Errorf("error printing users: %w", err)
	}

	if err := dbInstance.Commit(); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}

	logger.InfoNs(log.NsRunner, "userstore finished", log.KV{
		"runId": runId,
		"users": len(users),
	})
	return nil
}
