package config

import (
	"testing"

	ulog "github.com/nsqlite/userstore/internal/log"
	"github.com/nsqlite/userstore/internal/userstore/output"
	"github.com/stretchr/testify/assert"
)

func TestMustParse(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := MustParse([]string{"userstore"})
		assert.Equal(t, "veritabani.db", cfg.Database)
		assert.Equal(t, output.FormatTuple, cfg.Output)
		assert.Equal(t, ulog.LevelWarn, cfg.Level)
	})

	t.Run("Flags", func(t *testing.T) {
		cfg := MustParse([]string{
			"userstore",
			"--database", "data/users.db",
			"--format", "table",
			"--log-level", "debug",
		})
		assert.Equal(t, "data/users.db", cfg.Database)
		assert.Equal(t, output.FormatTable, cfg.Output)
		assert.Equal(t, ulog.LevelDebug, cfg.Level)
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv("USERSTORE_DATABASE", "env.db")
		t.Setenv("USERSTORE_FORMAT", "table")

		cfg := MustParse([]string{"userstore"})
		assert.Equal(t, "env.db", cfg.Database)
		assert.Equal(t, output.FormatTable, cfg.Output)
	})
}

func Test_resolve(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{Database: "veritabani.db", Format: "tuple", LogLevel: "warn"},
		},
		{
			name:    "empty database",
			cfg:     Config{Database: "", Format: "tuple", LogLevel: "warn"},
			wantErr: "invalid database path",
		},
		{
			name:    "unknown format",
			cfg:     Config{Database: "veritabani.db", Format: "csv", LogLevel: "warn"},
			wantErr: "invalid output format, valid values are",
		},
		{
			name:    "unknown log level",
			cfg:     Config{Database: "veritabani.db", Format: "table", LogLevel: "verbose"},
			wantErr: "invalid log level, valid values are",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.resolve()
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
