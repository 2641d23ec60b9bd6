package version

import "github.com/fatih/color"

const Version = "v0.1.0"

// CLIVersion returns the version banner of userstore.
func CLIVersion() string {
	banner := "userstore " + Version + "\n" +
		"Embedded SQLite users demo, built with github.com/mattn/go-sqlite3"

	return color.New(color.FgCyan, color.Bold).Sprint(banner)
}
