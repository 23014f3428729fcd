// Package cli implements the daylit-engine subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/daylit-engine/internal/backup"
	"github.com/julianstephens/daylit-engine/internal/config"
	"github.com/julianstephens/daylit-engine/internal/logger"
	"github.com/julianstephens/daylit-engine/internal/scheduler"
	"github.com/julianstephens/daylit-engine/internal/storage"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	// Out receives command output; stdout when nil.
	Out io.Writer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

// PerformAutomaticBackup snapshots the database before a decision is
// recorded. Failures are logged and never block the command.
func (c *Context) PerformAutomaticBackup() {
	if _, err := backup.NewManager(c.Store.Path()).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// writeJSON prints v as indented JSON.
func (c *Context) writeJSON(v any) error {
	enc := json.NewEncoder(c.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// InputFlags is shared by every command that reads a request file.
type InputFlags struct {
	Input string `help:"Request file (.json, .yaml or .yml)." short:"i" required:"" type:"existingfile"`
}

func (f InputFlags) load() (*config.Input, error) {
	in, err := config.Load(f.Input)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded request", "file", f.Input, "events", len(in.Request.Events), "tasks", len(in.Tasks), "habits", len(in.Habits))
	return in, nil
}
