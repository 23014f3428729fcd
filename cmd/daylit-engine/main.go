package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daylit-engine/internal/cli"
	"github.com/julianstephens/daylit-engine/internal/constants"
	apperrors "github.com/julianstephens/daylit-engine/internal/errors"
	"github.com/julianstephens/daylit-engine/internal/logger"
	"github.com/julianstephens/daylit-engine/internal/scheduler"
	"github.com/julianstephens/daylit-engine/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	DB       string `help:"SQLite database for saved placements and suggestions." type:"path" default:"${db_path}"`
	LogDir   string `help:"Log directory (defaults to a logs directory next to the database)." type:"path" name:"log-dir"`
	Debug    bool   `help:"Enable debug logging to stderr."`
	LogLevel string `help:"Log level for the log file (debug, info, warn, error)." name:"log-level" default:"warn" enum:"debug,info,warn,error"`
	LogJSON  bool   `help:"Write the log file as JSON lines." name:"log-json"`

	Free     cli.FreeCmd     `cmd:"" help:"Show free time in the requested range."`
	Tasks    cli.TasksCmd    `cmd:"" help:"Place tasks into free time."`
	Habits   cli.HabitsCmd   `cmd:"" help:"Suggest habit occurrences."`
	Validate cli.ValidateCmd `cmd:"" help:"Validate a request and audit the resulting placements."`

	Suggestions struct {
		List   cli.SuggestionsListCmd   `cmd:"" help:"List saved habit suggestions." default:"1"`
		Accept cli.SuggestionsAcceptCmd `cmd:"" help:"Accept a proposed suggestion."`
		Reject cli.SuggestionsRejectCmd `cmd:"" help:"Reject a proposed suggestion."`
		Review cli.SuggestionsReviewCmd `cmd:"" help:"Review proposed suggestions interactively."`
	} `cmd:"" help:"Review saved habit suggestions."`

	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Availability, task placement and habit suggestion engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"db_path": constants.DefaultDBPath,
		},
	)

	logCfg := logger.Config{
		Debug:  CLI.Debug,
		Level:  CLI.LogLevel,
		JSON:   CLI.LogJSON,
		LogDir: CLI.LogDir,
		DBPath: CLI.DB,
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store := storage.NewSQLiteStore(CLI.DB)
	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
	}

	err := ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close storage", "error", closeErr)
	}
	apperrors.Fatal(err)
}
