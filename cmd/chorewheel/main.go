package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/cli/system"
	"github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/keyring"
	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/rotation"
	"github.com/julianstephens/chorewheel/internal/storage"
	"github.com/julianstephens/chorewheel/internal/weekclock"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"State file path (.json or .db), a postgres:// connection string, or 'keyring' to use the stored DSN." default:"~/.config/chorewheel/chorewheel.json"`
	Timezone string `help:"IANA timezone the rotation runs in (or 'Local')." default:"Local"`
	User     string `help:"Acting username for self-service commands." env:"CHOREWHEEL_USER"`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init        system.InitCmd     `cmd:"" help:"Initialize chorewheel storage."`
	Join        cli.JoinCmd        `cmd:"" help:"Join the chore rotation."`
	Setshift    cli.SetShiftCmd    `cmd:"" help:"Assign a shift (interactive menu when no arguments given)."`
	Take        cli.TakeCmd        `cmd:"" help:"Take over an unassigned shift."`
	Autofill    cli.AutofillCmd    `cmd:"" help:"Auto-assign all 14 shifts evenly."`
	Shifts      cli.ShiftsCmd      `cmd:"" help:"View the weekly shift schedule."`
	Done        cli.DoneCmd        `cmd:"" help:"Mark your shift today as completed."`
	Unavailable cli.UnavailableCmd `cmd:"" help:"Report yourself unavailable for today's shift."`
	Stats       cli.StatsCmd       `cmd:"" help:"View weekly completion statistics."`
	Report      cli.ReportCmd      `cmd:"" help:"Generate a weekly completion report."`
	Mode        cli.ModeCmd        `cmd:"" help:"Set the reassignment mode (auto|manual)."`
	Sweep       cli.SweepCmd       `cmd:"" help:"Record misses for uncompleted assigned shifts."`
	Remind      system.RemindCmd   `cmd:"" help:"Run the reminder daemon."`
	Dsn         system.DsnCmd      `cmd:"" help:"Manage the stored Postgres connection string."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("chorewheel"),
		kong.Description("Weekly chore rotation: shift assignment, completion tracking, and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": "v0.2.0"},
	)

	store, configDir, err := buildStore(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	loc, err := weekclock.LoadLocation(CLI.Timezone)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Service:   rotation.NewService(store, loc),
		Store:     store,
		User:      CLI.User,
		ConfigDir: configDir,
		Location:  loc,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

// buildStore picks the Provider from the config string and returns it with
// the directory used for logs and the agent lockfile.
func buildStore(config string) (storage.Provider, string, error) {
	if config == "keyring" {
		dsn, err := keyring.GetConnectionString()
		if err != nil {
			return nil, "", fmt.Errorf("no stored connection string: %w", err)
		}
		config = dsn
	}

	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if storage.HasEmbeddedCredentials(config) && CLI.Config != "keyring" {
			return nil, "", fmt.Errorf("connection strings with embedded credentials are not allowed on the command line; store them with 'chorewheel dsn set' and use --config keyring")
		}
		dir, err := defaultConfigDir()
		if err != nil {
			return nil, "", err
		}
		return storage.NewPostgresStore(config), dir, nil
	}

	path, err := expandHome(config)
	if err != nil {
		return nil, "", err
	}
	dir := filepath.Dir(path)

	switch filepath.Ext(path) {
	case ".db", ".sqlite":
		return storage.NewSQLiteStore(path), dir, nil
	default:
		return storage.NewJSONStore(path), dir, nil
	}
}

func defaultConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	return filepath.Join(base, "chorewheel"), nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
