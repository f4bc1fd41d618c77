package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/cli/dashboard"
	"github.com/julianstephens/habitdash/internal/cli/habits"
	"github.com/julianstephens/habitdash/internal/cli/settings"
	"github.com/julianstephens/habitdash/internal/cli/system"
	"github.com/julianstephens/habitdash/internal/config"
	"github.com/julianstephens/habitdash/internal/constants"
	apperrors "github.com/julianstephens/habitdash/internal/errors"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/notifications"
	"github.com/julianstephens/habitdash/internal/notifier"
	"github.com/julianstephens/habitdash/internal/storage"
	"github.com/julianstephens/habitdash/internal/store"
)

var CLI struct {
	Version     kong.VersionFlag
	Config      string `help:"Config file path." type:"path" default:"${config_file}" env:"HABITDASH_CONFIG"`
	APIURL      string `name:"api-url" help:"Backend base URL. Overrides api_url in the config file." env:"HABITDASH_API_URL"`
	Preferences string `help:"Preferences location: a SQLite path, a PostgreSQL URL without a password, or \"keyring\"."`
	Debug       bool   `help:"Log debug output to stderr." env:"HABITDASH_DEBUG"`

	Init     system.InitCmd       `cmd:"" help:"Write the config file and initialize preferences."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run preferences migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Habits   habits.HabitCmd      `cmd:"" help:"List and manage habits."`
	Summary  dashboard.SummaryCmd `cmd:"" help:"Print today's progress and productivity."`
	Watch    dashboard.WatchCmd   `cmd:"" help:"Poll habits and print streak notifications."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage dashboard preferences."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the preferences connection string in the OS keyring."`
	Backup   system.BackupCmd     `cmd:"" help:"Create, list and restore preference snapshots."`
}

// commands that open or inspect preferences themselves
var skipPrefsLoad = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		apperrors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Terminal dashboard for habit streaks and productivity analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)
	command := strings.Fields(ctx.Command())[0]

	cfg, err := config.Load(CLI.Config, config.Overrides{
		APIURL:      CLI.APIURL,
		Preferences: CLI.Preferences,
		Debug:       CLI.Debug,
	})
	if err != nil {
		apperrors.Fatal(fmt.Errorf("failed to load config: %w", err))
	}

	logCfg := logger.Config{Debug: cfg.Debug, ConfigDir: cfg.Dir}
	if command == "tui" {
		logCfg.Console = io.Discard
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	// keyring commands must work before the keyring holds a connection string
	if command == "keyring" {
		runKeyring(ctx, cfg)
		return
	}

	prefs, err := storage.Open(cfg.Preferences)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer prefs.Close()

	client := api.New(cfg.APIURL,
		api.WithRequestTimeout(cfg.RequestTimeout),
		api.WithChartTimeout(cfg.ChartTimeout),
	)
	st := store.New(client)
	logger.Debug("Starting", "command", ctx.Command(), "api_url", cfg.APIURL, "session", st.SessionID())

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appCtx := &cli.Context{
		Ctx:      runCtx,
		Config:   cfg,
		Prefs:    prefs,
		Store:    st,
		Center:   notifications.NewCenter(),
		Notifier: notifier.New(),
		Out:      os.Stdout,
		Now:      time.Now,
	}

	if !skipPrefsLoad[command] {
		if err := prefs.Load(); err != nil {
			apperrors.Fatal(fmt.Errorf("%w (run 'habitdash init' first)", err))
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		stop()
		prefs.Close()
		apperrors.Fatal(err)
	}
}

func runKeyring(ctx *kong.Context, cfg config.Config) {
	if err := ctx.Run(&cli.Context{Config: cfg, Out: os.Stdout}); err != nil {
		apperrors.Fatal(err)
	}
}
