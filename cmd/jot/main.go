package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/idilsaglam/jot/internal/cli"
	"github.com/idilsaglam/jot/internal/config"
	"github.com/idilsaglam/jot/internal/logging"
	"github.com/idilsaglam/jot/internal/store"
	"github.com/idilsaglam/jot/internal/store/jsonstore"
	"github.com/idilsaglam/jot/internal/store/sqlitestore"
	"github.com/idilsaglam/jot/internal/tui"
	"github.com/idilsaglam/jot/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	fs := pflag.NewFlagSet("jot", pflag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }
	cfg, args, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return cli.ExitOK
		}
		fmt.Fprintln(os.Stderr, "jot:", err)
		return cli.ExitUsage
	}

	logger := logging.NewStderr(cfg.LogLevel, cfg.LogFormat)
	logger.Debug("config resolved", "file", cfg.File, "backend", cfg.Backend, "config", cfg.ConfigFile)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Run(ctx, args, cli.Options{
		Group:       cfg.Group,
		Interactive: cfg.Interactive,
		Open:        opener(cfg, logger),
		UI:          ui.New(os.Stdout, os.Stderr, ui.ThemeByName(cfg.Theme)),
		Width:       ui.TerminalWidth(os.Stdout),
		Logger:      logger,
		Browse:      tui.Run,
	})
}

func opener(cfg *config.Config, logger *log.Logger) store.Opener {
	return func(ctx context.Context) (store.Store, error) {
		if cfg.Backend == config.BackendSQLite {
			return sqlitestore.Open(ctx, cfg.File, logger)
		}
		return jsonstore.Open(cfg.File, logger)
	}
}
