package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/persons/internal/api"
	"github.com/idilsaglam/persons/internal/cli"
	"github.com/idilsaglam/persons/internal/config"
	"github.com/idilsaglam/persons/internal/logging"
	"github.com/idilsaglam/persons/internal/tui"
	"github.com/idilsaglam/persons/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root flags (apply to every subcommand)
	configPath := flag.String("config", "", "path to a TOML config file")
	baseURL := flag.String("base-url", "", "persons API base URL (overrides config)")
	theme := flag.String("theme", "", "classic | neon | mono (overrides config)")
	logFile := flag.String("log-file", "", "write diagnostics to this file")
	verbose := flag.Bool("v", false, "debug logging")
	noColor := flag.Bool("no-color", false, "disable colors")
	forceColor := flag.Bool("force-color", false, "force colors even when not a TTY")
	flag.Usage = func() {
		cli.PrintHelp()
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.Fail(err.Error())
		return 2
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *theme != "" {
		cfg.UI.Theme = *theme
	}
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *noColor {
		cfg.UI.Color = "never"
	} else if *forceColor {
		cfg.UI.Color = "always"
	}
	if err := cfg.Validate(); err != nil {
		ui.Fail(err.Error())
		return 2
	}

	ui.SetTheme(cfg.UI.Theme)
	switch cfg.UI.Color {
	case "never":
		ui.SetColorForcing(false, true)
		lipgloss.SetColorProfile(termenv.Ascii)
	case "always":
		ui.SetColorForcing(true, false)
		lipgloss.SetColorProfile(termenv.ANSI256)
	}

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	interactive := len(args) == 0 || args[0] == "ui"

	// The TUI owns the terminal; its diagnostics go to a file or nowhere.
	var fallback io.Writer = os.Stderr
	if interactive {
		fallback = nil
	}
	log, closer, err := logging.New(cfg.Log, fallback, *verbose)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer closer.Close()

	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout()),
		api.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Run(ctx, args, cli.Options{
		Client: client,
		Log:    log,
		UI: func() error {
			return tui.Run(client, tui.Options{BaseURL: client.BaseURL(), Logger: log})
		},
	})
}
