// Command ls-ephem queries the JPL Horizons system for observer tables,
// state vectors, and osculating elements.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/litescript/ls-ephem/internal/config"
	"github.com/litescript/ls-ephem/internal/logging"
	"github.com/litescript/ls-ephem/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "ls-ephem",
		Usage:   "Query JPL Horizons for ephemerides: positions, state vectors, orbital elements",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "",
				Sources: cli.EnvVars("LS_EPHEM_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LS_EPHEM_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "email",
				Usage:   "Contact address attached to queries",
				Sources: cli.EnvVars("LS_EPHEM_EMAIL"),
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Horizons API endpoint",
				Sources: cli.EnvVars("LS_EPHEM_BASE_URL"),
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Force unstyled table output",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Emit rows as JSON instead of a table",
			},
		},
		Commands: []*cli.Command{
			bodiesCommand(),
			observerCommand(),
			vectorsCommand(),
			elementsCommand(),
			summaryCommand(),
			uiCommand(),
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the pieces every subcommand needs.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	plain  bool
	json   bool
}

// setup loads configuration and applies flag overrides. Flags win over the
// config file, which wins over built-in defaults.
func setup(cmd *cli.Command) (*app, error) {
	cfg, err := config.LoadOptional(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	if v := cmd.String("email"); v != "" {
		cfg.Query.Email = v
	}
	if v := cmd.String("base-url"); v != "" {
		cfg.HTTP.BaseURL = v
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.App.LogLevel = v
	}

	logger := logging.New(logging.ParseLevel(cfg.App.LogLevel))

	return &app{
		cfg:    cfg,
		logger: logger,
		plain:  cmd.Bool("plain") || !term.IsTerminal(int(os.Stdout.Fd())),
		json:   cmd.Bool("json"),
	}, nil
}
