package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rubiojr/postos/internal/config"
	"github.com/rubiojr/postos/internal/translations"
	"github.com/rubiojr/postos/pkg/api"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(cfg).RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func newApp(cfg config.Config) *cli.App {
	return &cli.App{
		Name:  "postos",
		Usage: "Find gas stations and keep their fuel prices up to date",
		// Prices use a decimal comma, e.g. --price "Etanol:3,99".
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Base URL of the postos API",
				Value: cfg.APIURL,
			},
			&cli.Int64Flag{
				Name:  "user",
				Usage: "User id used for reactions",
				Value: cfg.UserID,
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Output language (pt, en)",
				Value: cfg.Lang,
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "HTTP request timeout",
				Value: cfg.Timeout,
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Log debug output to stderr",
				Value: cfg.Debug,
			},
		},
		Commands: []*cli.Command{
			serveCommand(cfg),
			stationsCommand(),
			showCommand(),
			registerCommand(),
			editPricesCommand(),
			reactCommand(api.Like),
			reactCommand(api.Dislike),
			citiesCommand(cfg),
			directionsCommand(cfg),
		},
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	if !c.Bool("debug") {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func newClient(c *cli.Context, logger *slog.Logger) *api.Client {
	return api.NewClient(c.String("api-url"), c.Duration("timeout"), logger)
}

func texts(c *cli.Context) translations.Translations {
	return translations.GetTranslations(c.String("lang"))
}

func stationIDArg(c *cli.Context) (int64, error) {
	if c.NArg() < 1 {
		return 0, fmt.Errorf("station id is required")
	}
	id, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid station id %q: %w", c.Args().First(), err)
	}
	return id, nil
}
