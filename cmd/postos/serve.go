package main

import (
	"fmt"

	"github.com/rubiojr/postos/internal/config"
	"github.com/rubiojr/postos/internal/server"
	"github.com/rubiojr/postos/internal/store"
	"github.com/urfave/cli/v2"
)

func serveCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the postos API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Database file",
				Value: cfg.DBPath,
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Address to listen on",
				Value: cfg.Addr,
			},
			&cli.IntFlag{
				Name:  "rate-limit",
				Usage: "Requests per minute allowed per IP, 0 to disable",
				Value: cfg.RequestsPerMinute,
			},
		},
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) error {
	logger := server.NewLogger(c.Bool("debug"))

	storage, err := store.NewStorage(c.Context, c.String("db"), logger.Logger)
	if err != nil {
		return fmt.Errorf("error initializing storage: %w", err)
	}
	defer storage.Close()

	handler := server.NewRouter(storage, logger, server.Options{
		RequestsPerMinute: c.Int("rate-limit"),
	})
	return server.ListenAndServe(c.Context, c.String("addr"), handler, logger.Logger)
}
