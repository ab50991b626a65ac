package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/identity/cmd/app/commands"
	"github.com/allisson/identity/internal/app"
	"github.com/allisson/identity/internal/config"
	cryptoService "github.com/allisson/identity/internal/crypto/service"
)

func getCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "create-secret",
			Usage: "Generate a random base64 secret for MASTER_ENCRYPTION_KEY, EMAIL_HASH_SALT or TOKEN_SIGNING_SECRET",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "size",
					Aliases: []string{"s"},
					Value:   32,
					Usage:   "Number of random bytes",
				},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "Wrap the secret with this KMS key (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunCreateSecret(
					ctx,
					cryptoService.NewKMSService(),
					os.Stdout,
					cmd.Int("size"),
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
