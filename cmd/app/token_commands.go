package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/stampd/cmd/app/commands"
	"github.com/allisson/stampd/internal/app"
	"github.com/allisson/stampd/internal/config"
	tokenDomain "github.com/allisson/stampd/internal/token/domain"
)

func getTokenCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Issue a customer token (universal unless --business-id is given)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "customer-id",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Customer id",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Customer email",
				},
				&cli.StringFlag{
					Name:    "business-id",
					Aliases: []string{"b"},
					Usage:   "Restrict the token to one business",
				},
				&cli.StringFlag{
					Name:    "qr-output",
					Aliases: []string{"o"},
					Usage:   "Write the QR code PNG to this path",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO(),
					&tokenDomain.IssueTokenInput{
						CustomerID:    cmd.String("customer-id"),
						CustomerEmail: cmd.String("email"),
						BusinessID:    cmd.String("business-id"),
					},
					cmd.String("qr-output"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "deactivate-token",
			Usage: "Revoke a customer token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token-id",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Token id",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenUseCase, err := container.TokenUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeactivateToken(
					ctx,
					tokenUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("token-id"),
					cmd.String("format"),
				)
			},
		},
	}
}
