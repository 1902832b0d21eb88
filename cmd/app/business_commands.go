package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/stampd/cmd/app/commands"
	"github.com/allisson/stampd/internal/app"
	businessDomain "github.com/allisson/stampd/internal/business/domain"
	"github.com/allisson/stampd/internal/config"
)

func formatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func getBusinessCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-business",
			Usage: "Register a business and print its scan secret",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "id",
					Aliases: []string{"i"},
					Usage:   "Business id (a UUIDv7 is generated when omitted)",
				},
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Display name shown on customer cards",
				},
				&cli.StringFlag{
					Name:  "category",
					Usage: "Business category (e.g., cafe, bakery)",
				},
				&cli.StringFlag{
					Name:  "location",
					Usage: "Human-readable location",
				},
				&cli.IntFlag{
					Name:    "stamps-needed",
					Aliases: []string{"s"},
					Usage:   "Stamps required for a reward (configured default when omitted)",
				},
				&cli.StringFlag{
					Name:    "reward",
					Aliases: []string{"r"},
					Usage:   "Reward description",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				businessUseCase, err := container.BusinessUseCase()
				if err != nil {
					return err
				}

				return commands.RunCreateBusiness(
					ctx,
					businessUseCase,
					container.Logger(),
					commands.DefaultIO(),
					&businessDomain.RegisterBusinessInput{
						ID:                cmd.String("id"),
						DisplayName:       cmd.String("name"),
						Category:          cmd.String("category"),
						Location:          cmd.String("location"),
						StampsNeeded:      int64(cmd.Int("stamps-needed")),
						RewardDescription: cmd.String("reward"),
					},
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "update-business",
			Usage: "Update the profile of a business; only the given flags are changed",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Business id",
				},
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Usage:   "Display name shown on customer cards",
				},
				&cli.StringFlag{
					Name:  "category",
					Usage: "Business category",
				},
				&cli.StringFlag{
					Name:  "location",
					Usage: "Human-readable location",
				},
				&cli.IntFlag{
					Name:    "stamps-needed",
					Aliases: []string{"s"},
					Usage:   "Stamps required for a reward on new cards",
				},
				&cli.StringFlag{
					Name:    "reward",
					Aliases: []string{"r"},
					Usage:   "Reward description for new cards",
				},
				&cli.BoolFlag{
					Name:    "active",
					Aliases: []string{"a"},
					Usage:   "Whether the business accepts scans",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				businessUseCase, err := container.BusinessUseCase()
				if err != nil {
					return err
				}

				return commands.RunUpdateBusiness(
					ctx,
					businessUseCase,
					container.Logger(),
					commands.DefaultIO(),
					updateBusinessInput(cmd),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "scan",
			Usage: "Apply a scan for a business (reads the payload from stdin when --payload is omitted)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "business-id",
					Aliases:  []string{"b"},
					Required: true,
					Usage:    "Scanning business id",
				},
				&cli.StringFlag{
					Name:    "payload",
					Aliases: []string{"p"},
					Usage:   "Scanned QR payload",
				},
				&cli.StringFlag{
					Name:  "business-name",
					Usage: "Display name stored on a new card (profile name when omitted)",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				stampUseCase, err := container.StampUseCase()
				if err != nil {
					return err
				}

				return commands.RunScan(
					ctx,
					stampUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("payload"),
					cmd.String("business-id"),
					cmd.String("business-name"),
					cmd.String("format"),
				)
			},
		},
	}
}

// updateBusinessInput maps the flags that were explicitly set to the optional input fields.
func updateBusinessInput(cmd *cli.Command) *businessDomain.UpdateBusinessInput {
	input := &businessDomain.UpdateBusinessInput{ID: cmd.String("id")}
	if cmd.IsSet("name") {
		v := cmd.String("name")
		input.DisplayName = &v
	}
	if cmd.IsSet("category") {
		v := cmd.String("category")
		input.Category = &v
	}
	if cmd.IsSet("location") {
		v := cmd.String("location")
		input.Location = &v
	}
	if cmd.IsSet("stamps-needed") {
		v := int64(cmd.Int("stamps-needed"))
		input.StampsNeeded = &v
	}
	if cmd.IsSet("reward") {
		v := cmd.String("reward")
		input.RewardDescription = &v
	}
	if cmd.IsSet("active") {
		v := cmd.Bool("active")
		input.IsActive = &v
	}
	return input
}
