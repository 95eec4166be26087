// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func formatFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "csv",
			Usage: "Output CSV",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write CSV output to a file instead of stdout",
		},
	}
}

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "username",
			Aliases:  []string{"u"},
			Usage:    "Account username",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "password",
			Aliases:  []string{"p"},
			Usage:    "Account password",
			Sources:  cli.EnvVars("COWORK_PASSWORD"),
			Required: true,
		},
	}
}

func dateFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "date",
		Aliases:  []string{"d"},
		Usage:    "Reservation date (YYYY-MM-DD)",
		Required: required,
	}
}

// setupCommand handles local configuration and storage
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and the token store",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config.toml from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file (defaults to ./config.toml)",
					},
					&cli.BoolFlag{
						Name:  "effective",
						Usage: "Write the configuration in use, environment overrides included",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Create the SQLite token store and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Database path (defaults to store.path)",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "rollback",
				Usage: "Roll back the most recent token store migration",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Database path (defaults to store.path)",
					},
				},
				Action: r.RollbackDatabase,
			},
		},
	}
}

// authCommand handles session management
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the reservation session",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Log in with a username and password",
				Flags:  credentialFlags(),
				Action: r.AuthLogin,
			},
			{
				Name:   "register",
				Usage:  "Create an account",
				Flags:  credentialFlags(),
				Action: r.AuthRegister,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored session token",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Show the stored session",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:   "google",
				Usage:  "Sign in with Google using OAuth2",
				Action: r.AuthGoogle,
			},
		},
	}
}

// seatsCommand handles the seat grid
func seatsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seats",
		Usage: "Check and reserve seats",
		Commands: []*cli.Command{
			{
				Name:    "show",
				Aliases: []string{"check"},
				Usage:   "Show seat availability for a date",
				Flags:   append([]cli.Flag{dateFlag(true)}, formatFlags()...),
				Action:  r.SeatsShow,
			},
			{
				Name:  "reserve",
				Usage: "Reserve a seat for the logged-in user",
				Flags: []cli.Flag{
					dateFlag(false),
					&cli.IntFlag{
						Name:     "seat",
						Aliases:  []string{"s"},
						Usage:    "Seat number (1-20)",
						Required: true,
					},
				},
				Action: r.SeatsReserve,
			},
			{
				Name:  "watch",
				Usage: "Poll seat availability until interrupted",
				Flags: []cli.Flag{
					dateFlag(true),
					&cli.DurationFlag{
						Name:    "interval",
						Aliases: []string{"i"},
						Usage:   "Polling interval (defaults to watch.interval_seconds)",
					},
				},
				Action: r.SeatsWatch,
			},
		},
	}
}

// reserveCommand handles API-key reservations
func reserveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reserve",
		Usage: "Reserve seats on behalf of a named user",
		Commands: []*cli.Command{
			{
				Name:  "secure",
				Usage: "Submit an API-key authenticated reservation",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Name the reservation is made for",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "seat",
						Aliases:  []string{"s"},
						Usage:    "Seat number (1-20)",
						Required: true,
					},
					dateFlag(true),
				},
				Action: r.ReserveSecure,
			},
		},
	}
}

// reservationsCommand handles stored reservations
func reservationsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "reservations",
		Aliases: []string{"res"},
		Usage:   "Inspect and cancel reservations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List reservations (API key)",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "user",
						Usage: "Filter by user name",
					},
					&cli.IntFlag{
						Name:  "seat",
						Usage: "Filter by seat number",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "Filter by reservation date (YYYY-MM-DD)",
					},
				}, formatFlags()...),
				Action: r.ReservationsList,
			},
			{
				Name:  "get",
				Usage: "Show a reservation by ID (API key)",
				Arguments: []cli.Argument{
					&cli.IntArg{
						Name: "id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ReservationsGet,
			},
			{
				Name:  "cancel",
				Usage: "Cancel one of your reservations",
				Arguments: []cli.Argument{
					&cli.IntArg{
						Name: "id",
					},
				},
				Action: r.ReservationsCancel,
			},
		},
	}
}

// statusCommand checks that the API is reachable
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Check that the reservation API is reachable",
		Action: r.Status,
	}
}

// tuiCommand launches the interactive client
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive seat reservation client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI owns the terminal",
				Value: "./tmp/cowork-tui.log",
			},
		},
		Action: r.TUI,
	}
}
