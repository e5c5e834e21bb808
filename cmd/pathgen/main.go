// Package main is the pathgen command: it samples circle trajectories and replays add_circle
// requests through the configured factories.
package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	// register trajectory factories.
	_ "go.viam.com/autopilot/factory/circle"
)

const (
	// Flags.
	flagDebug   = "debug"
	flagCenter  = "center"
	flagNormal  = "normal"
	flagRadius  = "radius"
	flagSpeed   = "speed"
	flagSteps   = "steps"
	flagConfig  = "config"
	flagService = "service"
	flagRequest = "request"
	flagType    = "type"
)

func newApp() *cli.App {
	return &cli.App{
		Name:            "pathgen",
		Usage:           "sample and register autopilot trajectories",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "sample",
				Usage:     "print a circle trajectory at evenly spaced progress values",
				UsageText: "pathgen sample [--center x,y,z] [--normal x,y,z] [--radius r] [--speed v] [--steps n]",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:  flagCenter,
						Usage: "center of the circle",
						Value: cli.NewFloat64Slice(0, 0, 0),
					},
					&cli.Float64SliceFlag{
						Name:  flagNormal,
						Usage: "normal of the plane the circle lies in",
						Value: cli.NewFloat64Slice(0, 0, 1),
					},
					&cli.Float64Flag{
						Name:  flagRadius,
						Usage: "radius of the circle",
						Value: 1,
					},
					&cli.Float64Flag{
						Name:  flagSpeed,
						Usage: "vehicle speed along the circle",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  flagSteps,
						Usage: "number of intervals the unit domain is split into",
						Value: 8,
					},
				},
				Action: SampleAction,
			},
			{
				Name:      "add",
				Usage:     "send add_circle requests to the configured factories",
				UsageText: "pathgen add [--config FILE] [--service NAME] --request FILE [--request FILE...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagConfig,
						Aliases: []string{"c"},
						Usage:   "load configuration from `FILE`",
					},
					&cli.StringFlag{
						Name:  flagService,
						Usage: "service to send the requests to",
						Value: "path/add_circle",
					},
					&cli.StringSliceFlag{
						Name:     flagRequest,
						Aliases:  []string{"r"},
						Usage:    "JSON5 request `FILE` (repeatable)",
						Required: true,
					},
				},
				Action: AddAction,
			},
			{
				Name:      "schema",
				Usage:     "print the JSON schema of the requests a factory type accepts",
				UsageText: "pathgen schema [--type TYPE]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  flagType,
						Usage: "factory type",
						Value: "circle",
					},
				},
				Action: SchemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
