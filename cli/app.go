// Package cli contains the rapidkin command line: robot parameters, forward and inverse kinematics and RAPID
// declarations for preset or JSON described robots.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	flagDebug    = "debug"
	flagPreset   = "preset"
	flagRobot    = "robot"
	flagJoints   = "joints"
	flagExtax    = "extax"
	flagTarget   = "target"
	flagConfig   = "config"
	flagAll      = "all"
	flagName     = "name"
	flagScope    = "scope"
	flagVariable = "variable-type"
)

var robotFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  flagPreset,
		Usage: "robot preset to use when no robot document is given",
		Value: "IRB120",
	},
	&cli.PathFlag{
		Name:    flagRobot,
		Aliases: []string{"r"},
		Usage:   "load the robot from the JSON document at `FILE`",
	},
}

var declarationFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  flagName,
		Usage: "name of the emitted RAPID variable",
		Value: "target",
	},
	&cli.StringFlag{
		Name:  flagScope,
		Usage: "scope of the emitted declaration: GLOBAL, LOCAL or TASK",
		Value: "GLOBAL",
	},
	&cli.StringFlag{
		Name:  flagVariable,
		Usage: "variable type of the emitted declaration: VAR, CONST or PERS",
		Value: "VAR",
	},
}

var app = &cli.App{
	Name:            "rapidkin",
	Usage:           "kinematics and RAPID data for ABB robots",
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
			Name:   "presets",
			Usage:  "list the robot presets",
			Action: PresetsAction,
		},
		{
			Name:   "params",
			Usage:  "print the axes and kinematic parameters of a robot",
			Flags:  robotFlags,
			Action: ParamsAction,
		},
		{
			Name:  "fk",
			Usage: "pose a robot and print the robtarget of its tool center point",
			Flags: append(append([]cli.Flag{
				&cli.StringFlag{
					Name:     flagJoints,
					Aliases:  []string{"j"},
					Usage:    "robot joint position as a RAPID robax literal",
					Required: true,
				},
				&cli.StringFlag{
					Name:  flagExtax,
					Usage: "external joint position as a RAPID extax literal",
					Value: "[9E9, 9E9, 9E9, 9E9, 9E9, 9E9]",
				},
			}, robotFlags...), declarationFlags...),
			Action: FKAction,
		},
		{
			Name:  "ik",
			Usage: "solve the joint position reaching a robtarget",
			Flags: append(append([]cli.Flag{
				&cli.StringFlag{
					Name:     flagTarget,
					Aliases:  []string{"t"},
					Usage:    "robtarget declaration or literal to reach",
					Required: true,
				},
				&cli.IntFlag{
					Name:  flagConfig,
					Usage: "axis configuration 0..7; defaults to the one stored in the target",
					Value: -1,
				},
				&cli.BoolFlag{
					Name:  flagAll,
					Usage: "print the solutions of all eight axis configurations",
				},
			}, robotFlags...), declarationFlags...),
			Action: IKAction,
		},
		{
			Name:   "schema",
			Usage:  "print the JSON schema of robot documents",
			Action: SchemaAction,
		},
	},
}

// NewApp returns the rapidkin app writing to out and errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
