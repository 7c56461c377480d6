package main

import (
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/aridclown/defold-annotations/internal/console"
	"github.com/aridclown/defold-annotations/internal/gen"
)

const (
	searchDirFlag     = "dir"
	excludeFlag       = "exclude"
	outputFlag        = "output"
	configFlag        = "config"
	overridesFileFlag = "overridesFile"
	strictFlag        = "strict"
	quietFlag         = "quiet"
	debugFlag         = "debug"
)

var genFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    quietFlag,
		Aliases: []string{"q"},
		Usage:   "Make the logger quiet.",
	},
	&cli.StringFlag{
		Name:    searchDirFlag,
		Aliases: []string{"d"},
		Value:   "./",
		Usage:   "Directories with API descriptor files you want to parse, comma separated",
	},
	&cli.StringFlag{
		Name:  excludeFlag,
		Usage: "Exclude directories and files when searching, comma separated",
	},
	&cli.StringFlag{
		Name:    outputFlag,
		Aliases: []string{"o"},
		Value:   "./api",
		Usage:   "Output directory for all the generated annotation files",
	},
	&cli.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "YAML file with type tables merged over the built-in defaults. It is optional.",
	},
	&cli.StringFlag{
		Name:  overridesFileFlag,
		Value: gen.DefaultOverridesFile,
		Usage: "File to read global type overrides from.",
	},
	&cli.BoolFlag{
		Name:  strictFlag,
		Usage: "Abort generation on the first unknown type token, disabled by default",
	},
	&cli.BoolFlag{
		Name:  debugFlag,
		Usage: "Enable debug mode, disabled by default",
	},
}

func genAction(ctx *cli.Context) error {
	if ctx.IsSet(debugFlag) {
		console.Logger.DebugLevel = 1
	}

	logger := log.New(os.Stdout, "", log.LstdFlags)
	if ctx.Bool(quietFlag) {
		logger = log.New(io.Discard, "", log.LstdFlags)
		console.Logger.SetOutput(io.Discard)
	}

	return gen.New().Build(&gen.Config{
		SearchDir:     ctx.String(searchDirFlag),
		Excludes:      ctx.String(excludeFlag),
		OutputDir:     ctx.String(outputFlag),
		ConfigFile:    ctx.String(configFlag),
		OverridesFile: ctx.String(overridesFileFlag),
		Strict:        ctx.Bool(strictFlag),
		Debugger:      logger,
	})
}

func main() {
	app := cli.NewApp()
	app.Version = gen.Version
	app.Usage = "Generate Lua type annotation files from scripting API descriptors."
	app.Commands = []*cli.Command{
		{
			Name:    "gen",
			Aliases: []string{"g"},
			Usage:   "Generate annotation files",
			Action:  genAction,
			Flags:   genFlags,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
