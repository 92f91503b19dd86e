package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	templateKey = "template"
	dataKey     = "data"
	elKey       = "el"
	setKey      = "set"
	inputKey    = "input"
	pageKey     = "page"
	titleKey    = "title"
	verboseKey  = "verbose"
	itersKey    = "iters"
	renderKey   = "render"
)

func main() {
	if err := app().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func app() *cli.Command {
	return &cli.Command{
		Name:  "mvvm",
		Usage: "Compile reactive templates against JSON data",
		Commands: []*cli.Command{
			renderCommand(),
			statsCommand(),
			benchCommand(),
		},
	}
}

func mountFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     templateKey,
			Usage:    "HTML file holding the template",
			Required: true,
		},
		&cli.StringFlag{
			Name:  dataKey,
			Usage: "JSON file holding the data object",
		},
		&cli.StringFlag{
			Name:  elKey,
			Usage: "Selector of the mount element",
			Value: "body",
		},
		&cli.BoolFlag{
			Name:  verboseKey,
			Usage: "Log binding activity to stderr",
		},
	}
}
