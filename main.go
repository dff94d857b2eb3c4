package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/recipe-web-parser/internal/history"
	"github.com/dtnitsch/recipe-web-parser/internal/recipe"
	"github.com/dtnitsch/recipe-web-parser/pkg/assembler"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("recipe-web-parser failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "recipe-web-parser",
		Usage: "extract ingredient and instruction lists from recipe web pages",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "debug logging"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only log errors"},
		},
		Before: func(c *cli.Context) error {
			switch {
			case c.Bool("quiet"):
				zerolog.SetGlobalLevel(zerolog.ErrorLevel)
			case c.Bool("verbose"):
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			default:
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "parse",
				Usage:  "extract recipes from URLs or local HTML files",
				Action: recipe.ParseAction,
				Flags: append(pipelineFlags(),
					&cli.StringFlag{Name: "urls", Usage: "comma-separated page URLs"},
					&cli.StringSliceFlag{Name: "file", Aliases: []string{"f"}, Usage: "local HTML file (repeatable)"},
					&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "pages processed at once"},
					&cli.StringFlag{Name: "format", Value: assembler.FormatText, Usage: "text | json | yaml"},
					&cli.BoolFlag{Name: "include-paragraphs", Usage: "include labeled paragraphs in json/yaml output"},
					&cli.StringFlag{Name: "db", Usage: "run history database path"},
					&cli.BoolFlag{Name: "no-history", Usage: "do not record runs"},
				),
			},
			{
				Name:      "extract",
				Usage:     "show every paragraph of a page with its scores and label",
				ArgsUsage: "[url]",
				Action:    recipe.ExtractAction,
				Flags: append(pipelineFlags(),
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "local HTML file"},
					&cli.StringFlag{Name: "filter", Usage: `e.g. "label:ingredient|instruction,conf:>=0.5"`},
				),
			},
			{
				Name:      "history",
				Usage:     "list recorded runs, or print the recipe of one run",
				ArgsUsage: "[run-id]",
				Action:    history.ListAction,
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{Name: "db", Usage: "run history database path"},
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of runs to list"},
				},
			},
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yaml", Usage: "YAML config file (optional)"}
}

// pipelineFlags are shared by the commands that run the pipeline.
func pipelineFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{Name: "classifier", Usage: "lexicon | openai | static"},
		&cli.StringFlag{Name: "model", Usage: "model name for the openai classifier"},
		&cli.StringFlag{Name: "cache-dir", Usage: "cache fetched pages in this directory"},
	}
}
