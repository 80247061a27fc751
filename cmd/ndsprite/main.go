package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bodgit/ndsprite"
	"github.com/bodgit/ndsprite/jasc"
	"github.com/urfave/cli/v2"
)

const defaultSource = "/tmp/mega_sprites"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func process(c *cli.Context) error {
	method, err := ndsprite.ParsePaletteMethod(c.String("method"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	var cache *ndsprite.PaletteCache
	if file := c.String("db"); file != "" {
		if cache, err = ndsprite.NewPaletteCache(file); err != nil {
			return cli.NewExitError(err, 1)
		}
		defer cache.Close()
	}

	species := c.Args().Slice()
	if len(species) == 0 {
		species = ndsprite.DefaultSpecies
	}

	layout := ndsprite.Layout{
		Source:  c.String("src"),
		Project: c.String("project"),
	}

	m := ndsprite.New(cache, method, newLogger(c))

	var failed int
	for _, r := range m.Run(context.Background(), layout.Subjects(species...), c.Int("jobs")) {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "ERROR processing %s: %v\n", r.Subject.Name, r.Err)
			failed++
		}
	}

	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d subjects failed", failed, len(species)), 1)
	}

	return nil
}

func shiny(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	cp, err := jasc.Decode(f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	p, err := ndsprite.NewPalette(cp)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	o, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer o.Close()

	if err := jasc.Encode(o, p.Shiny().ColorPalette()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "ndsprite"
	app.Usage = "Nintendo DS sprite normalization utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"NDSPRITE_DB"},
			Usage:   "path to palette cache database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "process",
			Usage:       "Convert front and back sprites into 4-bit sheets and palettes",
			Description: "",
			ArgsUsage:   "[SPECIES...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "src",
					Value: defaultSource,
					Usage: "directory holding front/ and back/ source sprites",
				},
				&cli.StringFlag{
					Name:  "project",
					Value: cwd,
					Usage: "project root to write res/pokemon/ assets to",
				},
				&cli.StringFlag{
					Name:  "method",
					Value: ndsprite.MedianCut.String(),
					Usage: "palette method; mediancut, kmeans or dominantcolor",
				},
				&cli.IntFlag{
					Name:  "jobs",
					Value: 4,
					Usage: "number of subjects processed concurrently",
				},
			},
			Action: process,
		},
		{
			Name:        "shiny",
			Usage:       "Derive a shiny palette from a normal one",
			Description: "",
			ArgsUsage:   "INPUT OUTPUT",
			Action:      shiny,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
