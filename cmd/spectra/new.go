package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mycophonic/spectra/riff"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a new silent mono WAVE file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:     "length",
				Aliases:  []string{"l"},
				Required: true,
				Usage:    "length in seconds",
			},
			&cli.IntFlag{
				Name:    "rate",
				Aliases: []string{"r"},
				Value:   44100,
				Usage:   "sample rate in Hz",
			},
			&cli.IntFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Value:   2,
				Usage:   "byte depth (1, 2, 3, 4)",
			},
		},
		Action: runNew,
	}
}

func runNew(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	path := cmd.Args().First()

	md, err := riff.NewFile(path, cmd.Float("length"), cmd.Int("rate"), cmd.Int("depth"))
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	return md.Close()
}
