package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mycophonic/spectra/internal/numeric"
	"github.com/mycophonic/spectra/riff"
)

func saveCommand() *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Re-encode a file's current samples back into itself",
		ArgsUsage: "<file>",
		Action:    runSave,
	}
}

func runSave(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	path := cmd.Args().First()

	md, _, err := riff.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer md.Close()

	if err := riff.Save(md, numeric.NewRandFromEntropy()); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}
