package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mycophonic/spectra/internal/numeric"
	"github.com/mycophonic/spectra/riff"
)

func saveAsCommand() *cli.Command {
	return &cli.Command{
		Name:      "save-as",
		Usage:     "Re-encode a file's current samples into a new destination path",
		ArgsUsage: "<file> <dest>",
		Action:    runSaveAs,
	}
}

func runSaveAs(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return fmt.Errorf("%w: got %d, want <file> <dest>", errInvalidArgCount, cmd.NArg())
	}

	path := cmd.Args().First()
	dest := cmd.Args().Get(1)

	md, _, err := riff.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer md.Close()

	if err := riff.SaveAs(md, dest, numeric.NewRandFromEntropy()); err != nil {
		return fmt.Errorf("saving %s as %s: %w", path, dest, err)
	}

	return nil
}
