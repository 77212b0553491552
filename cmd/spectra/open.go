package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mycophonic/spectra/riff"
)

var errInvalidArgCount = errors.New("expected exactly one argument: file path")

func openCommand() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a WAVE file and print its metadata and result flags",
		ArgsUsage: "<file>",
		Action:    runOpen,
	}
}

func runOpen(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	path := cmd.Args().First()

	md, result, err := riff.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer md.Close()

	fmt.Fprintf(os.Stdout, "path:         %s\n", md.Path) //nolint:errcheck // CLI stdout reporting.
	fmt.Fprintf(os.Stdout, "result:       %s\n", result.String())
	fmt.Fprintf(os.Stdout, "sample rate:  %d Hz\n", md.Format.SampleRate)
	fmt.Fprintf(os.Stdout, "byte depth:   %d\n", md.Format.ByteDepth())
	fmt.Fprintf(os.Stdout, "precision:    %s\n", md.Precision)
	fmt.Fprintf(os.Stdout, "sample length:%d (padded %d)\n", md.SampleLength, md.Channels[0].Len())
	fmt.Fprintf(os.Stdout, "channels:     %d\n", md.ChannelCount())

	for i := 0; i < md.ChannelCount(); i++ {
		fmt.Fprintf(os.Stdout, "  [%d] %s\n", i, md.ChannelName(i))
	}

	return nil
}
