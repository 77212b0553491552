package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func redoCommand() *cli.Command {
	return &cli.Command{
		Name:      "redo",
		Usage:     "Redo the most recent undone edit in a single-step session (see 'edit' for chained sessions)",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "channel",
				Value: 0,
				Usage: "channel index to redo",
			},
		}, sessionFlags()...),
		Action: runRedo,
	}
}

func runRedo(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	return runSession(cmd, []op{{kind: "redo", channel: cmd.Int("channel")}})
}
