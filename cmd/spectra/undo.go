package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// undoCommand exposes undo as a standalone verb for parity with spec.md's
// named operations. A single bare undo against a freshly opened channel is
// a no-op (the History starts at its pre-edit sentinel) — undo is only
// useful chained after apply steps via "edit --op apply:... --op undo",
// which runs undo against the History that the preceding applies in the
// same process actually built.
func undoCommand() *cli.Command {
	return &cli.Command{
		Name:      "undo",
		Usage:     "Undo the most recent edit in a single-step session (see 'edit' for chained sessions)",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "channel",
				Value: 0,
				Usage: "channel index to undo",
			},
		}, sessionFlags()...),
		Action: runUndo,
	}
}

func runUndo(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	return runSession(cmd, []op{{kind: "undo", channel: cmd.Int("channel")}})
}
