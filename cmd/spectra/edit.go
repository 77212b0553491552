package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func editCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Apply one or more frequency-domain edits, in order, to a WAVE file",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			&cli.StringSliceFlag{
				Name:     "op",
				Required: true,
				Usage:    `repeatable step: "apply:from=F,to=T,type=multiply|additive,amount=A,smoothing=S,channel=C", "undo[:channel=C]", or "redo[:channel=C]"`,
			},
		}, sessionFlags()...),
		Action: runEdit,
	}
}

func runEdit(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
	}

	specs := cmd.StringSlice("op")

	ops := make([]op, len(specs))

	for i, spec := range specs {
		parsed, err := parseOp(spec)
		if err != nil {
			return fmt.Errorf("parsing --op %d: %w", i, err)
		}

		ops[i] = parsed
	}

	return runSession(cmd, ops)
}
