package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mycophonic/spectra/edit"
	"github.com/mycophonic/spectra/fft"
	"github.com/mycophonic/spectra/internal/numeric"
	"github.com/mycophonic/spectra/riff"
)

// runSession opens path, transforms every channel into the frequency
// domain, applies ops in order against one Operator per channel, inverse
// transforms back, then persists according to the save/save-as flags.
// This single-process pipeline is the unit edit, undo and redo all share:
// the edit/undo/redo verbs are exposed as three separate cli.Commands for
// parity with spec.md's named operations, but a History only outlives the
// process that built it, so a meaningful undo/redo sequence has to be
// expressed as ops within one invocation.
func runSession(cmd *cli.Command, ops []op) error {
	path := cmd.Args().First()

	md, _, err := riff.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer md.Close()

	// md.ChannelCount() reports the format's declared channel count, which
	// may exceed len(md.Channels) above spectra.MaxNamedChannels; only
	// decoded channels are editable here.
	operators := make([]*edit.Operator, len(md.Channels))
	for i := range operators {
		operators[i] = edit.NewOperator()

		if err := fft.ForwardChannel(md.Channels[i]); err != nil {
			return fmt.Errorf("transforming channel %d: %w", i, err)
		}
	}

	for _, step := range ops {
		if step.channel < 0 || step.channel >= len(md.Channels) {
			return fmt.Errorf("channel %d out of range (have %d)", step.channel, len(md.Channels))
		}

		channel := md.Channels[step.channel]
		o := operators[step.channel]

		switch step.kind {
		case "apply":
			if !o.Apply(channel, step.fromSample, step.toSample, step.changeType, step.amount, step.smoothing) {
				return fmt.Errorf("apply on channel %d [%d,%d] rejected: invalid range", step.channel, step.fromSample, step.toSample)
			}
		case "undo":
			o.Undo(channel)
		case "redo":
			o.Redo(channel)
		}
	}

	for i := range md.Channels {
		if err := fft.InverseChannel(md.Channels[i]); err != nil {
			return fmt.Errorf("inverse transforming channel %d: %w", i, err)
		}
	}

	return persist(cmd, md)
}

// persist saves md according to the --save / --save-as flags shared by
// edit, undo and redo. Neither flag being set leaves the file untouched,
// useful for a dry run that only wants the command's exit code.
func persist(cmd *cli.Command, md *riff.Metadata) error {
	rng := numeric.NewRandFromEntropy()

	if dest := cmd.String("save-as"); dest != "" {
		if err := riff.SaveAs(md, dest, rng); err != nil {
			return fmt.Errorf("saving as %s: %w", dest, err)
		}

		return nil
	}

	if cmd.Bool("save") {
		if err := riff.Save(md, rng); err != nil {
			return fmt.Errorf("saving %s: %w", md.Path, err)
		}
	}

	return nil
}

func sessionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "save",
			Usage: "write the result back to the input file in place",
		},
		&cli.StringFlag{
			Name:  "save-as",
			Usage: "write the result to a new path instead of the input file",
		},
	}
}
