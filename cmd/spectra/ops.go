package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mycophonic/spectra"
)

// op is one step of an edit session: either an apply with its parameters,
// or a bare undo/redo. Multiple ops in one "edit" invocation let a single
// process exercise a multi-step history — undo and redo only make sense
// within the process that built the History that produced them, since
// edit.History is an in-memory structure, not a file format.
type op struct {
	kind string // "apply", "undo", "redo"

	channel    int
	fromSample int
	toSample   int
	changeType spectra.ChangeType
	amount     float64
	smoothing  float64
}

var (
	errUnknownOpKind  = errors.New("unknown op kind")
	errMissingOpField = errors.New("missing required op field")
	errUnknownOpField = errors.New("unknown op field")
)

// parseOp parses one --op value. "undo" and "redo" take an optional
// "channel=N" suffix; "apply" requires from, to, type, amount and accepts
// an optional smoothing (default 0) and channel (default 0).
//
//	apply:from=0,to=1023,type=multiply,amount=0,smoothing=0.5,channel=0
//	undo
//	undo:channel=1
//	redo
func parseOp(spec string) (op, error) {
	kind, rest, _ := strings.Cut(spec, ":")

	result := op{kind: kind, changeType: spectra.Multiply, smoothing: 0}

	fields := map[string]bool{}

	if rest != "" {
		for _, pair := range strings.Split(rest, ",") {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return op{}, fmt.Errorf("malformed field %q in op %q", pair, spec)
			}

			fields[key] = true

			if err := applyOpField(&result, key, value); err != nil {
				return op{}, fmt.Errorf("op %q: %w", spec, err)
			}
		}
	}

	switch kind {
	case "apply":
		for _, required := range []string{"from", "to", "type", "amount"} {
			if !fields[required] {
				return op{}, fmt.Errorf("%w: %q in op %q", errMissingOpField, required, spec)
			}
		}
	case "undo", "redo":
	default:
		return op{}, fmt.Errorf("%w: %q", errUnknownOpKind, kind)
	}

	return result, nil
}

func applyOpField(o *op, key, value string) error {
	switch key {
	case "channel":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("channel: %w", err)
		}

		o.channel = n
	case "from":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("from: %w", err)
		}

		o.fromSample = n
	case "to":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("to: %w", err)
		}

		o.toSample = n
	case "type":
		switch value {
		case "multiply":
			o.changeType = spectra.Multiply
		case "additive":
			o.changeType = spectra.Additive
		default:
			return fmt.Errorf("type: %q is neither multiply nor additive", value)
		}
	case "amount":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("amount: %w", err)
		}

		o.amount = f
	case "smoothing":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("smoothing: %w", err)
		}

		o.smoothing = f
	default:
		return fmt.Errorf("%w: %q", errUnknownOpField, key)
	}

	return nil
}
