// Package main provides the spectra CLI, a development/integration harness
// driving the frequency-domain WAVE editor core. It is not the product
// surface the core library is built for — see the open/new/edit verbs for
// the operations an embedding shell would drive directly against the
// packages in this module.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mycophonic/primordium/app"

	"github.com/mycophonic/spectra/version"
)

func main() {
	ctx := context.Background()
	app.New(ctx, version.Name())

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Frequency-domain WAVE editor core, CLI harness",
		Version: version.Version() + " (" + version.Commit() + " - " + version.Date() + ")",
		Commands: []*cli.Command{
			openCommand(),
			newCommand(),
			editCommand(),
			undoCommand(),
			redoCommand(),
			saveCommand(),
			saveAsCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)

		os.Exit(1)
	}
}
