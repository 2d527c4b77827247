package main

import (
	"errors"
	"fmt"
	"os"

	app "github.com/tosin2013/prompt-manager/internal"
	"github.com/tosin2013/prompt-manager/internal/cli"
	"github.com/tosin2013/prompt-manager/pkg/models"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	basePath := app.ResolveBasePath()

	a, err := app.NewApp(basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing pm: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps command errors to process exit codes: 2 for usage-level
// mistakes the caller can correct (bad input, bad file or mode, cycle
// introduction), 1 for everything else.
func exitCode(err error) int {
	var (
		validation  *models.ValidationError
		invalidFile *models.InvalidFileError
		invalidMode *models.InvalidModeError
		circular    *models.CircularDependencyError
	)
	switch {
	case errors.As(err, &validation),
		errors.As(err, &invalidFile),
		errors.As(err, &invalidMode),
		errors.As(err, &circular):
		return 2
	default:
		return 1
	}
}
