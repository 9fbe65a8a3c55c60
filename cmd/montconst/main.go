// Command montconst derives the Montgomery arithmetic constants of a prime modulus and prints them
// as a diagnostics report, as Rust or Go constant declarations, or as JSON / YAML.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/montgomeryErrors"
)

const version = "0.1.0"

// Exit codes
const (
	exitOK = iota
	exitFailure
	exitNotPrime
	exitNoGenerator
	exitVerification
	exitUsage
)

var log = logrus.WithFields(logrus.Fields{
	"app":     "montconst",
	"process": "main",
})

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "montconst",
		Usage:     "derive Montgomery constants (R, R^2, R^3, mu, generator) for a prime modulus",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     globalFlags,
		Commands:  commands,
		Action:    deriveAction,
		// errors are reported by main, with an exit code depending on the error
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func main() {
	defer handlePanic()

	app := newApp(os.Stdout, os.Stderr)
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		if hint := hintFor(err); hint != "" {
			_, _ = fmt.Fprintln(os.Stderr, hint)
		}
		os.Exit(exitCode(err))
	}
}

func handlePanic() {
	if r := recover(); r != nil {
		log.WithError(fmt.Errorf("%+v", r)).Errorln("Application panic")
		os.Exit(exitFailure)
	}
}

// exitCode maps errors to the exit status of the command.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, montgomeryErrors.ErrNotPrime):
		return exitNotPrime
	case errors.Is(err, montgomeryErrors.ErrNoGeneratorFound):
		return exitNoGenerator
	case errors.Is(err, montgomeryErrors.ErrVerificationFailed), errors.Is(err, montgomeryErrors.ErrCrossCheckFailed):
		return exitVerification
	case errors.Is(err, errUsage), errors.Is(err, fixedWidth.ErrParse), errors.Is(err, fixedWidth.ErrOutOfRange),
		errors.Is(err, montgomeryErrors.ErrInvalidModulus), errors.Is(err, montgomeryErrors.ErrInvalidRounds):
		return exitUsage
	default:
		return exitFailure
	}
}

// hintFor returns advice on how to recover from err, if there is any.
func hintFor(err error) string {
	var boundErr *montgomeryErrors.SearchBoundError
	if errors.As(err, &boundErr) {
		return fmt.Sprintf("Hint: retry with a larger search bound, e.g. --bound %d", 2*boundErr.Bound+2)
	}
	return ""
}
