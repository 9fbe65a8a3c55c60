package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/GottfriedHerold/MontgomeryConstants/internal/config"
	"github.com/GottfriedHerold/MontgomeryConstants/internal/logging"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/crosscheck"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/derivation"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/primality"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/report"
)

var errUsage = errors.New("montconst: invalid usage")

// usageError marks err as caused by invalid flags, arguments or settings. It matches errUsage under errors.Is.
type usageError struct {
	error
}

func (e usageError) Unwrap() error { return e.error }

func (e usageError) Is(target error) bool { return target == errUsage }

// flag names
const (
	flagConfig    = "config"
	flagModulus   = "modulus"
	flagRounds    = "rounds"
	flagWorkers   = "workers"
	flagBound     = "bound"
	flagVerbosity = "verbosity"
	flagLogFormat = "log-format"
	flagFormat    = "format"
	flagOutput    = "output"
)

// flagKeys binds flags to the config keys they override.
var flagKeys = map[string]string{
	flagModulus:   config.KeyModulus,
	flagRounds:    config.KeyPrimalityRounds,
	flagWorkers:   config.KeyPrimalityWorkers,
	flagBound:     config.KeyGeneratorBound,
	flagVerbosity: config.KeyLoggerLevel,
	flagLogFormat: config.KeyLoggerFormat,
	flagFormat:    config.KeyReportFormat,
}

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    flagConfig,
		Aliases: []string{"c"},
		Usage:   "Path to the config file (default: montconst.* in . or $HOME/.montconst/)",
	},
	&cli.StringFlag{
		Name:    flagModulus,
		Aliases: []string{"m"},
		Usage:   "Prime modulus, decimal or 0x-prefixed hex",
		Value:   config.DefaultModulus,
	},
	&cli.IntFlag{
		Name:  flagRounds,
		Usage: fmt.Sprintf("Number of Miller-Rabin rounds (%d..%d, 0 for the default)", primality.MinRounds, primality.MaxRounds),
		Value: config.DefaultPrimalityRounds,
	},
	&cli.IntFlag{
		Name:  flagWorkers,
		Usage: "Number of Miller-Rabin rounds run concurrently",
		Value: config.DefaultPrimalityWorkers,
	},
	&cli.Uint64Flag{
		Name:    flagBound,
		Aliases: []string{"b"},
		Usage:   "Exclusive upper bound for generator candidates",
		Value:   config.DefaultGeneratorBound,
	},
	&cli.StringFlag{
		Name:    flagVerbosity,
		Aliases: []string{"l"},
		Usage:   "Log level (trace, debug, info, warn, error)",
		Value:   config.DefaultLoggerLevel,
	},
	&cli.StringFlag{
		Name:  flagLogFormat,
		Usage: "Log format (text, json)",
		Value: config.DefaultLoggerFormat,
	},
	&cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"f"},
		Usage:   fmt.Sprintf("Output format %v", report.Formats()),
		Value:   config.DefaultReportFormat,
	},
	&cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "Write the output to this file instead of stdout",
	},
}

var commands = []*cli.Command{
	{
		Name:   "derive",
		Usage:  "Derive and print the Montgomery constants (default command)",
		Action: deriveAction,
	},
	{
		Name:      "primality",
		Usage:     "Test a number for primality with Miller-Rabin",
		ArgsUsage: "<number>",
		Action:    primalityAction,
	},
	{
		Name:   "crosscheck",
		Usage:  "Derive the constants and recompute them with independent implementations",
		Action: crosscheckAction,
	},
	{
		Name:  "formats",
		Usage: "List the supported output formats",
		Action: func(c *cli.Context) error {
			for _, f := range report.Formats() {
				_, _ = fmt.Fprintln(c.App.Writer, f)
			}
			return nil
		},
	},
}

// loadSettings reads config file and environment, lets explicitly set flags take precedence and sets up logging.
func loadSettings(c *cli.Context) (config.Registry, error) {
	overrides := make(map[string]interface{})
	for flag, key := range flagKeys {
		if c.IsSet(flag) {
			overrides[key] = c.Value(flag)
		}
	}
	settings, err := config.Load(c.String(flagConfig), overrides)
	if err != nil {
		return settings, usageError{err}
	}
	logging.Setup(settings.Logger.Level, settings.Logger.Format, c.App.ErrWriter)
	if settings.UsedConfigFile != "" {
		log.WithField("file", settings.UsedConfigFile).Debug("using config file")
	}
	return settings, nil
}

func derivationOptions(settings *config.Registry) (derivation.Options, error) {
	modulus, err := fixedWidth.ParseUint256(settings.Modulus)
	if err != nil {
		return derivation.Options{}, errors.Wrap(err, "invalid modulus")
	}
	return derivation.Options{
		Modulus: modulus,
		Rounds:  settings.Primality.Rounds,
		Workers: settings.Primality.Workers,
		Bound:   settings.Generator.Bound,
	}, nil
}

func deriveAction(c *cli.Context) error {
	if c.Args().Present() {
		return errors.Wrapf(errUsage, "unexpected arguments %v", c.Args().Slice())
	}
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(settings.Report.Format)
	if err != nil {
		return usageError{err}
	}
	opts, err := derivationOptions(&settings)
	if err != nil {
		return err
	}
	result, err := derivation.Run(c.Context, opts)
	if err != nil {
		return err
	}
	return writeOutput(c, func(w io.Writer) error {
		return report.Render(w, result, format)
	})
}

func primalityAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.Wrapf(errUsage, "primality expects exactly one number, got %d arguments", c.NArg())
	}
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	n, err := fixedWidth.ParseUint256(c.Args().First())
	if err != nil {
		return err
	}
	tester := primality.Tester{Rounds: settings.Primality.Rounds, Workers: settings.Primality.Workers}
	outcome, err := tester.Test(c.Context, n)
	if err != nil {
		return err
	}
	var verdict string
	switch {
	case !outcome.IsPrime:
		verdict = "composite"
	case outcome.Deterministic:
		verdict = "prime"
	default:
		verdict = fmt.Sprintf("probably prime (%d Miller-Rabin rounds)", outcome.Rounds)
	}
	return writeOutput(c, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%v is %s\n", n, verdict)
		return err
	})
}

func crosscheckAction(c *cli.Context) error {
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	opts, err := derivationOptions(&settings)
	if err != nil {
		return err
	}
	result, err := derivation.Run(c.Context, opts)
	if err != nil {
		return err
	}
	crossReport, checkErr := crosscheck.Check(result)
	err = writeOutput(c, func(w io.Writer) error {
		for _, source := range crosscheck.Sources() {
			if n, consulted := crossReport.Compared[source]; consulted {
				if _, err := fmt.Fprintf(w, "%-18s compared %d values\n", source, n); err != nil {
					return err
				}
			}
		}
		for _, source := range crossReport.Skipped {
			if _, err := fmt.Fprintf(w, "%-18s skipped (not applicable to this modulus)\n", source); err != nil {
				return err
			}
		}
		for _, m := range crossReport.Mismatches {
			if _, err := fmt.Fprintln(w, "MISMATCH:", m); err != nil {
				return err
			}
		}
		if crossReport.Passed() && checkErr == nil {
			_, err := fmt.Fprintln(w, "All independent recomputations agree.")
			return err
		}
		return nil
	})
	if checkErr != nil {
		return checkErr
	}
	return err
}

// writeOutput runs render on the --output file, or on the app's writer if no file was given.
// The file is only created once render has succeeded.
func writeOutput(c *cli.Context, render func(w io.Writer) error) error {
	path := c.String(flagOutput)
	if path == "" {
		return render(c.App.Writer)
	}
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.WithStack(err)
	}
	log.WithFields(logrus.Fields{"file": path}).Info("output written")
	return nil
}
