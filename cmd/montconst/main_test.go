package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/montgomeryErrors"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/report"
)

// run executes the command line args (without program name) and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// keep config files in $HOME out of the tests
	t.Setenv("HOME", t.TempDir())
	output := logrus.StandardLogger().Out
	t.Cleanup(func() { logrus.SetOutput(output) })

	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(append([]string{"montconst"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestDeriveDefault(t *testing.T) {
	stdout, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Is p prime? True")
	assert.Contains(t, stdout, "MU = -p^{-1} mod 2^64 = 0x921d21f874d30d7f")
	assert.Contains(t, stdout, "Generator g = 5")

	// the explicit subcommand gives the same output
	stdout2, _, err := run(t, "derive")
	require.NoError(t, err)
	assert.Equal(t, stdout, stdout2)
}

func TestDeriveFormats(t *testing.T) {
	stdout, _, err := run(t, "--format", "rust")
	require.NoError(t, err)
	assert.Contains(t, stdout, "const MU: u64 = 0x921d21f874d30d7f;")

	stdout, _, err = run(t, "-f", "json", "--modulus", "101")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "0x65", decoded["modulus"].(map[string]any)["hex"])
	assert.Equal(t, float64(2), decoded["generator"].(map[string]any)["g"])

	_, _, err = run(t, "--format", "xml")
	assert.True(t, errors.Is(err, report.ErrUnknownFormat))
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestFormatsCommand(t *testing.T) {
	stdout, _, err := run(t, "formats")
	require.NoError(t, err)
	for _, f := range report.Formats() {
		assert.Contains(t, stdout, string(f)+"\n")
	}
}

func TestDeriveCompositeModulus(t *testing.T) {
	_, _, err := run(t, "--modulus", "0xf06e44682c2aa440f5f26a5ae1748ff85ccc2efc3068faf2154ff8a2e94d83")
	require.Error(t, err)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrNotPrime))
	assert.Equal(t, exitNotPrime, exitCode(err))
}

func TestDeriveInvalidModulus(t *testing.T) {
	_, _, err := run(t, "--modulus", "banana")
	assert.True(t, errors.Is(err, fixedWidth.ErrParse))
	assert.Equal(t, exitUsage, exitCode(err))

	_, _, err = run(t, "--modulus", "100")
	assert.True(t, errors.Is(err, montgomeryErrors.ErrInvalidModulus))
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestDeriveBoundTooSmall(t *testing.T) {
	_, _, err := run(t, "--bound", "5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrNoGeneratorFound))
	assert.Equal(t, exitNoGenerator, exitCode(err))
	assert.Equal(t, "Hint: retry with a larger search bound, e.g. --bound 12", hintFor(err))

	stdout, _, err := run(t, "-b", "6")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Generator g = 5")
}

func TestDeriveUnexpectedArguments(t *testing.T) {
	_, _, err := run(t, "nonsense")
	assert.True(t, errors.Is(err, errUsage))
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestPrimalityCommand(t *testing.T) {
	stdout, _, err := run(t, "primality", "0xf06e44682c2aa440f5f26a5ae1748ff85ccc2efc3068faf2154ff8a2e94d81")
	require.NoError(t, err)
	assert.Equal(t, "0xf06e44682c2aa440f5f26a5ae1748ff85ccc2efc3068faf2154ff8a2e94d81 is probably prime (32 Miller-Rabin rounds)\n", stdout)

	// 0 selects the default, which is what gets reported
	stdout, _, err = run(t, "--rounds", "0", "primality", "0xf06e44682c2aa440f5f26a5ae1748ff85ccc2efc3068faf2154ff8a2e94d81")
	require.NoError(t, err)
	assert.Equal(t, "0xf06e44682c2aa440f5f26a5ae1748ff85ccc2efc3068faf2154ff8a2e94d81 is probably prime (32 Miller-Rabin rounds)\n", stdout)

	stdout, _, err = run(t, "--rounds", "24", "primality", "2047")
	require.NoError(t, err)
	assert.Equal(t, "0x7ff is composite\n", stdout)

	// small numbers are decided by trial division
	stdout, _, err = run(t, "primality", "97")
	require.NoError(t, err)
	assert.Equal(t, "0x61 is prime\n", stdout)

	// 257 * 263 has no small factor
	stdout, _, err = run(t, "--rounds", "20", "primality", "67591")
	require.NoError(t, err)
	assert.Equal(t, "0x10807 is composite\n", stdout)

	_, _, err = run(t, "primality")
	assert.True(t, errors.Is(err, errUsage))

	_, _, err = run(t, "primality", "banana")
	assert.True(t, errors.Is(err, fixedWidth.ErrParse))
}

func TestRoundsOutOfRange(t *testing.T) {
	for _, rounds := range []string{"1", "19", "1025", "288230376151711744"} {
		_, _, err := run(t, "--rounds", rounds)
		assert.True(t, errors.Is(err, montgomeryErrors.ErrInvalidRounds), "rounds %v", rounds)
		assert.Equal(t, exitUsage, exitCode(err))

		_, _, err = run(t, "--rounds", rounds, "primality", "97")
		assert.True(t, errors.Is(err, montgomeryErrors.ErrInvalidRounds), "rounds %v", rounds)
	}

	t.Setenv("MONTCONST_PRIMALITY_ROUNDS", "3")
	_, _, err := run(t)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrInvalidRounds))
}

func TestCrosscheckCommand(t *testing.T) {
	stdout, _, err := run(t, "crosscheck")
	require.NoError(t, err)
	assert.Contains(t, stdout, "gnark-crypto       compared 8 values\n")
	assert.Contains(t, stdout, "All independent recomputations agree.")

	stdout, _, err = run(t, "--modulus", "101", "crosscheck")
	require.NoError(t, err)
	assert.Contains(t, stdout, "gnark-crypto       skipped")
}

func TestConfigFileAndOutput(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("report:\n  format: go\nlogger:\n  level: info\n"), 0o600))
	outPath := filepath.Join(dir, "constants.go.txt")

	stdout, stderr, err := run(t, "--config", configPath, "--output", outPath)
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "derivation complete")

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "mu_64")

	// flags beat the config file
	stdout, _, err = run(t, "--config", configPath, "--format", "yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "modulus:"))

	_, _, err = run(t, "--config", filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, errUsage))
}

func TestFailedRenderLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	designatedErr := errors.New("render failed")
	app := &cli.App{
		Flags: []cli.Flag{&cli.StringFlag{Name: flagOutput}},
		Action: func(c *cli.Context) error {
			return writeOutput(c, func(w io.Writer) error {
				_, _ = io.WriteString(w, "partial output")
				return designatedErr
			})
		},
	}

	outPath := filepath.Join(dir, "constants.txt")
	err := app.Run([]string{"montconst", "--output", outPath})
	assert.True(t, errors.Is(err, designatedErr))
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))

	// an existing file is left alone
	require.NoError(t, os.WriteFile(outPath, []byte("previous"), 0o600))
	err = app.Run([]string{"montconst", "--output", outPath})
	assert.True(t, errors.Is(err, designatedErr))
	contents, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(contents))
}

func TestEnvironment(t *testing.T) {
	t.Setenv("MONTCONST_REPORT_FORMAT", "rust")
	stdout, _, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, stdout, "const GENERATOR: Self = ScalarField { limbs: [")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitFailure, exitCode(errors.New("other")))
	assert.Equal(t, exitVerification, exitCode(&montgomeryErrors.VerificationError{Check: "R"}))
	assert.Equal(t, exitVerification, exitCode(montgomeryErrors.ErrCrossCheckFailed))
	assert.Empty(t, hintFor(montgomeryErrors.ErrNotPrime))
}
