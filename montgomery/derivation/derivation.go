// Package derivation runs the complete, one-shot derivation of Montgomery constants for a modulus:
//
//	validate primality -> derive R, R^2, R^3, mu -> verify (fatal on failure) -> find generator
//
// There are no retries and no state between runs. Running twice on the same modulus gives identical results.
package derivation

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/generator"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/modularArithmetic"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/parameters"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/primality"
)

var log = logrus.WithField("process", "derivation")

// DefaultModulus_string is the 248-bit prime modulus of the scalar field whose constants we derive by default.
const DefaultModulus_string = "0xf06e44682c2aa440f5f26a5ae1748ff85ccc2efc3068faf2154ff8a2e94d81"

// DefaultModulus is DefaultModulus_string as a Uint256. Treat as constant.
var DefaultModulus = fixedWidth.InitUint256FromString(DefaultModulus_string)

// Options control a derivation run.
//
// Zero values select defaults: Rounds and Workers as for [primality.Tester], Bound == 0 means [generator.DefaultBound].
type Options struct {
	Modulus fixedWidth.Uint256
	Rounds  int       // Miller-Rabin rounds
	Workers int       // concurrently evaluated Miller-Rabin rounds
	Bound   uint64    // exclusive upper bound for generator candidates
	Rand    io.Reader // randomness for Miller-Rabin bases; nil means crypto/rand
}

// DefaultOptions returns the Options for the default modulus.
func DefaultOptions() Options {
	return Options{
		Modulus: DefaultModulus,
		Rounds:  primality.DefaultRounds,
		Workers: 1,
		Bound:   generator.DefaultBound,
	}
}

// TwoAdicity describes p - 1 = 2^K * Q with Q odd.
type TwoAdicity struct {
	K uint
	Q fixedWidth.Uint256
}

// Result holds everything a derivation run computes. This is what report renderers consume.
type Result struct {
	Modulus      fixedWidth.Uint256
	Decimal      string // modulus in decimal
	Hex          string // modulus in 0x-prefixed hex
	BitLen       int
	IsPrime      bool
	TwoAdicity   TwoAdicity
	Parameters   parameters.Parameters
	Verification parameters.Verification
	Generator    generator.Candidate
}

// Run performs a complete derivation.
//
// Errors (all wrapping the sentinels from montgomeryErrors):
//   - ErrInvalidModulus if the modulus is even or smaller than 3
//   - ErrNotPrime if the modulus fails primality testing; no constant is derived in that case
//   - ErrVerificationFailed if the derived constants are inconsistent (an arithmetic bug)
//   - ErrNoGeneratorFound if no generator below the bound exists; retrying with a larger bound is possible
//
// Cancellation of ctx interrupts primality testing.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := log.WithField("modulus", opts.Modulus.String())

	m, err := modularArithmetic.NewModulus(opts.Modulus)
	if err != nil {
		return nil, err
	}

	logger.Info("testing primality of modulus")
	tester := primality.Tester{Rounds: opts.Rounds, Workers: opts.Workers, Rand: opts.Rand}
	if err := tester.Validate(ctx, opts.Modulus); err != nil {
		logger.WithError(err).Error("modulus rejected")
		return nil, err
	}

	logger.Info("deriving Montgomery parameters")
	params, verification, err := parameters.Derive(m)
	if err != nil {
		logger.WithError(err).Error("derivation of Montgomery parameters failed")
		return nil, err
	}

	bound := opts.Bound
	if bound == 0 {
		bound = generator.DefaultBound
	}
	logger.WithField("bound", bound).Info("searching generator")
	candidate, err := generator.Find(m, &params, bound)
	if err != nil {
		logger.WithError(err).Warn("no generator found; a larger bound may help")
		return nil, err
	}

	k, q := m.TwoAdicity()
	result := &Result{
		Modulus:      opts.Modulus,
		Decimal:      opts.Modulus.Decimal(),
		Hex:          opts.Modulus.String(),
		BitLen:       m.BitLen(),
		IsPrime:      true,
		TwoAdicity:   TwoAdicity{K: k, Q: q},
		Parameters:   params,
		Verification: verification,
		Generator:    candidate,
	}
	logger.WithFields(logrus.Fields{
		"two_adicity": k,
		"generator":   candidate.G,
	}).Info("derivation complete")
	return result, nil
}
