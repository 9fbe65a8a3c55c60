// Package montgomeryErrors collects the error taxonomy shared by all packages of this module.
//
// IMPORTANT: Functions in this module return errors that wrap the sentinels given here, with context
// (the modulus, the offending value, the attempted search bound) attached.
// Never compare errors for equality. Use [errors.Is] and [errors.As].
package montgomeryErrors

import (
	"errors"
	"fmt"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "montgomery: "

var (
	// ErrNotPrime means the modulus failed primality testing. No constants are derived afterwards.
	ErrNotPrime = errors.New(ErrorPrefix + "modulus is not prime")

	// ErrNotInvertible means a modular inverse was requested for a value that has none (0 mod p, or an even number mod 2^k).
	// For validly constructed inputs, this indicates a logic error.
	ErrNotInvertible = errors.New(ErrorPrefix + "value is not invertible")

	// ErrNoGeneratorFound means no generator candidate below the search bound qualified.
	// This is the one recoverable error: retrying with a larger bound is a valid response.
	ErrNoGeneratorFound = errors.New(ErrorPrefix + "no generator found below search bound")

	// ErrVerificationFailed means the derived constants do not satisfy their defining identities.
	// This indicates an arithmetic bug and must never be ignored.
	ErrVerificationFailed = errors.New(ErrorPrefix + "verification of derived constants failed")

	// ErrInvalidModulus means the modulus is unusable (even or smaller than 3).
	ErrInvalidModulus = errors.New(ErrorPrefix + "invalid modulus")

	// ErrInvalidExponent means a bit-width argument is out of its allowed range.
	ErrInvalidExponent = errors.New(ErrorPrefix + "invalid exponent")

	// ErrInvalidRounds means a Miller-Rabin round count outside the accepted range was requested.
	ErrInvalidRounds = errors.New(ErrorPrefix + "invalid number of Miller-Rabin rounds")

	// ErrCrossCheckFailed means an independent recomputation disagrees with our derived constants.
	ErrCrossCheckFailed = errors.New(ErrorPrefix + "independent recomputation disagrees")
)

// VerificationError is returned (wrapped) when a defining identity of the derived constants does not hold.
// It unwraps to ErrVerificationFailed and carries both the expected and the actual value.
type VerificationError struct {
	Modulus  string // hex representation of the modulus
	Check    string // name of the failed check
	Expected string
	Actual   string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%sverification check %q failed for modulus %s: expected %s, got %s", ErrorPrefix, e.Check, e.Modulus, e.Expected, e.Actual)
}

func (e *VerificationError) Unwrap() error {
	return ErrVerificationFailed
}

// SearchBoundError is returned when the generator search exhausted its candidates.
// It unwraps to ErrNoGeneratorFound; Bound is the (exclusive) bound that was attempted.
type SearchBoundError struct {
	Modulus string
	Bound   uint64
}

func (e *SearchBoundError) Error() string {
	return fmt.Sprintf("%sno generator of the multiplicative group modulo %s in [2, %d)", ErrorPrefix, e.Modulus, e.Bound)
}

func (e *SearchBoundError) Unwrap() error {
	return ErrNoGeneratorFound
}
