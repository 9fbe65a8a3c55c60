package primality

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/modularArithmetic"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/montgomeryErrors"
)

var log = logrus.WithField("process", "primality")

// DefaultRounds is the number of Miller-Rabin rounds used if a Tester does not specify any.
// A composite number passes a single round with probability at most 1/4.
const DefaultRounds = 32

// Accepted range for Tester.Rounds (other than 0, which selects DefaultRounds).
const (
	MinRounds = 20
	MaxRounds = 1024
)

// errCompositeWitness is used internally to cancel outstanding rounds once a witness was found. It never leaves this package.
var errCompositeWitness = errors.New(montgomeryErrors.ErrorPrefix + "witness of compositeness found")

// Tester runs Miller-Rabin primality tests.
//
// The zero value is ready to use: Rounds == 0 means DefaultRounds, Workers <= 0 means sequential execution
// and a nil Rand means crypto/rand. Any other Rounds must lie in [MinRounds, MaxRounds].
type Tester struct {
	Rounds  int       // number of Miller-Rabin rounds
	Workers int       // maximal number of rounds evaluated concurrently
	Rand    io.Reader // source for the random bases
}

// EffectiveRounds returns the number of Miller-Rabin rounds the Tester runs.
// The error wraps [montgomeryErrors.ErrInvalidRounds] if Rounds is out of range.
func (t *Tester) EffectiveRounds() (int, error) {
	switch {
	case t.Rounds == 0:
		return DefaultRounds, nil
	case t.Rounds < MinRounds || t.Rounds > MaxRounds:
		return 0, errors.Wrapf(montgomeryErrors.ErrInvalidRounds, "%d rounds requested, allowed are %d..%d", t.Rounds, MinRounds, MaxRounds)
	default:
		return t.Rounds, nil
	}
}

func (t *Tester) workers() int {
	if t.Workers <= 0 {
		return 1
	}
	return t.Workers
}

func (t *Tester) randomness() io.Reader {
	if t.Rand == nil {
		return rand.Reader
	}
	return t.Rand
}

// Outcome describes how a primality test was decided.
type Outcome struct {
	IsPrime bool
	// Deterministic is set if trial division decided, i.e. for small n or n with a small factor.
	// The answer is then certain and no Miller-Rabin round ran.
	Deterministic bool
	Rounds        int // Miller-Rabin rounds run (all of them if n is probably prime)
}

// IsProbablyPrime reports whether n is (probably) prime.
//
// Small and even n as well as n with a small prime factor are decided deterministically.
// Otherwise, a false answer is always correct, while a true answer is wrong with probability at most 4^-Rounds.
//
// Errors come from an out-of-range Rounds (wrapping [montgomeryErrors.ErrInvalidRounds]), from ctx (cancellation)
// or from failing to read randomness.
func (t *Tester) IsProbablyPrime(ctx context.Context, n fixedWidth.Uint256) (bool, error) {
	outcome, err := t.Test(ctx, n)
	return outcome.IsPrime, err
}

// Test is IsProbablyPrime, but also reports how the answer was obtained.
func (t *Tester) Test(ctx context.Context, n fixedWidth.Uint256) (Outcome, error) {
	rounds, err := t.EffectiveRounds()
	if err != nil {
		return Outcome{}, err
	}
	if decided, isPrime := trialDivision(&n); decided {
		return Outcome{IsPrime: isPrime, Deterministic: true}, nil
	}

	m, err := modularArithmetic.NewModulus(n) // cannot fail: n is odd and large at this point
	if err != nil {
		return Outcome{}, err
	}

	bases, err := t.drawBases(&n, rounds)
	if err != nil {
		return Outcome{}, err
	}

	log.WithFields(logrus.Fields{
		"candidate": n.String(),
		"rounds":    len(bases),
		"workers":   t.workers(),
	}).Debug("running Miller-Rabin")

	k, q := m.TwoAdicity()
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(t.workers())
	for i := range bases {
		base := bases[i]
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			if !strongProbablePrime(m, k, &q, &base) {
				return errCompositeWitness
			}
			return nil
		})
	}

	err = group.Wait()
	switch {
	case err == nil:
		return Outcome{IsPrime: true, Rounds: rounds}, nil
	case errors.Is(err, errCompositeWitness):
		log.WithField("candidate", n.String()).Debug("found witness of compositeness")
		return Outcome{IsPrime: false, Rounds: rounds}, nil
	default:
		return Outcome{}, errors.Wrapf(err, "primality test of %v interrupted", n)
	}
}

// Validate returns an error wrapping [montgomeryErrors.ErrNotPrime] if n is not (probably) prime.
func (t *Tester) Validate(ctx context.Context, n fixedWidth.Uint256) error {
	isPrime, err := t.IsProbablyPrime(ctx, n)
	if err != nil {
		return err
	}
	if !isPrime {
		return errors.Wrapf(montgomeryErrors.ErrNotPrime, "modulus %v", n)
	}
	return nil
}

// drawBases draws the bases for all rounds upfront, uniformly from [2, n-2].
// The source of randomness need not be safe for concurrent use, so this happens before any round starts.
func (t *Tester) drawBases(n *fixedWidth.Uint256, rounds int) ([]fixedWidth.Uint256, error) {
	reader := t.randomness()

	// n >= smallPrimeBound >= 5 here, so the range [2, n-2] is non-empty.
	rangeSize := n.ToBigInt()
	rangeSize.Sub(rangeSize, big.NewInt(3))
	two := big.NewInt(2)

	bases := make([]fixedWidth.Uint256, rounds)
	for i := range bases {
		a, err := randomBelow(reader, rangeSize)
		if err != nil {
			return nil, errors.Wrap(err, montgomeryErrors.ErrorPrefix+"could not draw Miller-Rabin base")
		}
		a.Add(a, two)
		bases[i] = fixedWidth.BigIntToUInt256(a)
	}
	return bases, nil
}

// IsStrongProbablePrime runs a single Miller-Rabin round for the odd modulus m with the given base.
// A false result proves that m is composite.
func IsStrongProbablePrime(m *modularArithmetic.Modulus, base fixedWidth.Uint256) bool {
	k, q := m.TwoAdicity()
	return strongProbablePrime(m, k, &q, &base)
}

// strongProbablePrime checks whether m is a strong probable prime to the given base, where m-1 == 2^k * q with q odd.
func strongProbablePrime(m *modularArithmetic.Modulus, k uint, q *fixedWidth.Uint256, base *fixedWidth.Uint256) bool {
	minusOne := m.MinusOne()
	x := m.PowMod(base, q)
	if x.IsOne() || x == minusOne {
		return true
	}
	for i := uint(1); i < k; i++ {
		x = m.SquareMod(&x)
		if x == minusOne {
			return true
		}
		if x.IsOne() { // non-trivial square root of 1
			return false
		}
	}
	return false
}

// randomBelow draws a uniform number from [0, bound) by rejection sampling. bound must be positive.
func randomBelow(reader io.Reader, bound *big.Int) (*big.Int, error) {
	bitLen := bound.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	excess := uint(len(buf)*8 - bitLen)
	candidate := new(big.Int)
	for {
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, err
		}
		buf[0] &= 0xff >> excess
		candidate.SetBytes(buf)
		if candidate.Cmp(bound) < 0 {
			return candidate, nil
		}
	}
}
