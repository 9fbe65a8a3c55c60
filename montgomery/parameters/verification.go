package parameters

import (
	"fmt"

	"github.com/pkg/errors"

	. "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/modularArithmetic"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/montgomeryErrors"
)

// Names of the individual checks, as reported in VerificationErrors.
const (
	CheckR                   = "R == 2^256 mod p"
	CheckRInverse            = "R * R^{-1} == 1 mod p"
	CheckMu                  = "mu * p == -1 mod 2^64"
	CheckRSquared            = "R^2 == 2^512 mod p"
	CheckRCubed              = "R^3 == 2^768 mod p"
	CheckMontgomeryRoundTrip = "REDC(MontMul(x, R^2)) == x"
)

// Verification records the outcome of every check run by Verify, together with the values
// that the diagnostics output reports.
type Verification struct {
	R                   bool
	RInverse            bool
	Mu                  bool
	RSquared            bool
	RCubed              bool
	MontgomeryRoundTrip bool

	RTimesRInverse Uint256 // MulMod(R, InverseMod(R)), which must be 1
	MuTimesModulus uint64  // mu * p mod 2^64, which must be 2^64 - 1
}

// AllPassed reports whether every check succeeded.
func (v Verification) AllPassed() bool {
	return v.R && v.RInverse && v.Mu && v.RSquared && v.RCubed && v.MontgomeryRoundTrip
}

// Verify checks the defining identities of params by independent recomputation:
//
//   - R agrees with 2^256 computed by modular exponentiation
//   - R * R^{-1} == 1 mod p, where the binary-Euclid inverse must also agree with the Fermat inverse
//   - mu * p == 2^64 - 1 mod 2^64
//   - R^2 and R^3 agree with 2^512 and 2^768 computed by modular exponentiation
//   - Montgomery multiplication with mu round-trips small values
//
// All checks are run and recorded. If any check fails, the returned error is a *[montgomeryErrors.VerificationError]
// for the first failing check.
func Verify(m *modularArithmetic.Modulus, params *Parameters) (Verification, error) {
	var v Verification
	var failure *montgomeryErrors.VerificationError
	fail := func(check string, expected, actual fmt.Stringer) {
		if failure == nil {
			failure = &montgomeryErrors.VerificationError{Modulus: m.String(), Check: check, Expected: expected.String(), Actual: actual.String()}
		}
	}

	// R via exponentiation
	exponent := NewUint256FromUint64(Width)
	expectedR := m.PowModUint64(2, &exponent)
	v.R = expectedR == params.R
	if !v.R {
		fail(CheckR, expectedR, params.R)
	}

	// R * R^{-1}
	rInverse, err := m.InverseMod(&params.R)
	if err != nil {
		return v, errors.Wrapf(err, "R = %v is not invertible modulo %v", params.R, m)
	}
	v.RTimesRInverse = m.MulMod(&params.R, &rInverse)
	rInverseFermat, err := m.InverseModFermat(&params.R)
	if err != nil {
		return v, errors.Wrapf(err, "R = %v is not invertible modulo %v", params.R, m)
	}
	v.RInverse = v.RTimesRInverse.IsOne() && rInverse == rInverseFermat
	if !v.RTimesRInverse.IsOne() {
		fail(CheckRInverse, One_uint256, v.RTimesRInverse)
	} else if rInverse != rInverseFermat {
		fail(CheckRInverse, rInverseFermat, rInverse)
	}

	// mu * p
	modulus := m.ToUint256()
	v.MuTimesModulus = params.Mu * modulus[0]
	v.Mu = v.MuTimesModulus == ^uint64(0)
	if !v.Mu {
		fail(CheckMu, hexUint64(^uint64(0)), hexUint64(v.MuTimesModulus))
	}

	// R^2, R^3 via exponentiation
	exponent.SetUint64(2 * Width)
	expectedRSquared := m.PowModUint64(2, &exponent)
	v.RSquared = expectedRSquared == params.RSquared
	if !v.RSquared {
		fail(CheckRSquared, expectedRSquared, params.RSquared)
	}
	exponent.SetUint64(3 * Width)
	expectedRCubed := m.PowModUint64(2, &exponent)
	v.RCubed = expectedRCubed == params.RCubed
	if !v.RCubed {
		fail(CheckRCubed, expectedRCubed, params.RCubed)
	}

	// Montgomery round trip for x = 1, 2
	v.MontgomeryRoundTrip = true
	for _, small := range []uint64{1, 2} {
		x := NewUint256FromUint64(small)
		montgomeryForm := MontMul(m, params.Mu, &x, &params.RSquared)
		back := FromMontgomery(m, params, &montgomeryForm)
		if back != x {
			v.MontgomeryRoundTrip = false
			fail(CheckMontgomeryRoundTrip, x, back)
		}
	}

	if failure != nil {
		log.WithField("check", failure.Check).Error("verification of Montgomery parameters failed")
		return v, failure
	}
	return v, nil
}

type hexUint64 uint64

func (h hexUint64) String() string {
	return fmt.Sprintf("0x%016x", uint64(h))
}
