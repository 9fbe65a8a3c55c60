// Package parameters derives and verifies the constants needed for Montgomery-form arithmetic modulo a fixed odd modulus p:
// R = 2^256 mod p, R^2 mod p, R^3 mod p and the single-limb reduction multiplier mu = -p^{-1} mod 2^64.
//
// Derived Parameters are never trusted blindly: Derive always runs Verify, which recomputes the defining identities
// by independent means. A failing check is an arithmetic bug and is reported as a fatal error.
package parameters

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	. "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/modularArithmetic"
)

var log = logrus.WithField("process", "parameters")

const (
	Width    = 256 // bit-width of the Montgomery radix, R = 2^Width
	LimbBits = 64  // bit-width of a limb; mu is taken modulo 2^LimbBits
)

// Parameters holds the Montgomery constants for a given modulus. All values except Mu are fully reduced modulo p.
//
// Parameters are computed once and never modified afterwards.
type Parameters struct {
	Width    int
	R        Uint256 // 2^256 mod p
	RSquared Uint256 // 2^512 mod p, used to convert into Montgomery form
	RCubed   Uint256 // 2^768 mod p
	Mu       uint64  // -p^{-1} mod 2^64
}

// Derive computes the Montgomery parameters for m and verifies them. The outcome of that single verification is returned alongside.
//
// m is assumed to be prime (this is not checked here). Any failed verification makes Derive return an error
// wrapping [montgomeryErrors.ErrVerificationFailed] that contains both the expected and the actual value.
func Derive(m *modularArithmetic.Modulus) (Parameters, Verification, error) {
	var params Parameters
	params.Width = Width

	// R = 2^256 mod p is obtained by reducing a single 1-bit at position 256.
	var twoTo256 Uint512
	twoTo256[Width/64] = 1
	params.R = m.Reduce(&twoTo256)
	params.RSquared = m.MulMod(&params.R, &params.R)
	params.RCubed = m.MulMod(&params.RSquared, &params.R)

	modulus := m.ToUint256()
	inv, err := modularArithmetic.InverseModPowerOfTwo(&modulus, LimbBits)
	if err != nil {
		return Parameters{}, Verification{}, errors.Wrapf(err, "could not compute mu for modulus %v", m)
	}
	params.Mu = -inv[0] // 2^64 - inv mod 2^64

	log.WithFields(logrus.Fields{
		"modulus": m.String(),
		"r":       params.R.String(),
		"mu":      params.Mu,
	}).Debug("derived Montgomery parameters")

	verification, err := Verify(m, &params)
	if err != nil {
		return Parameters{}, verification, err
	}
	return params, verification, nil
}
