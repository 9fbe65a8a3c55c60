package modularArithmetic

import (
	"math/big"

	"github.com/pkg/errors"

	. "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/montgomeryErrors"
)

// Modulus contains a modulus m as well as derived values that help speed up computations.
// The allowed range for m is odd numbers in [3, 2^256).
//
// A Modulus is immutable after creation and safe for concurrent use.
type Modulus struct {
	m         Uint256 // modulus
	mMinusOne Uint256 // m-1, the order of the multiplicative group if m is prime
	mMinusTwo Uint256 // exponent for Fermat inversion
	halfOrder Uint256 // (m-1)/2, exponent for Euler's criterion
	bitLen    int     // bit length of m
}

// NewModulus creates a Modulus from m.
// m must be odd and at least 3, otherwise we return an error wrapping [montgomeryErrors.ErrInvalidModulus].
//
// Note that NewModulus does not check primality. Functions that are only meaningful for prime moduli say so.
func NewModulus(m Uint256) (*Modulus, error) {
	if m.IsEven() {
		return nil, errors.Wrapf(montgomeryErrors.ErrInvalidModulus, "modulus %v is even", m)
	}
	three := NewUint256FromUint64(3)
	if m.IsLessThan(&three) {
		return nil, errors.Wrapf(montgomeryErrors.ErrInvalidModulus, "modulus %v is smaller than 3", m)
	}
	z := &Modulus{m: m, bitLen: m.BitLen()}
	z.mMinusOne.Sub(&m, &One_uint256)
	z.mMinusTwo.Sub(&z.mMinusOne, &One_uint256)
	z.halfOrder.ShiftRight(&z.mMinusOne, 1)
	return z, nil
}

// MustNewModulus is like NewModulus, but panics on error.
// It is intended for package-level initialization from constants.
func MustNewModulus(m Uint256) *Modulus {
	z, err := NewModulus(m)
	if err != nil {
		panic(err)
	}
	return z
}

// ToUint256 returns the modulus.
func (z *Modulus) ToUint256() Uint256 {
	return z.m
}

// ToBigInt returns the modulus as a freshly allocated *big.Int.
func (z *Modulus) ToBigInt() *big.Int {
	return z.m.ToBigInt()
}

// MinusOne returns m-1.
func (z *Modulus) MinusOne() Uint256 {
	return z.mMinusOne
}

// HalfOrder returns (m-1)/2.
func (z *Modulus) HalfOrder() Uint256 {
	return z.halfOrder
}

// BitLen returns the bit length of the modulus.
func (z *Modulus) BitLen() int {
	return z.bitLen
}

// String returns the modulus in hex.
func (z *Modulus) String() string {
	return z.m.String()
}

// TwoAdicity returns k and q such that m - 1 == 2^k * q with q odd.
func (z *Modulus) TwoAdicity() (k uint, q Uint256) {
	k = uint(z.mMinusOne.TrailingZeros())
	q.ShiftRight(&z.mMinusOne, k)
	return
}

// IsReduced checks whether x is in [0, m).
func (z *Modulus) IsReduced(x *Uint256) bool {
	return x.IsLessThan(&z.m)
}
