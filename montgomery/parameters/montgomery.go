package parameters

import (
	"math/bits"

	. "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/modularArithmetic"
)

// This file contains word-by-word Montgomery reduction using mu, i.e. the way a field implementation consumes the derived constants.
// We use it to verify mu and R^2 in their actual role, not just via their defining identities.
//
// Values in Montgomery form are x*R mod p for R = 2^256.

// Redc computes t * 2^{-256} mod p for t < p * 2^256, using mu = -p^{-1} mod 2^64.
//
// We cancel one limb of t per step by adding a suitable multiple q*p, where q = t[0] * mu mod 2^64, and shift.
// The result before the final conditional subtraction is < 2p, which may exceed 2^256 for moduli close to 2^256;
// the extra top bit is kept in a separate word.
func Redc(m *modularArithmetic.Modulus, mu uint64, t *Uint512) Uint256 {
	modulus := m.ToUint256()
	acc := *t
	var extra uint64 // 9th limb of the accumulator
	for i := 0; i < 4; i++ {
		q := acc[i] * mu
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(q, modulus[j])
			var c uint64
			lo, c = bits.Add64(lo, acc[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			acc[i+j] = lo // for j == 0, this is 0 by choice of q
			carry = hi
		}
		for k := i + 4; k < 8 && carry != 0; k++ {
			acc[k], carry = bits.Add64(acc[k], carry, 0)
		}
		extra += carry
	}
	result := Uint256{acc[4], acc[5], acc[6], acc[7]}
	if extra != 0 || !m.IsReduced(&result) {
		result.Sub(&result, &modulus) // wraps around correctly if extra != 0
	}
	return result
}

// MontMul computes x * y * 2^{-256} mod p for x, y in [0, p).
// If x and y are in Montgomery form, so is the result.
func MontMul(m *modularArithmetic.Modulus, mu uint64, x, y *Uint256) Uint256 {
	product := LongMul(x, y)
	return Redc(m, mu, &product)
}

// ToMontgomery converts x to Montgomery form x * R mod p. x does not need to be reduced.
func ToMontgomery(m *modularArithmetic.Modulus, params *Parameters, x *Uint256) Uint256 {
	return m.MulMod(x, &params.R)
}

// FromMontgomery converts x from Montgomery form back to the plain residue x * R^{-1} mod p.
func FromMontgomery(m *modularArithmetic.Modulus, params *Parameters, x *Uint256) Uint256 {
	var wide Uint512
	wide.FromUint256(x)
	return Redc(m, params.Mu, &wide)
}
