package modularArithmetic

import (
	. "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
)

// PowMod computes basis^exponent mod m with the binary (square-and-multiply) method,
// consuming the exponent from the most significant bit downwards.
//
// We follow the convention x^0 == 1 for every x, including x == 0.
// Exponents may be any Uint256, in particular as wide as the modulus itself.
func (z *Modulus) PowMod(basis *Uint256, exponent *Uint256) Uint256 {
	b := z.ReduceUint256(basis)
	result := One_uint256

	for i := exponent.BitLen() - 1; i >= 0; i-- {
		result = z.SquareMod(&result)
		if exponent.Bit(uint(i)) != 0 {
			result = z.MulMod(&result, &b)
		}
	}
	return result
}

// PowModUint64 is PowMod for a small basis.
func (z *Modulus) PowModUint64(basis uint64, exponent *Uint256) Uint256 {
	b := NewUint256FromUint64(basis)
	return z.PowMod(&b, exponent)
}

// EulerCriterion computes x^((m-1)/2) mod m. For prime m and x != 0 mod m, this is either 1 or m-1,
// depending on whether x is a quadratic residue.
func (z *Modulus) EulerCriterion(x *Uint256) Uint256 {
	return z.PowMod(x, &z.halfOrder)
}
