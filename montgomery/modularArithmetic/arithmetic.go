package modularArithmetic

import (
	. "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
)

// This file contains the basic residue operations modulo a Modulus.
//
// Unless stated otherwise, results are always fully reduced, i.e. in [0, m).
// AddMod, SubMod and NegMod require fully reduced inputs; MulMod, SquareMod and Reduce accept anything.

// Reduce computes x mod m for a 512-bit x.
//
// This is schoolbook long division restricted to computing the remainder:
// we subtract m * 2^s for s = bitlen(x) - bitlen(m), ..., 1, 0 whenever this does not underflow.
func (z *Modulus) Reduce(x *Uint512) Uint256 {
	remainder := *x
	xLen := remainder.BitLen()

	// x has fewer bits than m, hence x < 2^(bitLen-1) <= m
	if xLen < z.bitLen {
		return remainder.Lo()
	}

	shift := uint(xLen - z.bitLen)
	var shiftedModulus, difference Uint512
	shiftedModulus.FromUint256(&z.m)
	shiftedModulus.ShiftLeft(&shiftedModulus, shift)

	// invariant: at the start of the iteration for s, remainder < 2 * (m << s)
	for s := int(shift); s >= 0; s-- {
		if difference.SubWithBorrow(&remainder, &shiftedModulus) == 0 {
			remainder = difference
		}
		shiftedModulus.ShiftRightOneEq()
	}
	return remainder.Lo()
}

// ReduceUint256 computes x mod m.
func (z *Modulus) ReduceUint256(x *Uint256) Uint256 {
	var wide Uint512
	wide.FromUint256(x)
	return z.Reduce(&wide)
}

// AddMod computes x + y mod m. x and y must be in [0, m).
func (z *Modulus) AddMod(x, y *Uint256) (result Uint256) {
	carry := result.AddWithCarry(x, y)
	if carry != 0 || !result.IsLessThan(&z.m) {
		result.Sub(&result, &z.m) // wraps around correctly if carry != 0
	}
	return
}

// SubMod computes x - y mod m. x and y must be in [0, m).
func (z *Modulus) SubMod(x, y *Uint256) (result Uint256) {
	borrow := result.SubWithBorrow(x, y)
	if borrow != 0 {
		result.Add(&result, &z.m)
	}
	return
}

// NegMod computes -x mod m. x must be in [0, m).
func (z *Modulus) NegMod(x *Uint256) (result Uint256) {
	if x.IsZero() {
		return
	}
	result.Sub(&z.m, x)
	return
}

// MulMod computes x * y mod m via the full 512-bit product.
// For any x, y (reduced or not), the result is in [0, m).
func (z *Modulus) MulMod(x, y *Uint256) Uint256 {
	product := LongMul(x, y)
	return z.Reduce(&product)
}

// SquareMod computes x^2 mod m.
func (z *Modulus) SquareMod(x *Uint256) Uint256 {
	return z.MulMod(x, x)
}

// halveMod computes x / 2 mod m for x in [0, m). This requires m to be odd.
func (z *Modulus) halveMod(x *Uint256) (result Uint256) {
	if x.IsEven() {
		result.ShiftRight(x, 1)
		return
	}
	// (x + m) is even; the sum has up to 257 bits, so we shift the carry back in.
	carry := result.AddWithCarry(x, &z.m)
	result.ShiftRight(&result, 1)
	result[3] |= carry << 63
	return
}
