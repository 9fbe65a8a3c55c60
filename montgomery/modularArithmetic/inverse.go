package modularArithmetic

import (
	"github.com/pkg/errors"

	. "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/montgomeryErrors"
)

// InverseMod computes the multiplicative inverse of x modulo m with the binary extended Euclidean algorithm.
//
// x does not need to be reduced. If x has no inverse (x == 0 mod m, or gcd(x, m) != 1 for composite m),
// we return an error wrapping [montgomeryErrors.ErrNotInvertible].
func (z *Modulus) InverseMod(xIn *Uint256) (Uint256, error) {
	x := z.ReduceUint256(xIn)
	if x.IsZero() {
		return Uint256{}, errors.Wrapf(montgomeryErrors.ErrNotInvertible, "%v is 0 modulo %v", *xIn, z.m)
	}

	// invariants:
	// u == a * x mod m
	// v == c * x mod m
	// a, c in [0, m)
	// v is odd at the top of every iteration, u is odd after removing factors of 2
	u := x
	v := z.m
	a := One_uint256
	c := Zero_uint256

	for !u.IsOne() && !v.IsOne() {
		// u == v at the start of an iteration means gcd(x, m) == u > 1. After u -= v, we detect this via u == 0.
		if u.IsZero() || v.IsZero() {
			return Uint256{}, errors.Wrapf(montgomeryErrors.ErrNotInvertible, "%v shares a factor with %v", *xIn, z.m)
		}

		// If u is even, divide u and a by 2 (the latter mod m)
		for u.IsEven() {
			u.ShiftRightEq(1)
			a = z.halveMod(&a)
		}
		for v.IsEven() {
			v.ShiftRightEq(1)
			c = z.halveMod(&c)
		}

		// Both are odd now. Subtract the smaller one from the larger one. This makes the result even,
		// so the next iteration removes at least one bit.
		if u.Cmp(&v) != Less {
			u.Sub(&u, &v)
			a = z.SubMod(&a, &c)
		} else {
			v.Sub(&v, &u)
			c = z.SubMod(&c, &a)
		}
	}

	if u.IsOne() {
		return a, nil
	}
	return c, nil
}

// InverseModFermat computes x^(m-2) mod m. For prime m and x != 0 mod m, this is the multiplicative inverse (Fermat's little theorem).
//
// This is much slower than InverseMod and meaningless for composite m; we use it as an independent recomputation.
func (z *Modulus) InverseModFermat(xIn *Uint256) (Uint256, error) {
	x := z.ReduceUint256(xIn)
	if x.IsZero() {
		return Uint256{}, errors.Wrapf(montgomeryErrors.ErrNotInvertible, "%v is 0 modulo %v", *xIn, z.m)
	}
	return z.PowMod(&x, &z.mMinusTwo), nil
}

// InverseModPowerOfTwo computes x^{-1} mod 2^k for odd x and 1 <= k <= 256 by Newton (Hensel) lifting:
// If x*y == 1 mod 2^j, then y' := y*(2 - x*y) satisfies x*y' == 1 mod 2^{2j}.
//
// Even x give an error wrapping [montgomeryErrors.ErrNotInvertible];
// k outside [1, 256] gives an error wrapping [montgomeryErrors.ErrInvalidExponent].
func InverseModPowerOfTwo(x *Uint256, k uint) (Uint256, error) {
	if k == 0 || k > 256 {
		return Uint256{}, errors.Wrapf(montgomeryErrors.ErrInvalidExponent, "inverse modulo 2^%d requested, allowed are 1..256", k)
	}
	if x.IsEven() {
		return Uint256{}, errors.Wrapf(montgomeryErrors.ErrNotInvertible, "%v is even and has no inverse modulo 2^%d", *x, k)
	}

	// Every odd x satisfies x*x == 1 mod 8, so y := x is correct to 3 bits.
	y := *x
	two := NewUint256FromUint64(2)
	var t Uint256
	for precision := uint(3); precision < k; precision *= 2 {
		t.MulLow(x, &y)
		t.Sub(&two, &t)
		y.MulLow(&y, &t)
	}

	// Keep only the lowest k bits.
	if k < 256 {
		var mask Uint256
		mask.ShiftLeft(&One_uint256, k)
		mask.Sub(&mask, &One_uint256)
		for i := 0; i < 4; i++ {
			y[i] &= mask[i]
		}
	}
	return y, nil
}

// InverseUint64 computes x^{-1} mod 2^64 for odd x. This is the single-limb case of InverseModPowerOfTwo.
func InverseUint64(x uint64) (uint64, error) {
	wide := NewUint256FromUint64(x)
	inv, err := InverseModPowerOfTwo(&wide, 64)
	if err != nil {
		return 0, err
	}
	return inv[0], nil
}

// Jacobi computes the Jacobi symbol (x / m). For prime m, this is the Legendre symbol:
// 0 if x == 0 mod m, 1 if x is a non-zero square mod m, -1 otherwise.
func (z *Modulus) Jacobi(x *Uint256) int {
	var accumulatedSign int // the second-to-least significant bit of this encodes the answer bit: Iff the bit is set, the answer is -1

	p := z.ReduceUint256(x)
	q := z.m

	// invariant: (-1)^(accumulatedSign>>1) * Jacobi(p/q) is the correct answer.
	for {
		if p.IsZero() {
			return 0
		}

		// p may be even, q is odd. Remove factors of 2 from p:
		trailingZeros := p.TrailingZeros()
		p.ShiftRightEq(uint(trailingZeros))

		// We switch sign for each power of 2 if q % 8 == 3 or q % 8 == 5, i.e. if bit-1 and bit-2 of q differ.
		accumulatedSign ^= (trailingZeros << 1) & int(q[0]^(q[0]>>1))

		// Ensure p >= q. If p and q are odd, we may switch them according to the Law of Reciprocity, getting a sign if p%4 == q%4 == 3
		if p.Cmp(&q) == Less {
			p, q = q, p
			accumulatedSign ^= int(p[0] & q[0])
		}
		if q.IsOne() {
			return 1 - accumulatedSign&0b10
		}
		// Subtracting q keeps the symbol and makes p even, so the next iteration removes at least one factor of two.
		p.Sub(&p, &q)
	}
}
