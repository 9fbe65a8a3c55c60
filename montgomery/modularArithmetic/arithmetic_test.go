package modularArithmetic

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GottfriedHerold/MontgomeryConstants/internal/testutils"
	. "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
)

// Differential tests against big.Int.

func TestReduce(t *testing.T) {
	const num = 1000
	samples := testutils.BigIntSamples(1, twoTo512_Int, num)
	for _, sample := range samples {
		x := BigIntToUint512(sample)
		reduced := testModulus.Reduce(&x)
		expected := new(big.Int).Mod(sample, testModulus_Int)
		testutils.FatalUnless(t, reduced.ToBigInt().Cmp(expected) == 0, "Reduce differs from big.Int for %v", sample)
	}

	// values around the modulus
	p := testModulus.ToUint256()
	pMinusOne := testModulus.MinusOne()
	var twoP Uint512
	twoP.FromUint256(&p)
	twoP.ShiftLeft(&twoP, 1)
	r := testModulus.ReduceUint256(&p)
	assert.True(t, r.IsZero())
	assert.Equal(t, pMinusOne, testModulus.ReduceUint256(&pMinusOne))
	r = testModulus.Reduce(&twoP)
	assert.True(t, r.IsZero())
	assert.Equal(t, Zero_uint256, testModulus.ReduceUint256(&Zero_uint256))

	// 2^256 mod p, 2^511 mod p
	var wide Uint512
	wide[4] = 1
	r = testModulus.Reduce(&wide)
	assert.Zero(t, r.ToBigInt().Cmp(new(big.Int).Mod(twoTo256_Int, testModulus_Int)))
	wide = Uint512{}
	wide[7] = 1 << 63
	r = testModulus.Reduce(&wide)
	assert.Zero(t, r.ToBigInt().Cmp(new(big.Int).Mod(new(big.Int).Lsh(big.NewInt(1), 511), testModulus_Int)))
}

func TestMulModProperties(t *testing.T) {
	const num = 64
	xs := reducedSamples(2, num)
	ys := reducedSamples(3, num)
	for _, x := range xs {
		for _, y := range ys {
			xy := testModulus.MulMod(&x, &y)
			yx := testModulus.MulMod(&y, &x)
			testutils.FatalUnless(t, xy == yx, "MulMod not commutative for %v, %v", x, y)
			testutils.FatalUnless(t, testModulus.IsReduced(&xy), "MulMod result not reduced")

			expected := new(big.Int).Mul(x.ToBigInt(), y.ToBigInt())
			expected.Mod(expected, testModulus_Int)
			testutils.FatalUnless(t, xy.ToBigInt().Cmp(expected) == 0, "MulMod differs from big.Int")
		}
	}

	// unreduced inputs are allowed
	for _, x := range unreducedSamples(4, num) {
		sq := testModulus.SquareMod(&x)
		expected := new(big.Int).Mul(x.ToBigInt(), x.ToBigInt())
		expected.Mod(expected, testModulus_Int)
		testutils.FatalUnless(t, sq.ToBigInt().Cmp(expected) == 0, "SquareMod differs from big.Int on unreduced input")
	}
}

func TestAddSubNegMod(t *testing.T) {
	const num = 64
	xs := reducedSamples(5, num)
	ys := reducedSamples(6, num)
	for _, x := range xs {
		xInt := x.ToBigInt()
		neg := testModulus.NegMod(&x)
		expectedNeg := new(big.Int).Neg(xInt)
		expectedNeg.Mod(expectedNeg, testModulus_Int)
		testutils.FatalUnless(t, neg.ToBigInt().Cmp(expectedNeg) == 0, "NegMod differs from big.Int for %v", x)

		for _, y := range ys {
			yInt := y.ToBigInt()
			sum := testModulus.AddMod(&x, &y)
			expected := new(big.Int).Add(xInt, yInt)
			expected.Mod(expected, testModulus_Int)
			testutils.FatalUnless(t, sum.ToBigInt().Cmp(expected) == 0, "AddMod differs from big.Int")

			diff := testModulus.SubMod(&x, &y)
			expected.Sub(xInt, yInt)
			expected.Mod(expected, testModulus_Int)
			testutils.FatalUnless(t, diff.ToBigInt().Cmp(expected) == 0, "SubMod differs from big.Int")
		}
	}
}

// AddMod must handle a carry out of 256 bits for moduli close to 2^256.
func TestAddModLargeModulus(t *testing.T) {
	m := Max_uint256 // odd, 2^256 - 1
	largeModulus := MustNewModulus(m)
	x := Max_uint256
	x[0] -= 2 // odd, so halving needs the carry of x + m
	sum := largeModulus.AddMod(&x, &x)
	expected := new(big.Int).Add(x.ToBigInt(), x.ToBigInt())
	expected.Mod(expected, m.ToBigInt())
	assert.Zero(t, sum.ToBigInt().Cmp(expected))

	halved := largeModulus.halveMod(&x)
	doubled := largeModulus.AddMod(&halved, &halved)
	assert.Equal(t, x, doubled)
}

func TestHalveMod(t *testing.T) {
	for _, x := range reducedSamples(7, 200) {
		halved := testModulus.halveMod(&x)
		testutils.FatalUnless(t, testModulus.IsReduced(&halved), "halveMod result not reduced")
		doubled := testModulus.AddMod(&halved, &halved)
		testutils.FatalUnless(t, doubled == x, "halveMod is not the inverse of doubling for %v", x)
	}
}
