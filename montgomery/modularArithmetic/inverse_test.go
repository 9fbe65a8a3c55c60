package modularArithmetic

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/MontgomeryConstants/internal/testutils"
	. "github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/montgomeryErrors"
)

func TestInverseMod(t *testing.T) {
	const num = 500
	for _, x := range unreducedSamples(20, num) {
		reduced := testModulus.ReduceUint256(&x)
		if reduced.IsZero() {
			continue
		}
		inv, err := testModulus.InverseMod(&x)
		testutils.FatalUnless(t, err == nil, "InverseMod failed for %v: %v", x, err)
		testutils.FatalUnless(t, testModulus.IsReduced(&inv), "InverseMod result not reduced")
		product := testModulus.MulMod(&x, &inv)
		testutils.FatalUnless(t, product == One_uint256, "x * x^{-1} != 1 for %v", x)

		expected := new(big.Int).ModInverse(x.ToBigInt(), testModulus_Int)
		testutils.FatalUnless(t, inv.ToBigInt().Cmp(expected) == 0, "InverseMod differs from big.Int for %v", x)
	}
	inv, err := testModulus.InverseMod(&One_uint256)
	require.NoError(t, err)
	assert.Equal(t, One_uint256, inv)

	pMinusOne := testModulus.MinusOne()
	inv, err = testModulus.InverseMod(&pMinusOne)
	require.NoError(t, err)
	assert.Equal(t, pMinusOne, inv)
}

func TestInverseModFermat(t *testing.T) {
	for _, x := range reducedSamples(21, 50) {
		if x.IsZero() {
			continue
		}
		euclid, err1 := testModulus.InverseMod(&x)
		fermat, err2 := testModulus.InverseModFermat(&x)
		testutils.FatalUnless(t, err1 == nil && err2 == nil, "unexpected error")
		testutils.FatalUnless(t, euclid == fermat, "Euclid and Fermat inverse disagree for %v", x)
	}
}

func TestInverseOfZeroFails(t *testing.T) {
	_, err := testModulus.InverseMod(&Zero_uint256)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrNotInvertible))

	p := testModulus.ToUint256()
	_, err = testModulus.InverseMod(&p)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrNotInvertible))

	_, err = testModulus.InverseModFermat(&Zero_uint256)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrNotInvertible))
}

func TestInverseModComposite(t *testing.T) {
	for x := uint64(1); x < 15; x++ {
		value := NewUint256FromUint64(x)
		inv, err := compositeModulus.InverseMod(&value)
		if x%3 == 0 || x%5 == 0 {
			assert.Truef(t, errors.Is(err, montgomeryErrors.ErrNotInvertible), "%v has no inverse mod 15, but got %v", x, inv)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, uint64(1), (x*inv[0])%15, "wrong inverse of %v mod 15", x)
	}
}

func TestInverseModPowerOfTwo(t *testing.T) {
	xs := unreducedSamples(22, 200)
	for _, x := range xs {
		x[0] |= 1
		for _, k := range []uint{1, 2, 3, 5, 8, 63, 64, 65, 128, 200, 255, 256} {
			inv, err := InverseModPowerOfTwo(&x, k)
			testutils.FatalUnless(t, err == nil, "unexpected error %v", err)
			twoToK := new(big.Int).Lsh(big.NewInt(1), k)
			expected := new(big.Int).ModInverse(x.ToBigInt(), twoToK)
			testutils.FatalUnless(t, inv.ToBigInt().Cmp(expected) == 0, "InverseModPowerOfTwo wrong for %v, k=%v", x, k)
		}
	}

	two := NewUint256FromUint64(2)
	_, err := InverseModPowerOfTwo(&two, 64)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrNotInvertible))
	_, err = InverseModPowerOfTwo(&One_uint256, 0)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrInvalidExponent))
	_, err = InverseModPowerOfTwo(&One_uint256, 257)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrInvalidExponent))
}

func TestInverseUint64(t *testing.T) {
	for _, x := range testutils.Uint64Samples(23, 1000) {
		x |= 1
		inv, err := InverseUint64(x)
		testutils.FatalUnless(t, err == nil, "unexpected error")
		testutils.FatalUnless(t, x*inv == 1, "InverseUint64 wrong for %v", x)
	}
	_, err := InverseUint64(0)
	assert.True(t, errors.Is(err, montgomeryErrors.ErrNotInvertible))

	// mu for the default modulus
	p := testModulus.ToUint256()
	inv, err := InverseUint64(p[0])
	require.NoError(t, err)
	assert.Equal(t, uint64(0x921d21f874d30d7f), -inv)
}

func TestJacobi(t *testing.T) {
	for _, x := range unreducedSamples(24, 300) {
		expected := big.Jacobi(x.ToBigInt(), testModulus_Int)
		got := testModulus.Jacobi(&x)
		testutils.FatalUnless(t, got == expected, "Jacobi differs from big.Int for %v: got %v, expected %v", x, got, expected)
	}
	// composite moduli: Jacobi symbol, not Legendre symbol
	for x := int64(0); x < 60; x++ {
		value := NewUint256FromUint64(uint64(x))
		expected := big.Jacobi(big.NewInt(x), big.NewInt(15))
		testutils.FatalUnless(t, compositeModulus.Jacobi(&value) == expected, "Jacobi(%v / 15) wrong", x)
	}
	assert.Equal(t, 0, testModulus.Jacobi(&Zero_uint256))
	assert.Equal(t, 1, testModulus.Jacobi(&One_uint256))
	five := NewUint256FromUint64(5)
	assert.Equal(t, -1, testModulus.Jacobi(&five))
}
