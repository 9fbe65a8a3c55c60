package crosscheck

import (
	"math/big"
	"strconv"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/derivation"
)

// nonResidueSearchLimit bounds the search for the smallest quadratic non-residue.
// For prime p, the smallest non-residue is tiny; hitting this limit means p is not prime.
const nonResidueSearchLimit = 1 << 16

// checkBigInt recomputes everything with math/big, the way a straightforward script would.
func checkBigInt(result *derivation.Result, rec *recorder) (bool, error) {
	p := result.Modulus.ToBigInt()
	one := big.NewInt(1)
	two := big.NewInt(2)

	rec.equal("primality", strconv.FormatBool(p.ProbablyPrime(20)), strconv.FormatBool(result.IsPrime))
	rec.equal("bit length", strconv.Itoa(p.BitLen()), strconv.Itoa(result.BitLen))

	params := &result.Parameters
	for i, ours := range []struct {
		name  string
		value *big.Int
	}{
		{"R", params.R.ToBigInt()},
		{"R^2", params.RSquared.ToBigInt()},
		{"R^3", params.RCubed.ToBigInt()},
	} {
		exponent := big.NewInt(int64(256 * (i + 1)))
		expected := new(big.Int).Exp(two, exponent, p)
		rec.equal(ours.name, "0x"+expected.Text(16), "0x"+ours.value.Text(16))
	}

	twoTo64 := new(big.Int).Lsh(one, 64)
	inverse := new(big.Int).ModInverse(p, twoTo64) // p is odd
	mu := new(big.Int).Sub(twoTo64, inverse)
	mu.Mod(mu, twoTo64)
	rec.word("mu", mu.Uint64(), params.Mu)

	pMinusOne := new(big.Int).Sub(p, one)
	k := pMinusOne.TrailingZeroBits()
	q := new(big.Int).Rsh(pMinusOne, k)
	rec.equal("2-adicity k", strconv.FormatUint(uint64(k), 10), strconv.FormatUint(uint64(result.TwoAdicity.K), 10))
	rec.bigInt("2-adicity q", q, result.TwoAdicity.Q)

	nonResidue := "none below " + strconv.Itoa(nonResidueSearchLimit)
	g := big.NewInt(2)
	for ; g.Cmp(big.NewInt(nonResidueSearchLimit)) < 0; g.Add(g, one) {
		if big.Jacobi(g, p) == -1 {
			nonResidue = g.String()
			break
		}
	}
	rec.equal("generator", nonResidue, strconv.FormatUint(result.Generator.G, 10))

	ours := new(big.Int).SetUint64(result.Generator.G)
	montgomery := new(big.Int).Lsh(ours, 256)
	rec.bigInt("generator (Montgomery form)", montgomery.Mod(montgomery, p), result.Generator.Montgomery)

	halfOrder := new(big.Int).Rsh(pMinusOne, 1)
	euler := new(big.Int).Exp(ours, halfOrder, p)
	rec.equal("generator^((p-1)/2)", "0x"+pMinusOne.Text(16), "0x"+euler.Text(16))
	return true, nil
}
