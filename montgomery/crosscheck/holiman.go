package crosscheck

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/derivation"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
)

// checkHoliman rebuilds R from 2^256 - p and the powers of R by modular multiplication in holiman/uint256.
// uint256.Int has the same little-endian limb layout as fixedWidth.Uint256.
func checkHoliman(result *derivation.Result, rec *recorder) (bool, error) {
	params := &result.Parameters
	p := uint256.Int(result.Modulus)

	var r, rSquared, rCubed uint256.Int
	r.Sub(new(uint256.Int), &p) // 2^256 - p == 2^256 mod p, up to one more reduction
	r.Mod(&r, &p)
	rSquared.MulMod(&r, &r, &p)
	rCubed.MulMod(&rSquared, &r, &p)

	rec.equal("R", fixedWidth.Uint256(r).String(), params.R.String())
	rec.equal("R^2", fixedWidth.Uint256(rSquared).String(), params.RSquared.String())
	rec.equal("R^3", fixedWidth.Uint256(rCubed).String(), params.RCubed.String())

	var product uint256.Int
	product.Mul(&p, uint256.NewInt(params.Mu))
	rec.word("mu * p mod 2^64", math.MaxUint64, product[0])

	var montgomery uint256.Int
	montgomery.MulMod(uint256.NewInt(result.Generator.G), &r, &p)
	rec.equal("generator (Montgomery form)", fixedWidth.Uint256(montgomery).String(), result.Generator.Montgomery.String())
	return true, nil
}
