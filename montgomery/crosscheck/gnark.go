package crosscheck

import (
	"strconv"

	"github.com/consensys/gnark-crypto/field/generator/config"
	"github.com/pkg/errors"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/derivation"
)

// checkGnark compares against the precomputed values gnark-crypto's code generator uses for its field elements.
//
// gnark-crypto works with as many 64-bit words as the modulus needs, so its R is 2^256 only for moduli of 193 to 256 bits.
// Smaller moduli skip this source.
func checkGnark(result *derivation.Result, rec *recorder) (bool, error) {
	if result.BitLen <= 192 {
		return false, nil
	}
	field, err := config.NewFieldConfig("field", "Element", result.Hex, false)
	if err != nil {
		return false, errors.Wrapf(err, "gnark-crypto rejected modulus %v", result.Hex)
	}
	if field.NbWords != 4 {
		return false, nil
	}

	params := &result.Parameters
	rec.limbs("modulus", field.Q, result.Modulus)
	rec.equal("bit length", strconv.Itoa(field.NbBits), strconv.Itoa(result.BitLen))
	rec.limbs("R", field.One, params.R)
	rec.limbs("R^2", field.RSquare, params.RSquared)
	rec.word("mu", field.QInverse[0], params.Mu)

	// gnark-crypto only determines 2-adicity and the smallest non-residue if it needs them for Tonelli-Shanks (p == 1 mod 8).
	if field.SqrtTonelliShanks {
		rec.equal("2-adicity k", strconv.FormatUint(field.SqrtE, 10), strconv.FormatUint(uint64(result.TwoAdicity.K), 10))
		rec.limbs("2-adicity q", field.SqrtS, result.TwoAdicity.Q)
		rec.bigInt("generator (Montgomery form)", &field.NonResidue, result.Generator.Montgomery)
	}
	return true, nil
}
