package crosscheck

import (
	"math/big"

	"filippo.io/bigmod"
	"github.com/pkg/errors"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/derivation"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
)

// checkBigmod recomputes the powers of R and the generator test with filippo.io/bigmod's Montgomery-based exponentiation.
func checkBigmod(result *derivation.Result, rec *recorder) (bool, error) {
	m, err := bigmod.NewModulus(result.Modulus.ToBigInt().Bytes())
	if err != nil {
		return false, errors.Wrapf(err, "bigmod rejected modulus %v", result.Hex)
	}
	// fromBytes reads a value below the modulus
	fromBytes := func(b []byte) (*bigmod.Nat, error) {
		x, err := bigmod.NewNat().SetBytes(b, m)
		return x, errors.WithStack(err)
	}
	toString := func(x *bigmod.Nat) string {
		return "0x" + new(big.Int).SetBytes(x.Bytes(m)).Text(16)
	}

	two, err := fromBytes([]byte{2})
	if err != nil {
		return false, err
	}
	params := &result.Parameters
	for i, ours := range []struct {
		name  string
		value fixedWidth.Uint256
	}{
		{"R", params.R},
		{"R^2", params.RSquared},
		{"R^3", params.RCubed},
	} {
		exponent := big.NewInt(int64(256 * (i + 1))).Bytes()
		rec.equal(ours.name, toString(bigmod.NewNat().Exp(two, exponent, m)), ours.value.String())
	}

	g, err := fromBytes(new(big.Int).SetUint64(result.Generator.G).Bytes())
	if err != nil {
		return false, err
	}
	order := result.Modulus.ToBigInt()
	order.Sub(order, big.NewInt(1))
	rec.equal("generator^(p-1)", "0x1", toString(bigmod.NewNat().Exp(g, order.Bytes(), m)))
	halfOrder := new(big.Int).Rsh(order, 1)
	rec.equal("generator^((p-1)/2)", "0x"+order.Text(16), toString(bigmod.NewNat().Exp(g, halfOrder.Bytes(), m)))
	return true, nil
}
