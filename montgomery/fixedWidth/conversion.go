package fixedWidth

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"

	"github.com/GottfriedHerold/MontgomeryConstants/internal/utils"
)

// This file contains conversions between Uint256/Uint512 and limb arrays, big.Int and strings.
//
// Limb arrays are what downstream code emits as constants, so FromLimbs / ToLimbs must round-trip exactly.

// FromLimbs sets z from a low-endian limb array.
func (z *Uint256) FromLimbs(limbs [4]uint64) {
	*z = Uint256(limbs)
}

// ToLimbs returns a copy of the low-endian limbs of z.
func (z *Uint256) ToLimbs() [4]uint64 {
	return [4]uint64(*z)
}

// FromLimbSlice creates a Uint256 from a slice of exactly 4 low-endian limbs.
// Other lengths give an error wrapping ErrLimbCount.
func FromLimbSlice(limbs []uint64) (Uint256, error) {
	if len(limbs) != 4 {
		return Uint256{}, errors.Wrapf(ErrLimbCount, "got %d limbs", len(limbs))
	}
	return Uint256{limbs[0], limbs[1], limbs[2], limbs[3]}, nil
}

// ToBigInt converts z to a freshly allocated *big.Int.
func (z *Uint256) ToBigInt() *big.Int {
	return utils.UIntarrayToInt((*[4]uint64)(z))
}

// FromBigInt sets z from x. x must be in [0, 2^256); this panics otherwise.
func (z *Uint256) FromBigInt(x *big.Int) {
	*z = utils.BigIntToUIntArray(x)
}

// BigIntToUInt256 converts x to a Uint256. x must be in [0, 2^256); this panics otherwise.
func BigIntToUInt256(x *big.Int) (result Uint256) {
	return utils.BigIntToUIntArray(x)
}

// ToBigInt converts z to a freshly allocated *big.Int.
func (z *Uint512) ToBigInt() *big.Int {
	return utils.UIntarray512ToInt((*[8]uint64)(z))
}

// FromBigInt sets z from x. x must be in [0, 2^512); this panics otherwise.
func (z *Uint512) FromBigInt(x *big.Int) {
	*z = utils.BigIntToUIntArray512(x)
}

// BigIntToUint512 converts x to a Uint512. x must be in [0, 2^512); this panics otherwise.
func BigIntToUint512(x *big.Int) (result Uint512) {
	return utils.BigIntToUIntArray512(x)
}

// ParseUint256 parses a decimal or 0x-prefixed hexadecimal literal (with optional "_" separators).
// Surrounding whitespace is ignored.
//
// Possible errors wrap ErrParse (not a number, negative) or ErrOutOfRange (>= 2^256).
func ParseUint256(input string) (Uint256, error) {
	trimmed := strings.TrimSpace(input)
	value, ok := new(big.Int).SetString(trimmed, 0)
	if !ok || trimmed == "" {
		return Uint256{}, errors.Wrapf(ErrParse, "%q", input)
	}
	if value.Sign() < 0 {
		return Uint256{}, errors.Wrapf(ErrParse, "%q is negative", input)
	}
	if value.BitLen() > 256 {
		return Uint256{}, errors.Wrapf(ErrOutOfRange, "%q has %d bits", input, value.BitLen())
	}
	return BigIntToUInt256(value), nil
}

// InitUint256FromString initializes a Uint256 from a given string.
// This internally uses big.Int's SetString and understands exactly those string formats.
//
// This function panics on failure, which is appropriate for its use case:
// It is supposed to be used to initialize package-level variables (probably intended to be constant) from constant string literals.
func InitUint256FromString(input string) (output Uint256) {
	inputInt := utils.InitIntFromString(input)
	output.FromBigInt(inputInt)
	return
}

// String returns z as a 0x-prefixed hexadecimal string without leading zeros.
func (z Uint256) String() string {
	return "0x" + z.ToBigInt().Text(16)
}

// Decimal returns the decimal representation of z.
func (z *Uint256) Decimal() string {
	return z.ToBigInt().String()
}

// LimbString returns the limbs as a Go array literal with fixed-width hex limbs,
// e.g. [4]uint64{0x0000000000000001, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000}
func (z *Uint256) LimbString() string {
	return fmt.Sprintf("[4]uint64{0x%016x, 0x%016x, 0x%016x, 0x%016x}", z[0], z[1], z[2], z[3])
}

// String returns z as a 0x-prefixed hexadecimal string.
func (z Uint512) String() string {
	return "0x" + z.ToBigInt().Text(16)
}
