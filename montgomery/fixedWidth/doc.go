// Package fixedWidth implements the 256-bit (and 512-bit) unsigned integer types that all modular arithmetic of this module is built on.
//
// A Uint256 is an integer, not a residue, so arithmetic is as for usual uints, i.e. modulo 2^256.
// Carries and borrows out of the top limb are never silently dropped by the *WithCarry / *WithBorrow variants;
// callers that need wider results use those or LongMul, which produces the full 512-bit product.
//
// Note that the code is split into 3 parts:
//
//	uint256.go (integer arithmetic / arithmetic modulo 2^256)
//	uint512.go (the double-width type used for unreduced products)
//	conversion.go (limb arrays, big.Int and string conversions)
package fixedWidth
