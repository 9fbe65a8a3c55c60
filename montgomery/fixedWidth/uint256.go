package fixedWidth

import (
	"math/bits"
)

// This file is part of the fixedWidth package. See doc.go for general remarks.
//
// This file contains arithmetic on Uint256 that works modulo 2^256 (i.e. like ordinary machine integers).
// Functions that can overflow come in two versions: one that drops the carry and one that returns it.

// Uint256 is a 256-bit unsigned integer, stored as 4 uint64 limbs in low-endian order,
// i.e. z[0] is the least significant limb.
type Uint256 [4]uint64

// Ordering is the result of a three-way comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Greater:
		return "GREATER"
	default:
		return "INVALID ORDERING"
	}
}

// Zero_uint256 and One_uint256 are the Uint256s holding 0 and 1.
// Treat them as constants.
var (
	Zero_uint256 = Uint256{0, 0, 0, 0}
	One_uint256  = Uint256{1, 0, 0, 0}
	Max_uint256  = Uint256{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
)

// NewUint256FromUint64 returns the Uint256 with value x.
func NewUint256FromUint64(x uint64) Uint256 {
	return Uint256{x, 0, 0, 0}
}

// SetUint64 sets z to x.
func (z *Uint256) SetUint64(x uint64) {
	*z = Uint256{x, 0, 0, 0}
}

// Add computes an addition z := x + y.
// The addition is carried out modulo 2^256
func (z *Uint256) Add(x, y *Uint256) {
	var carry uint64
	z[0], carry = bits.Add64(x[0], y[0], 0)
	z[1], carry = bits.Add64(x[1], y[1], carry)
	z[2], carry = bits.Add64(x[2], y[2], carry)
	z[3], _ = bits.Add64(x[3], y[3], carry)
}

// AddWithCarry computes z := x + y mod 2^256 and returns the carry (0 or 1) out of the top limb.
func (z *Uint256) AddWithCarry(x, y *Uint256) (carry uint64) {
	z[0], carry = bits.Add64(x[0], y[0], 0)
	z[1], carry = bits.Add64(x[1], y[1], carry)
	z[2], carry = bits.Add64(x[2], y[2], carry)
	z[3], carry = bits.Add64(x[3], y[3], carry)
	return
}

// Sub computes z := x - y mod 2^256
func (z *Uint256) Sub(x, y *Uint256) {
	var borrow uint64 // only takes values 0,1
	z[0], borrow = bits.Sub64(x[0], y[0], 0)
	z[1], borrow = bits.Sub64(x[1], y[1], borrow)
	z[2], borrow = bits.Sub64(x[2], y[2], borrow)
	z[3], _ = bits.Sub64(x[3], y[3], borrow)
}

// SubWithBorrow computes z := x - y mod 2^256 and returns the borrow (0 or 1).
// borrow == 1 iff x < y.
func (z *Uint256) SubWithBorrow(x, y *Uint256) (borrow uint64) {
	z[0], borrow = bits.Sub64(x[0], y[0], 0)
	z[1], borrow = bits.Sub64(x[1], y[1], borrow)
	z[2], borrow = bits.Sub64(x[2], y[2], borrow)
	z[3], borrow = bits.Sub64(x[3], y[3], borrow)
	return
}

// IsZero checks whether the uint256 is (exactly) zero.
func (z *Uint256) IsZero() bool {
	return z[0]|z[1]|z[2]|z[3] == 0
}

// IsOne checks whether z == 1.
func (z *Uint256) IsOne() bool {
	return z[0] == 1 && z[1]|z[2]|z[3] == 0
}

// IsEven checks whether z is divisible by 2.
func (z *Uint256) IsEven() bool {
	return z[0]&1 == 0
}

// Cmp compares z with x and returns Less, Equal or Greater.
func (z *Uint256) Cmp(x *Uint256) Ordering {
	for i := 3; i >= 0; i-- {
		if z[i] < x[i] {
			return Less
		} else if z[i] > x[i] {
			return Greater
		}
	}
	return Equal
}

// IsLessThan checks whether z < x.
func (z *Uint256) IsLessThan(x *Uint256) bool {
	return z.Cmp(x) == Less
}

// BitLen returns the number of bits needed to represent z, i.e. 0 for z == 0 and floor(log_2(z)) + 1 otherwise.
func (z *Uint256) BitLen() int {
	for i := 3; i >= 0; i-- {
		if z[i] != 0 {
			return 64*i + bits.Len64(z[i])
		}
	}
	return 0
}

// Bit returns the i'th bit of z (counting from the least significant bit).
// For i >= 256, the result is 0.
func (z *Uint256) Bit(i uint) uint64 {
	if i >= 256 {
		return 0
	}
	return (z[i/64] >> (i % 64)) & 1
}

// TrailingZeros returns the number of trailing zero bits of z. For z == 0, this is 256.
func (z *Uint256) TrailingZeros() int {
	for i := 0; i < 4; i++ {
		if z[i] != 0 {
			return 64*i + bits.TrailingZeros64(z[i])
		}
	}
	return 256
}

// ShiftLeft computes z := x << n mod 2^256. Any shift amount is allowed; n >= 256 gives 0.
func (z *Uint256) ShiftLeft(x *Uint256, n uint) {
	if n >= 256 {
		*z = Uint256{}
		return
	}
	limbShift := n / 64
	bitShift := n % 64
	var result Uint256 // x may alias z
	for i := 3; i >= int(limbShift); i-- {
		result[i] = x[i-int(limbShift)] << bitShift
		if bitShift != 0 && i-int(limbShift)-1 >= 0 {
			result[i] |= x[i-int(limbShift)-1] >> (64 - bitShift)
		}
	}
	*z = result
}

// ShiftRight computes z := x >> n. Any shift amount is allowed; n >= 256 gives 0.
func (z *Uint256) ShiftRight(x *Uint256, n uint) {
	if n >= 256 {
		*z = Uint256{}
		return
	}
	limbShift := int(n / 64)
	bitShift := n % 64
	var result Uint256
	for i := 0; i+limbShift <= 3; i++ {
		result[i] = x[i+limbShift] >> bitShift
		if bitShift != 0 && i+limbShift+1 <= 3 {
			result[i] |= x[i+limbShift+1] << (64 - bitShift)
		}
	}
	*z = result
}

// ShiftRightEq computes z >>= n.
func (z *Uint256) ShiftRightEq(n uint) {
	z.ShiftRight(z, n)
}

// ShiftLeftEq computes z <<= n (mod 2^256).
func (z *Uint256) ShiftLeftEq(n uint) {
	z.ShiftLeft(z, n)
}

// LongMul computes the full 512-bit product x * y.
func (z *Uint512) LongMul(x, y *Uint256) {
	var result Uint512 // z can not alias x or y (different types), but we write at the end anyway
	var carry, hi, lo uint64
	for i := 0; i < 4; i++ {
		carry = 0
		for j := 0; j < 4; j++ {
			hi, lo = bits.Mul64(x[i], y[j])
			// result[i+j] + lo + carry fits into 2 words together with hi, since (2^64-1)^2 + 2(2^64-1) < 2^128
			var c uint64
			lo, c = bits.Add64(lo, result[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			result[i+j] = lo
			carry = hi
		}
		result[i+4] = carry
	}
	*z = result
}

// LongMul returns the full 512-bit product x * y.
func LongMul(x, y *Uint256) (z Uint512) {
	z.LongMul(x, y)
	return
}

// MulLow computes z := x * y mod 2^256, i.e. the lower half of the product.
func (z *Uint256) MulLow(x, y *Uint256) {
	var product Uint512
	product.LongMul(x, y)
	*z = product.Lo()
}

// MulUint64WithCarry computes z := x * y mod 2^256 for a single-limb y and returns the limb that was shifted out.
func (z *Uint256) MulUint64WithCarry(x *Uint256, y uint64) (high uint64) {
	var carry, mulLow uint64
	var result Uint256
	carry, result[0] = bits.Mul64(x[0], y)

	for i := 1; i < 4; i++ {
		var c uint64
		high, mulLow = bits.Mul64(x[i], y)
		result[i], c = bits.Add64(mulLow, carry, 0)
		carry = high + c
	}
	*z = result
	return carry
}

// ModUint64 returns z mod d for a non-zero single-limb d.
func (z *Uint256) ModUint64(d uint64) (remainder uint64) {
	for i := 3; i >= 0; i-- {
		_, remainder = bits.Div64(remainder, z[i], d)
	}
	return
}
