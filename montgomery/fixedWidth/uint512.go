package fixedWidth

import "math/bits"

// Uint512 is a 512-bit unsigned integer in low-endian limb order.
// It mostly exists to hold unreduced products of two Uint256s.
type Uint512 [8]uint64

// FromUint256 sets z to x (zero-extended).
func (z *Uint512) FromUint256(x *Uint256) {
	*z = Uint512{x[0], x[1], x[2], x[3], 0, 0, 0, 0}
}

// Lo returns the lower 256 bits of z.
func (z *Uint512) Lo() Uint256 {
	return Uint256{z[0], z[1], z[2], z[3]}
}

// Hi returns the upper 256 bits of z.
func (z *Uint512) Hi() Uint256 {
	return Uint256{z[4], z[5], z[6], z[7]}
}

// IsZero checks whether z == 0.
func (z *Uint512) IsZero() bool {
	return z[0]|z[1]|z[2]|z[3]|z[4]|z[5]|z[6]|z[7] == 0
}

// Cmp compares z with x and returns Less, Equal or Greater.
func (z *Uint512) Cmp(x *Uint512) Ordering {
	for i := 7; i >= 0; i-- {
		if z[i] < x[i] {
			return Less
		} else if z[i] > x[i] {
			return Greater
		}
	}
	return Equal
}

// BitLen returns the number of bits needed to represent z.
func (z *Uint512) BitLen() int {
	for i := 7; i >= 0; i-- {
		if z[i] != 0 {
			return 64*i + bits.Len64(z[i])
		}
	}
	return 0
}

// SubWithBorrow computes z := x - y mod 2^512 and returns the borrow.
func (z *Uint512) SubWithBorrow(x, y *Uint512) (borrow uint64) {
	for i := 0; i < 8; i++ {
		z[i], borrow = bits.Sub64(x[i], y[i], borrow)
	}
	return
}

// AddWithCarry computes z := x + y mod 2^512 and returns the carry.
func (z *Uint512) AddWithCarry(x, y *Uint512) (carry uint64) {
	for i := 0; i < 8; i++ {
		z[i], carry = bits.Add64(x[i], y[i], carry)
	}
	return
}

// ShiftLeft computes z := x << n mod 2^512. n >= 512 gives 0.
func (z *Uint512) ShiftLeft(x *Uint512, n uint) {
	if n >= 512 {
		*z = Uint512{}
		return
	}
	limbShift := int(n / 64)
	bitShift := n % 64
	var result Uint512
	for i := 7; i >= limbShift; i-- {
		result[i] = x[i-limbShift] << bitShift
		if bitShift != 0 && i-limbShift-1 >= 0 {
			result[i] |= x[i-limbShift-1] >> (64 - bitShift)
		}
	}
	*z = result
}

// ShiftRight computes z := x >> n. n >= 512 gives 0.
func (z *Uint512) ShiftRight(x *Uint512, n uint) {
	if n >= 512 {
		*z = Uint512{}
		return
	}
	limbShift := int(n / 64)
	bitShift := n % 64
	var result Uint512
	for i := 0; i+limbShift <= 7; i++ {
		result[i] = x[i+limbShift] >> bitShift
		if bitShift != 0 && i+limbShift+1 <= 7 {
			result[i] |= x[i+limbShift+1] << (64 - bitShift)
		}
	}
	*z = result
}

// ShiftRightOneEq computes z >>= 1. This is the inner step of the shift-and-subtract reduction.
func (z *Uint512) ShiftRightOneEq() {
	z[0] = (z[0] >> 1) | (z[1] << 63)
	z[1] = (z[1] >> 1) | (z[2] << 63)
	z[2] = (z[2] >> 1) | (z[3] << 63)
	z[3] = (z[3] >> 1) | (z[4] << 63)
	z[4] = (z[4] >> 1) | (z[5] << 63)
	z[5] = (z[5] >> 1) | (z[6] << 63)
	z[6] = (z[6] >> 1) | (z[7] << 63)
	z[7] = z[7] >> 1
}
