package utils

import (
	"encoding/binary"
	"math/big"
)

const ErrorPrefix = "montgomery / internal / utils: "

// UIntarrayToInt converts a low-endian [4]uint64 array to big.Int, without any Montgomery conversions
func UIntarrayToInt(z *[4]uint64) *big.Int {
	var big_endian_byte_slice [32]byte
	binary.BigEndian.PutUint64(big_endian_byte_slice[0:8], z[3])
	binary.BigEndian.PutUint64(big_endian_byte_slice[8:16], z[2])
	binary.BigEndian.PutUint64(big_endian_byte_slice[16:24], z[1])
	binary.BigEndian.PutUint64(big_endian_byte_slice[24:32], z[0])
	return new(big.Int).SetBytes(big_endian_byte_slice[:])
}

// BigIntToUIntArray converts a big.Int to a low-endian [4]uint64 array without Montgomery conversions.
// We assume 0 <= x < 2^256
func BigIntToUIntArray(x *big.Int) (result [4]uint64) {
	// As this is an internal function, panic is OK for error handling.
	if x.Sign() < 0 {
		panic(ErrorPrefix + "bigIntToUIntArray: Trying to convert negative big Int")
	}
	if x.BitLen() > 256 {
		panic(ErrorPrefix + "bigIntToUIntArray: big Int too large to fit into 32 bytes.")
	}
	var big_endian_byte_slice [32]byte
	x.FillBytes(big_endian_byte_slice[:])
	result[0] = binary.BigEndian.Uint64(big_endian_byte_slice[24:32])
	result[1] = binary.BigEndian.Uint64(big_endian_byte_slice[16:24])
	result[2] = binary.BigEndian.Uint64(big_endian_byte_slice[8:16])
	result[3] = binary.BigEndian.Uint64(big_endian_byte_slice[0:8])
	return
}

// UIntarray512ToInt is the 8-limb version of UIntarrayToInt.
func UIntarray512ToInt(z *[8]uint64) *big.Int {
	var big_endian_byte_slice [64]byte
	for i := 0; i < 8; i++ {
		binary.BigEndian.PutUint64(big_endian_byte_slice[56-8*i:64-8*i], z[i])
	}
	return new(big.Int).SetBytes(big_endian_byte_slice[:])
}

// BigIntToUIntArray512 is the 8-limb version of BigIntToUIntArray. We assume 0 <= x < 2^512
func BigIntToUIntArray512(x *big.Int) (result [8]uint64) {
	if x.Sign() < 0 {
		panic(ErrorPrefix + "bigIntToUIntArray512: Trying to convert negative big Int")
	}
	if x.BitLen() > 512 {
		panic(ErrorPrefix + "bigIntToUIntArray512: big Int too large to fit into 64 bytes.")
	}
	var big_endian_byte_slice [64]byte
	x.FillBytes(big_endian_byte_slice[:])
	for i := 0; i < 8; i++ {
		result[i] = binary.BigEndian.Uint64(big_endian_byte_slice[56-8*i : 64-8*i])
	}
	return
}

// InitIntFromString initializes a big.Int from a given string similar to big.Int's SetString(input, 0),
// i.e. a "0x" prefix selects hex, no prefix means decimal and "_" separators are allowed.
//
// This function panics on failure. It is only supposed to be used to initialize package-level variables from constant string literals.
func InitIntFromString(input string) *big.Int {
	var ret *big.Int = big.NewInt(0)
	_, success := ret.SetString(input, 0)
	if !success {
		panic(ErrorPrefix + "String used to initialize big.Int not recognized as a valid number: " + input)
	}
	return ret
}
