package fixedWidth

import "errors"

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "montgomery / fixed width: "

// The arithmetic in this package never fails; overflow is reported via explicit carry / borrow outputs.
// These errors only arise when converting from external representations.
// We usually return errors wrapping these; use [errors.Is] to compare.
var (
	ErrLimbCount  = errors.New(ErrorPrefix + "a Uint256 consists of exactly 4 limbs")
	ErrParse      = errors.New(ErrorPrefix + "could not parse input as a non-negative integer")
	ErrOutOfRange = errors.New(ErrorPrefix + "number does not fit into 256 bits")
)
