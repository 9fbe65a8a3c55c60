package fixedWidth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/MontgomeryConstants/internal/testutils"
)

func TestLimbRoundtrip(t *testing.T) {
	for _, x := range uint256Samples(11, 1000) {
		var y Uint256
		y.FromLimbs(x.ToLimbs())
		testutils.FatalUnless(t, x == y, "limb round trip failed for %v", x)

		limbs := x.ToLimbs()
		z, err := FromLimbSlice(limbs[:])
		testutils.FatalUnless(t, err == nil && z == x, "FromLimbSlice round trip failed for %v", x)
	}
}

func TestFromLimbSliceLength(t *testing.T) {
	_, err := FromLimbSlice([]uint64{1, 2, 3})
	require.True(t, errors.Is(err, ErrLimbCount))
	_, err = FromLimbSlice(make([]uint64, 5))
	require.True(t, errors.Is(err, ErrLimbCount))
	_, err = FromLimbSlice(nil)
	require.True(t, errors.Is(err, ErrLimbCount))
}

func TestParseUint256(t *testing.T) {
	p, err := ParseUint256("0xf06e44682c2aa440f5f26a5ae1748ff85ccc2efc3068faf2154ff8a2e94d81")
	require.NoError(t, err)
	assert.Equal(t, Uint256{0xf2154ff8a2e94d81, 0xf85ccc2efc3068fa, 0x40f5f26a5ae1748f, 0x00f06e44682c2aa4}, p)

	decimal, err := ParseUint256(" " + p.Decimal() + "\n")
	require.NoError(t, err)
	assert.Equal(t, p, decimal)

	small, err := ParseUint256("1_000")
	require.NoError(t, err)
	assert.Equal(t, NewUint256FromUint64(1000), small)

	max, err := ParseUint256("0x" + "ffffffffffffffff" + "ffffffffffffffff" + "ffffffffffffffff" + "ffffffffffffffff")
	require.NoError(t, err)
	assert.Equal(t, Max_uint256, max)

	for _, bad := range []string{"", "abc", "0xg1", "-5", "1.5"} {
		_, err = ParseUint256(bad)
		assert.Truef(t, errors.Is(err, ErrParse), "input %q: got %v", bad, err)
	}

	_, err = ParseUint256("0x1" + "0000000000000000" + "0000000000000000" + "0000000000000000" + "0000000000000000")
	assert.True(t, errors.Is(err, ErrOutOfRange))
}

func TestStringRepresentations(t *testing.T) {
	x := Uint256{1, 0, 0, 0x00f0}
	assert.Equal(t, "0x"+x.ToBigInt().Text(16), x.String())
	assert.Len(t, x.String(), 2+2+48)
	assert.Equal(t, "0x1", One_uint256.String())
	assert.Equal(t, "0x0", Zero_uint256.String())
	assert.Equal(t, "[4]uint64{0x0000000000000001, 0x0000000000000000, 0x0000000000000000, 0x00000000000000f0}", x.LimbString())

	thousand := NewUint256FromUint64(1000)
	assert.Equal(t, "1000", thousand.Decimal())

	var wide Uint512
	wide[7] = 1
	assert.Equal(t, "0x1", wide.String()[:3])
	assert.Len(t, wide.String(), 2+1+448/4)
}

func TestInitUint256FromString(t *testing.T) {
	assert.Equal(t, NewUint256FromUint64(255), InitUint256FromString("0xff"))
	testutils.FatalUnless(t, testutils.CheckPanic(func() { InitUint256FromString("not a number") }), "no panic on invalid literal")
	testutils.FatalUnless(t, testutils.CheckPanic(func() { InitUint256FromString("-1") }), "no panic on negative literal")
}
