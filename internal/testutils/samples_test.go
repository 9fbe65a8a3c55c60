package testutils

import (
	"math/big"
	"testing"
)

func TestBigIntSamples(t *testing.T) {
	bound := big.NewInt(1000)
	data1 := BigIntSamples(10, bound, 0)
	FatalUnless(t, data1 != nil, "nil returned")
	FatalUnless(t, len(data1) == 0, "invalid length")

	data21 := BigIntSamples(11, bound, 100)
	data22 := BigIntSamples(11, bound, 100)
	FatalUnless(t, len(data21) == 100, "invalid length")
	FatalUnless(t, data21[0] != data22[0], "aliasing")
	for i := range data21 {
		FatalUnless(t, data21[i].Cmp(data22[i]) == 0, "samples for the same key differ at %v", i)
		FatalUnless(t, data21[i].Sign() >= 0 && data21[i].Cmp(bound) < 0, "sample out of range: %v", data21[i])
	}

	data23 := BigIntSamples(11, bound, 200)
	for i := range data21 {
		FatalUnless(t, data21[i].Cmp(data23[i]) == 0, "shorter list is no prefix of the longer one")
	}

	FatalUnless(t, data21[0].Sign() == 0, "special value 0 missing")
	FatalUnless(t, data21[4].Int64() == 999, "special value bound-1 missing")
}

func TestBigIntSamplesSmallBound(t *testing.T) {
	samples := BigIntSamples(1, big.NewInt(2), 5)
	FatalUnless(t, samples[0].Int64() == 0 && samples[1].Int64() == 1, "special values for bound 2 are wrong")
	FatalUnless(t, CheckPanic(func() { BigIntSamples(1, big.NewInt(0), 1) }), "zero bound accepted")
}

func TestFaultyBuffer(t *testing.T) {
	designatedErr := errorString("designated")
	fb := NewFaultyBuffer(5, designatedErr, []byte("0123456789"))
	buf := make([]byte, 10)
	n, err := fb.Read(buf)
	FatalUnless(t, n == 5, "read %v bytes", n)
	FatalUnless(t, err == designatedErr, "unexpected error %v", err)

	n, err = fb.Write([]byte("abc"))
	FatalUnless(t, n == 3 && err == nil, "write failed early")
	n, err = fb.Write([]byte("defg"))
	FatalUnless(t, n == 2 && err == designatedErr, "write did not fail at threshold")
}

type errorString string

func (e errorString) Error() string { return string(e) }
