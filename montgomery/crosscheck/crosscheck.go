// Package crosscheck recomputes the constants of a derivation run with independent implementations
// (math/big, gnark-crypto's field generator, holiman/uint256 and filippo.io/bigmod) and reports every disagreement.
//
// A derivation has already verified its constants against their defining identities, using our own arithmetic.
// The cross-check guards against a bug that affects both the derivation and the verification in the same way.
package crosscheck

import (
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/derivation"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/montgomeryErrors"
)

var log = logrus.WithField("process", "crosscheck")

// Source names an independent implementation.
type Source string

const (
	SourceBigInt  Source = "math/big"
	SourceGnark   Source = "gnark-crypto"
	SourceHoliman Source = "holiman/uint256"
	SourceBigmod  Source = "filippo.io/bigmod"
)

// Sources lists all sources in the order they are consulted.
func Sources() []Source {
	return []Source{SourceBigInt, SourceGnark, SourceHoliman, SourceBigmod}
}

// Mismatch is a value on which a source disagrees with the derivation.
type Mismatch struct {
	Source   Source
	Name     string
	Expected string // as computed by Source
	Actual   string // as found in the derivation result
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s disagrees on %s: expected %s, got %s", m.Source, m.Name, m.Expected, m.Actual)
}

// Report summarizes a cross-check.
type Report struct {
	Compared   map[Source]int // number of compared values per consulted source
	Skipped    []Source       // sources that do not apply to the modulus
	Mismatches []Mismatch
}

// Passed is true if no source disagreed.
func (r *Report) Passed() bool {
	return len(r.Mismatches) == 0
}

// checker compares the values that source can recompute. It returns false if the source does not apply.
type checker func(result *derivation.Result, rec *recorder) (applicable bool, err error)

var checkers = map[Source]checker{
	SourceBigInt:  checkBigInt,
	SourceGnark:   checkGnark,
	SourceHoliman: checkHoliman,
	SourceBigmod:  checkBigmod,
}

// Check recomputes the constants in result with every source.
//
// If any value disagrees, the returned error wraps [montgomeryErrors.ErrCrossCheckFailed]; the Report lists all mismatches.
// Other errors mean that a source could not be run at all.
func Check(result *derivation.Result) (Report, error) {
	report := Report{Compared: make(map[Source]int)}
	for _, source := range Sources() {
		logger := log.WithField("source", source)
		rec := &recorder{source: source, report: &report}
		applicable, err := checkers[source](result, rec)
		if err != nil {
			return report, errors.Wrapf(err, "cross-check with %s could not be run", source)
		}
		if !applicable {
			logger.Debug("source does not apply to this modulus")
			report.Skipped = append(report.Skipped, source)
			continue
		}
		report.Compared[source] = rec.compared
		logger.WithField("compared", rec.compared).Debug("cross-check done")
	}

	if !report.Passed() {
		for _, m := range report.Mismatches {
			log.WithFields(logrus.Fields{
				"source":   m.Source,
				"value":    m.Name,
				"expected": m.Expected,
				"actual":   m.Actual,
			}).Error("independent recomputation disagrees")
		}
		return report, errors.Wrapf(montgomeryErrors.ErrCrossCheckFailed, "%d mismatches for modulus %v, first: %v", len(report.Mismatches), result.Hex, report.Mismatches[0])
	}
	return report, nil
}

// recorder collects the comparisons of one source.
type recorder struct {
	source   Source
	report   *Report
	compared int
}

func (rec *recorder) equal(name string, expected, actual string) {
	rec.compared++
	if expected != actual {
		rec.report.Mismatches = append(rec.report.Mismatches, Mismatch{Source: rec.source, Name: name, Expected: expected, Actual: actual})
	}
}

func (rec *recorder) word(name string, expected, actual uint64) {
	rec.equal(name, fmt.Sprintf("0x%016x", expected), fmt.Sprintf("0x%016x", actual))
}

func (rec *recorder) bigInt(name string, expected *big.Int, actual fixedWidth.Uint256) {
	rec.equal(name, "0x"+expected.Text(16), actual.String())
}

// limbs compares a little-endian limb slice of any length.
func (rec *recorder) limbs(name string, expected []uint64, actual fixedWidth.Uint256) {
	var expectedInt big.Int
	for i := len(expected) - 1; i >= 0; i-- {
		expectedInt.Lsh(&expectedInt, 64)
		expectedInt.Or(&expectedInt, new(big.Int).SetUint64(expected[i]))
	}
	rec.bigInt(name, &expectedInt, actual)
}
