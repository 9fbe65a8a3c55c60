// Package generator searches small integers for a generator of the multiplicative group modulo a prime p
// and expresses the result in Montgomery form.
//
// Candidates are tested in ascending order starting at 2 and the first qualifying candidate is returned.
// This tie-break is part of the contract, so results are reproducible.
package generator

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/modularArithmetic"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/montgomeryErrors"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/parameters"
)

var log = logrus.WithField("process", "generator")

// DefaultBound is the default (exclusive) upper bound for generator candidates.
const DefaultBound = 20

// Candidate is a generator g together with its Montgomery form g * R mod p.
type Candidate struct {
	G          uint64
	Montgomery fixedWidth.Uint256
}

// IsCandidate checks whether g passes the generator test modulo m:
// g^(p-1) == 1 (Fermat check) and g^((p-1)/2) != 1 (g is a quadratic non-residue).
//
// For prime p, a non-residue is only guaranteed to generate the full multiplicative group if (p-1)/2 is prime.
// It always generates the full 2-Sylow subgroup, which is what FFT-style algorithms need.
func IsCandidate(m *modularArithmetic.Modulus, g uint64) bool {
	order := m.MinusOne()
	if fermat := m.PowModUint64(g, &order); !fermat.IsOne() {
		return false
	}
	halfOrder := m.HalfOrder()
	euler := m.PowModUint64(g, &halfOrder)
	return !euler.IsOne()
}

// Find returns the smallest g with 2 <= g < bound (and g < p) that passes IsCandidate, together with its Montgomery form.
//
// If there is no such g, we return a *[montgomeryErrors.SearchBoundError] that unwraps to [montgomeryErrors.ErrNoGeneratorFound].
// This is the one recoverable error: callers may retry with a larger bound.
func Find(m *modularArithmetic.Modulus, params *parameters.Parameters, bound uint64) (Candidate, error) {
	modulus := m.ToUint256()
	for g := uint64(2); g < bound; g++ {
		gWide := fixedWidth.NewUint256FromUint64(g)
		if !gWide.IsLessThan(&modulus) {
			break
		}
		if !IsCandidate(m, g) {
			log.WithField("candidate", g).Trace("rejected generator candidate")
			continue
		}
		candidate := Candidate{G: g, Montgomery: parameters.ToMontgomery(m, params, &gWide)}
		log.WithFields(logrus.Fields{
			"generator":  g,
			"montgomery": candidate.Montgomery.String(),
		}).Debug("found generator")
		return candidate, nil
	}
	return Candidate{}, errors.WithStack(&montgomeryErrors.SearchBoundError{Modulus: m.String(), Bound: bound})
}
