// Package report renders the result of a derivation run.
//
// The derivation itself does not depend on this package. Renderers only receive the computed values and the
// verification outcomes and decide on the textual layout: a human-readable diagnostics report, constant
// declarations for Rust or Go source files, or machine-readable JSON / YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/derivation"
	"github.com/GottfriedHerold/MontgomeryConstants/montgomery/fixedWidth"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "montgomery / report: "

// ErrUnknownFormat is returned (wrapped) by ParseFormat and Render for unsupported formats.
var ErrUnknownFormat = errors.New(ErrorPrefix + "unknown output format")

// Format selects the output layout.
type Format string

const (
	FormatText Format = "text" // diagnostics, including the verification outcomes
	FormatRust Format = "rust" // Rust const declarations
	FormatGo   Format = "go"   // Go declarations
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists all supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatRust, FormatGo, FormatJSON, FormatYAML}
}

// ParseFormat parses a (case-insensitive) format name.
func ParseFormat(name string) (Format, error) {
	candidate := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, f := range Formats() {
		if candidate == f {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q (supported: %v)", name, Formats())
}

func (f Format) String() string {
	return string(f)
}

// Render writes result to w in the given format.
func Render(w io.Writer, result *derivation.Result, format Format) error {
	doc := newDocument(result)
	var err error
	switch format {
	case FormatText:
		err = textTemplate.Execute(w, doc)
	case FormatRust:
		err = rustTemplate.Execute(w, doc)
	case FormatGo:
		err = renderGo(w, doc)
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(doc)
	case FormatYAML:
		var out []byte
		out, err = yaml.Marshal(doc)
		if err == nil {
			_, err = w.Write(out)
		}
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", string(format))
	}
	if err != nil {
		return errors.Wrapf(err, ErrorPrefix+"could not render %v output", format)
	}
	return nil
}

// limbConstant is a 256-bit constant as it appears in the output: in hex and as little-endian limbs.
type limbConstant struct {
	Hex   string   `json:"hex" yaml:"hex"`
	Limbs []string `json:"limbs" yaml:"limbs"`
}

func newLimbConstant(x fixedWidth.Uint256) limbConstant {
	ret := limbConstant{Hex: x.String(), Limbs: make([]string, len(x))}
	for i, limb := range x {
		ret.Limbs[i] = hexLimb(limb)
	}
	return ret
}

func hexLimb(limb uint64) string {
	return fmt.Sprintf("0x%016x", limb)
}

type generatorView struct {
	G          uint64       `json:"g" yaml:"g"`
	Montgomery limbConstant `json:"montgomery" yaml:"montgomery"`
}

type twoAdicityView struct {
	K uint   `json:"k" yaml:"k"`
	Q string `json:"q" yaml:"q"`
}

type verificationView struct {
	R                   bool   `json:"r" yaml:"r"`
	RInverse            bool   `json:"r_inverse" yaml:"r_inverse"`
	Mu                  bool   `json:"mu" yaml:"mu"`
	RSquared            bool   `json:"r_squared" yaml:"r_squared"`
	RCubed              bool   `json:"r_cubed" yaml:"r_cubed"`
	MontgomeryRoundTrip bool   `json:"montgomery_round_trip" yaml:"montgomery_round_trip"`
	RTimesRInverse      string `json:"r_times_r_inverse" yaml:"r_times_r_inverse"`
	MuTimesModulus      string `json:"mu_times_modulus" yaml:"mu_times_modulus"`
	AllPassed           bool   `json:"all_passed" yaml:"all_passed"`
}

// document is the renderer-facing view of a derivation.Result. All output formats are generated from it.
type document struct {
	Modulus      limbConstant     `json:"modulus" yaml:"modulus"`
	Decimal      string           `json:"decimal" yaml:"decimal"`
	BitLength    int              `json:"bit_length" yaml:"bit_length"`
	IsPrime      bool             `json:"is_prime" yaml:"is_prime"`
	Width        int              `json:"width" yaml:"width"`
	R            limbConstant     `json:"r" yaml:"r"`
	RSquared     limbConstant     `json:"r2" yaml:"r2"`
	RCubed       limbConstant     `json:"r3" yaml:"r3"`
	Mu           string           `json:"mu" yaml:"mu"`
	TwoAdicity   twoAdicityView   `json:"two_adicity" yaml:"two_adicity"`
	Generator    generatorView    `json:"generator" yaml:"generator"`
	Verification verificationView `json:"verification" yaml:"verification"`
}

func newDocument(result *derivation.Result) *document {
	params := result.Parameters
	v := result.Verification
	return &document{
		Modulus:    newLimbConstant(result.Modulus),
		Decimal:    result.Decimal,
		BitLength:  result.BitLen,
		IsPrime:    result.IsPrime,
		Width:      params.Width,
		R:          newLimbConstant(params.R),
		RSquared:   newLimbConstant(params.RSquared),
		RCubed:     newLimbConstant(params.RCubed),
		Mu:         hexLimb(params.Mu),
		TwoAdicity: twoAdicityView{K: result.TwoAdicity.K, Q: result.TwoAdicity.Q.String()},
		Generator: generatorView{
			G:          result.Generator.G,
			Montgomery: newLimbConstant(result.Generator.Montgomery),
		},
		Verification: verificationView{
			R:                   v.R,
			RInverse:            v.RInverse,
			Mu:                  v.Mu,
			RSquared:            v.RSquared,
			RCubed:              v.RCubed,
			MontgomeryRoundTrip: v.MontgomeryRoundTrip,
			RTimesRInverse:      v.RTimesRInverse.Decimal(),
			MuTimesModulus:      hexLimb(v.MuTimesModulus),
			AllPassed:           v.AllPassed(),
		},
	}
}
