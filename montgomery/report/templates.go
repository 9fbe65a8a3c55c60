package report

import (
	"bytes"
	"go/format"
	"io"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

const banner = "================================================================================"

var funcs = template.FuncMap{
	"banner": func() string { return banner },
	"yesno": func(b bool) string {
		if b {
			return "True"
		}
		return "False"
	},
	"join": strings.Join,
}

// templates holds the text and rust reports, which share the Rust constant definitions.
var templates = template.Must(template.New("").Funcs(funcs).Parse(`
{{- define "limbs"}}[
{{- range .Limbs}}
    {{.}},
{{- end}}
];{{end}}

{{- define "rustConstants" -}}
// Field modulus: p = {{.Modulus.Hex}}
const MODULUS: [u64; 4] = {{template "limbs" .Modulus}}

// R = 2^256 mod p (Montgomery parameter)
const R: [u64; 4] = {{template "limbs" .R}}

// R^2 = 2^512 mod p (for Montgomery conversion)
const R2: [u64; 4] = {{template "limbs" .RSquared}}

// R^3 = 2^768 mod p (for efficient conversion)
#[allow(dead_code)]
const R3: [u64; 4] = {{template "limbs" .RCubed}}

// -p^{-1} mod 2^64 (Montgomery parameter mu)
const MU: u64 = {{.Mu}};
{{end}}

{{- define "rustGenerator" -}}
const GENERATOR: Self = ScalarField { limbs: [{{join .Generator.Montgomery.Limbs ", "}}] };
{{- end}}

{{- define "text" -}}
{{banner}}
Montgomery Constants Computation for Scalar Field
{{banner}}

Field modulus p = {{.Modulus.Hex}}
p in decimal = {{.Decimal}}
Bit length of p: {{.BitLength}}
Is p prime? {{yesno .IsPrime}}

R = 2^{{.Width}}
R mod p = {{.R.Hex}}

R^2 mod p = {{.RSquared.Hex}}

R^3 mod p = {{.RCubed.Hex}}

MU = -p^{-1} mod 2^64 = {{.Mu}}

{{banner}}
Rust Constants (copy these into your scalarfield.rs file)
{{banner}}

{{template "rustConstants" .}}
{{banner}}
Verification
{{banner}}

R mod p correct: {{yesno .Verification.R}}
R * R^{-1} mod p = {{.Verification.RTimesRInverse}} (should be 1)
R^2 mod p correct: {{yesno .Verification.RSquared}}
R^3 mod p correct: {{yesno .Verification.RCubed}}
MU * p mod 2^64 = {{.Verification.MuTimesModulus}}
Should be 2^64 - 1 = 0xffffffffffffffff
MU verification: {{yesno .Verification.Mu}}
Montgomery round trip: {{yesno .Verification.MontgomeryRoundTrip}}

{{banner}}
Additional Information
{{banner}}

p - 1 = 2^k * q where:
  k = {{.TwoAdicity.K}} (2-adicity)
  q = {{.TwoAdicity.Q}}

Generator g = {{.Generator.G}}
Generator in Montgomery form: {{.Generator.Montgomery.Hex}}
{{template "rustGenerator" .}}

{{banner}}
Script completed successfully!
{{banner}}
{{end}}

{{- define "rust" -}}
{{template "rustConstants" .}}
// Generator g = {{.Generator.G}} in Montgomery form
{{template "rustGenerator" .}}
{{end}}
`))

var (
	textTemplate = templates.Lookup("text")
	rustTemplate = templates.Lookup("rust")
)

var goTemplate = template.Must(template.New("go").Funcs(funcs).Parse(`// Montgomery constants for the field modulus p = {{.Modulus.Hex}}
// Limbs are in little-endian order.

var (
	modulus_64 = [4]uint64{ {{- join .Modulus.Limbs ", " -}} } // p
	r_64 = [4]uint64{ {{- join .R.Limbs ", " -}} } // 2^256 mod p
	rSquared_64 = [4]uint64{ {{- join .RSquared.Limbs ", " -}} } // 2^512 mod p
	rCubed_64 = [4]uint64{ {{- join .RCubed.Limbs ", " -}} } // 2^768 mod p
	generatorMontgomery_64 = [4]uint64{ {{- join .Generator.Montgomery.Limbs ", " -}} } // generator * R mod p
)

const (
	mu_64 uint64 = {{.Mu}} // -p^{-1} mod 2^64
	generator_uint64 uint64 = {{.Generator.G}}
	twoAdicity = {{.TwoAdicity.K}}
)
`))

// renderGo executes goTemplate and runs the output through gofmt.
func renderGo(w io.Writer, doc *document) error {
	var buf bytes.Buffer
	if err := goTemplate.Execute(&buf, doc); err != nil {
		return err
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return errors.Wrap(err, "generated Go code does not parse")
	}
	_, err = w.Write(formatted)
	return err
}
