package polynomial

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-poly/crypto/field"
	"github.com/vocdoni/davinci-poly/crypto/field/bls12381"
	"github.com/vocdoni/davinci-poly/crypto/field/modp"
)

// smallField is F₆₅₅₃₇, small enough to keep failures readable.
func smallField() field.Field[modp.Element] { return modp.MustNew(65537) }

func hostField() field.Field[bls12381.Element] { return bls12381.New() }

func mustInt64[E any](t *testing.T, f field.Field[E], coeffs ...int64) *Polynomial[E] {
	t.Helper()
	p, err := FromInt64(f, coeffs...)
	qt.Assert(t, err, qt.IsNil)
	return p
}

func mustRandom[E any](t *testing.T, f field.Field[E], length int) *Polynomial[E] {
	t.Helper()
	p, err := Random(f, length)
	qt.Assert(t, err, qt.IsNil)
	return p
}

// randomNonZero samples an element different from zero.
func randomNonZero[E any](t *testing.T, f field.Field[E]) E {
	t.Helper()
	for {
		e, err := f.Random()
		qt.Assert(t, err, qt.IsNil)
		if !f.IsZero(e) {
			return e
		}
	}
}

// assertCoefficients checks p against the expected small integer coefficients.
func assertCoefficients[E any](t *testing.T, p *Polynomial[E], want ...int64) {
	t.Helper()
	c := qt.New(t)
	c.Assert(p.Len(), qt.Equals, len(want), qt.Commentf("got %s", p))
	for i, w := range want {
		got, err := p.Coefficient(i)
		c.Assert(err, qt.IsNil)
		c.Assert(p.f.Equal(got, field.FromInt64(p.f, w)), qt.IsTrue,
			qt.Commentf("coefficient %d: got %s, want %d", i, p.f.String(got), w))
	}
}

type smallElement = modp.Element

func smallElementField(p uint64) field.Field[modp.Element] { return modp.MustNew(p) }
