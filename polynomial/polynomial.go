// Package polynomial implements exact arithmetic on dense univariate
// polynomials over a prime field: Horner evaluation and synthetic long
// division, the kernel used to derive KZG opening quotients.
//
// A Polynomial owns its coefficient buffer, indexed from the constant term to
// the leading coefficient. No normalization is ever performed implicitly, so a
// polynomial may carry zero leading coefficients. Buffers are allocated by New
// and released by Release; the usual pattern is
//
//	p, err := polynomial.New(f, n)
//	if err != nil {
//		return err
//	}
//	defer p.Release()
//
// Every operation is synchronous and stateless. Operations may run in parallel
// as long as no polynomial is written by one of them while being used by
// another.
package polynomial

import (
	"strings"

	"github.com/vocdoni/davinci-poly/crypto/field"
)

// MaxLength bounds the number of coefficients of a single polynomial.
const MaxLength = 1 << 26

// Polynomial is p(X) = c₀ + c₁⋅X + … + cₙ₋₁⋅Xⁿ⁻¹ over the field F.
type Polynomial[E any] struct {
	f        field.Field[E]
	coeffs   []E
	released bool
}

// New allocates a polynomial of the given length, every coefficient set to the
// additive identity. Coefficients are then populated by the caller.
func New[E any](f field.Field[E], length int) (*Polynomial[E], error) {
	if f == nil {
		return nil, badArguments("nil field")
	}
	if length < 0 || length > MaxLength {
		return nil, allocationFailure("%w: %d coefficients, max %d", ErrInvalidLength, length, MaxLength)
	}
	coeffs := make([]E, length)
	zero := f.Zero()
	for i := range coeffs {
		coeffs[i] = zero
	}
	return &Polynomial[E]{f: f, coeffs: coeffs}, nil
}

// FromCoefficients allocates a polynomial holding a copy of coeffs, lowest
// degree first.
func FromCoefficients[E any](f field.Field[E], coeffs ...E) (*Polynomial[E], error) {
	p, err := New(f, len(coeffs))
	if err != nil {
		return nil, err
	}
	copy(p.coeffs, coeffs)
	return p, nil
}

// FromUint64 allocates a polynomial from small integer coefficients, handy for
// fixtures.
func FromUint64[E any](f field.Field[E], coeffs ...uint64) (*Polynomial[E], error) {
	p, err := New(f, len(coeffs))
	if err != nil {
		return nil, err
	}
	for i, c := range coeffs {
		p.coeffs[i] = f.FromUint64(c)
	}
	return p, nil
}

// FromInt64 is like FromUint64 but accepts negative coefficients, mapped to
// their field representative (-1 is p-1).
func FromInt64[E any](f field.Field[E], coeffs ...int64) (*Polynomial[E], error) {
	p, err := New(f, len(coeffs))
	if err != nil {
		return nil, err
	}
	for i, c := range coeffs {
		p.coeffs[i] = field.FromInt64(f, c)
	}
	return p, nil
}

// Random allocates a polynomial with uniformly sampled coefficients.
func Random[E any](f field.Field[E], length int) (*Polynomial[E], error) {
	p, err := New(f, length)
	if err != nil {
		return nil, err
	}
	for i := range p.coeffs {
		if p.coeffs[i], err = f.Random(); err != nil {
			return nil, internalError(err)
		}
	}
	return p, nil
}

// Release drops the coefficient buffer. Any later use of p, including a second
// Release, fails with BadArguments.
func (p *Polynomial[E]) Release() error {
	if err := p.check(); err != nil {
		return err
	}
	clear(p.coeffs)
	p.coeffs = nil
	p.released = true
	return nil
}

// Released reports whether Release was called.
func (p *Polynomial[E]) Released() bool { return p.released }

// Field returns the field the coefficients belong to.
func (p *Polynomial[E]) Field() field.Field[E] { return p.f }

// Len returns the number of coefficients.
func (p *Polynomial[E]) Len() int { return len(p.coeffs) }

// Degree returns Len()-1, counting zero leading coefficients. The empty
// polynomial has degree -1.
func (p *Polynomial[E]) Degree() int { return len(p.coeffs) - 1 }

// Coefficient returns cᵢ.
func (p *Polynomial[E]) Coefficient(i int) (E, error) {
	var zero E
	if err := p.check(); err != nil {
		return zero, err
	}
	if i < 0 || i >= len(p.coeffs) {
		return zero, badArguments("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(p.coeffs))
	}
	return p.coeffs[i], nil
}

// SetCoefficient sets cᵢ = v.
func (p *Polynomial[E]) SetCoefficient(i int, v E) error {
	if err := p.check(); err != nil {
		return err
	}
	if i < 0 || i >= len(p.coeffs) {
		return badArguments("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(p.coeffs))
	}
	p.coeffs[i] = v
	return nil
}

// Coefficients returns a copy of the coefficients, lowest degree first.
func (p *Polynomial[E]) Coefficients() []E {
	out := make([]E, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// Clone returns a deep copy of p.
func (p *Polynomial[E]) Clone() (*Polynomial[E], error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	return FromCoefficients(p.f, p.coeffs...)
}

// Normalized returns a copy of p without its zero leading coefficients. The
// zero polynomial normalizes to the empty polynomial.
func (p *Polynomial[E]) Normalized() (*Polynomial[E], error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	n := len(p.coeffs)
	for n > 0 && p.f.IsZero(p.coeffs[n-1]) {
		n--
	}
	return FromCoefficients(p.f, p.coeffs[:n]...)
}

// String formats the coefficients in decimal, lowest degree first.
func (p *Polynomial[E]) String() string {
	if p.released {
		return "<released>"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, c := range p.coeffs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.f.String(c))
	}
	sb.WriteByte(']')
	return sb.String()
}

func (p *Polynomial[E]) check() error {
	if p == nil {
		return badArguments("nil polynomial")
	}
	if p.released {
		return badArguments("%w", ErrReleased)
	}
	return nil
}

// sameField checks that every polynomial is alive and shares the field of the
// first one.
func sameField[E any](ps ...*Polynomial[E]) error {
	for _, p := range ps {
		if err := p.check(); err != nil {
			return err
		}
	}
	for _, p := range ps[1:] {
		if p.f.Name() != ps[0].f.Name() {
			return badArguments("%w: %s and %s", ErrFieldMismatch, ps[0].f.Name(), p.f.Name())
		}
	}
	return nil
}
