package polynomial

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestNew(t *testing.T) {
	c := qt.New(t)
	f := smallField()

	p, err := New(f, 4)
	c.Assert(err, qt.IsNil)
	c.Assert(p.Len(), qt.Equals, 4)
	c.Assert(p.Degree(), qt.Equals, 3)
	for _, coeff := range p.Coefficients() {
		c.Assert(f.IsZero(coeff), qt.IsTrue)
	}

	c.Assert(p.SetCoefficient(3, f.FromUint64(7)), qt.IsNil)
	got, err := p.Coefficient(3)
	c.Assert(err, qt.IsNil)
	c.Assert(f.Equal(got, f.FromUint64(7)), qt.IsTrue)
	c.Assert(p.String(), qt.Equals, "[0, 0, 0, 7]")

	empty, err := New(f, 0)
	c.Assert(err, qt.IsNil)
	c.Assert(empty.Len(), qt.Equals, 0)
	c.Assert(empty.Degree(), qt.Equals, -1)
}

func TestNewAllocationFailure(t *testing.T) {
	c := qt.New(t)
	f := smallField()

	for _, length := range []int{-1, MaxLength + 1} {
		_, err := New(f, length)
		c.Assert(err, qt.ErrorIs, ErrAllocation)
		c.Assert(err, qt.ErrorIs, ErrInvalidLength)
		c.Assert(CodeOf(err), qt.Equals, AllocationFailure)
	}
}

func TestCoefficientsIsACopy(t *testing.T) {
	c := qt.New(t)
	f := smallField()
	p := mustInt64(t, f, 1, 2, 3)

	coeffs := p.Coefficients()
	coeffs[0] = f.FromUint64(100)
	assertCoefficients(t, p, 1, 2, 3)

	clone, err := p.Clone()
	c.Assert(err, qt.IsNil)
	c.Assert(clone.SetCoefficient(1, f.FromUint64(9)), qt.IsNil)
	assertCoefficients(t, p, 1, 2, 3)
	assertCoefficients(t, clone, 1, 9, 3)
}

func TestNormalized(t *testing.T) {
	c := qt.New(t)
	f := smallField()

	p := mustInt64(t, f, 1, 2, 0, 0)
	c.Assert(p.Len(), qt.Equals, 4)
	n, err := p.Normalized()
	c.Assert(err, qt.IsNil)
	assertCoefficients(t, n, 1, 2)
	// the receiver keeps its zero leading coefficients
	c.Assert(p.Len(), qt.Equals, 4)

	zero := mustInt64(t, f, 0, 0, 0)
	n, err = zero.Normalized()
	c.Assert(err, qt.IsNil)
	c.Assert(n.Len(), qt.Equals, 0)
}

func TestArithmetic(t *testing.T) {
	c := qt.New(t)
	f := smallField()

	a := mustInt64(t, f, 1, 2)    // 1 + 2X
	b := mustInt64(t, f, -3, 0, 1) // X² - 3

	prod, err := Mul(a, b)
	c.Assert(err, qt.IsNil)
	assertCoefficients(t, prod, -3, -6, 1, 2)

	sum, err := Add(a, b)
	c.Assert(err, qt.IsNil)
	assertCoefficients(t, sum, -2, 2, 1)

	diff, err := Sub(a, b)
	c.Assert(err, qt.IsNil)
	assertCoefficients(t, diff, 4, 2, -1)

	scaled, err := Scale(a, f.FromUint64(5))
	c.Assert(err, qt.IsNil)
	assertCoefficients(t, scaled, 5, 10)

	empty, err := New(f, 0)
	c.Assert(err, qt.IsNil)
	prod, err = Mul(a, empty)
	c.Assert(err, qt.IsNil)
	c.Assert(prod.Len(), qt.Equals, 0)

	c.Assert(Equal(a, mustInt64(t, f, 1, 2)), qt.IsTrue)
	c.Assert(Equal(a, mustInt64(t, f, 1, 2, 0)), qt.IsFalse)
	c.Assert(Equal(a, b), qt.IsFalse)
}

func TestCodeOf(t *testing.T) {
	c := qt.New(t)

	c.Assert(CodeOf(nil), qt.Equals, Ok)
	c.Assert(CodeOf(&Error{Code: AllocationFailure}), qt.Equals, AllocationFailure)
	c.Assert(CodeOf(ErrOutputLength), qt.Equals, InternalError)
	c.Assert(BadArguments.String(), qt.Equals, "bad arguments")
	c.Assert(Code(42).String(), qt.Equals, "unknown code 42")
}
