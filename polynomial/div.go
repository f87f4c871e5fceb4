package polynomial

import (
	"errors"

	"github.com/vocdoni/davinci-poly/crypto/field"
)

// QuotientLength returns the number of coefficients of dividend / divisor,
// dividend.Len() - divisor.Len() + 1. Use it to size the output of LongDiv.
// It requires dividend.Len() >= divisor.Len() >= 1.
func QuotientLength[E any](dividend, divisor *Polynomial[E]) (int, error) {
	if err := dividend.check(); err != nil {
		return 0, err
	}
	if err := divisor.check(); err != nil {
		return 0, err
	}
	if divisor.Len() == 0 {
		return 0, badArguments("%w", ErrEmptyDivisor)
	}
	if divisor.Len() > dividend.Len() {
		return 0, badArguments("%w: %d > %d coefficients", ErrDivisorTooLong, divisor.Len(), dividend.Len())
	}
	return dividend.Len() - divisor.Len() + 1, nil
}

// LongDiv writes dividend / divisor into out, which must have been allocated
// with QuotientLength(dividend, divisor) coefficients.
//
// The divisor must exactly divide the dividend and its leading coefficient must
// be non zero; otherwise, like when out has the wrong length, LongDiv returns
// a BadArguments error and out is left untouched.
func LongDiv[E any](out, dividend, divisor *Polynomial[E]) error {
	if err := sameField(dividend, divisor, out); err != nil {
		return err
	}
	n, err := QuotientLength(dividend, divisor)
	if err != nil {
		return err
	}
	if out.Len() != n {
		return badArguments("%w: got %d, want %d", ErrOutputLength, out.Len(), n)
	}
	quot, rem, err := syntheticDiv(dividend.f, dividend.coeffs, divisor.coeffs)
	if err != nil {
		return err
	}
	for i, r := range rem {
		if !dividend.f.IsZero(r) {
			return badArguments("%w: remainder coefficient %d is %s", ErrNonZeroRemainder, i, dividend.f.String(r))
		}
	}
	copy(out.coeffs, quot)
	return nil
}

// Div allocates the quotient and performs LongDiv into it.
func Div[E any](dividend, divisor *Polynomial[E]) (*Polynomial[E], error) {
	n, err := QuotientLength(dividend, divisor)
	if err != nil {
		return nil, err
	}
	out, err := New(dividend.f, n)
	if err != nil {
		return nil, err
	}
	if err := LongDiv(out, dividend, divisor); err != nil {
		_ = out.Release()
		return nil, err
	}
	return out, nil
}

// DivRem returns the quotient and remainder of dividend / divisor, without
// requiring exact divisibility. The remainder has divisor.Len()-1
// coefficients.
func DivRem[E any](dividend, divisor *Polynomial[E]) (*Polynomial[E], *Polynomial[E], error) {
	if err := sameField(dividend, divisor); err != nil {
		return nil, nil, err
	}
	if _, err := QuotientLength(dividend, divisor); err != nil {
		return nil, nil, err
	}
	quot, rem, err := syntheticDiv(dividend.f, dividend.coeffs, divisor.coeffs)
	if err != nil {
		return nil, nil, err
	}
	q, err := FromCoefficients(dividend.f, quot...)
	if err != nil {
		return nil, nil, err
	}
	r, err := FromCoefficients(dividend.f, rem...)
	if err != nil {
		return nil, nil, err
	}
	return q, r, nil
}

// syntheticDiv divides a by b, eliminating the leading term of a scratch copy
// of a at each step, from the highest quotient degree down to zero. It returns
// the quotient and the low len(b)-1 coefficients left in the scratch buffer,
// i.e. the remainder. Callers guarantee len(a) >= len(b) >= 1.
func syntheticDiv[E any](f field.Field[E], a, b []E) ([]E, []E, error) {
	aPos := len(a) - 1
	bPos := len(b) - 1
	diff := aPos - bPos

	leadInv, err := f.Inverse(b[bPos])
	if err != nil {
		if errors.Is(err, field.ErrDivisionByZero) {
			return nil, nil, badArguments("%w", ErrZeroLeadingCoefficient)
		}
		return nil, nil, internalError(err)
	}

	scratch := make([]E, len(a), len(a))
	copy(scratch, a)
	quot := make([]E, diff+1)

	for {
		quot[diff] = f.Mul(scratch[aPos], leadInv)
		// scratch -= quot[diff]⋅b⋅X^diff
		for i := 0; i <= bPos; i++ {
			scratch[diff+i] = f.Sub(scratch[diff+i], f.Mul(quot[diff], b[i]))
		}
		if diff == 0 {
			break
		}
		diff--
		aPos--
	}
	return quot, scratch[:bPos], nil
}
