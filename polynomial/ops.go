package polynomial

// Mul returns a⋅b, with a.Len()+b.Len()-1 coefficients. The product with an
// empty polynomial is empty.
func Mul[E any](a, b *Polynomial[E]) (*Polynomial[E], error) {
	if err := sameField(a, b); err != nil {
		return nil, err
	}
	if a.Len() == 0 || b.Len() == 0 {
		return New(a.f, 0)
	}
	f := a.f
	out, err := New(f, a.Len()+b.Len()-1)
	if err != nil {
		return nil, err
	}
	for i, ai := range a.coeffs {
		if f.IsZero(ai) {
			continue
		}
		for j, bj := range b.coeffs {
			out.coeffs[i+j] = f.Add(out.coeffs[i+j], f.Mul(ai, bj))
		}
	}
	return out, nil
}

// Add returns a+b, with max(a.Len(), b.Len()) coefficients.
func Add[E any](a, b *Polynomial[E]) (*Polynomial[E], error) {
	return combine(a, b, false)
}

// Sub returns a-b, with max(a.Len(), b.Len()) coefficients.
func Sub[E any](a, b *Polynomial[E]) (*Polynomial[E], error) {
	return combine(a, b, true)
}

func combine[E any](a, b *Polynomial[E], negate bool) (*Polynomial[E], error) {
	if err := sameField(a, b); err != nil {
		return nil, err
	}
	f := a.f
	out, err := New(f, max(a.Len(), b.Len()))
	if err != nil {
		return nil, err
	}
	copy(out.coeffs, a.coeffs)
	for i, c := range b.coeffs {
		if negate {
			out.coeffs[i] = f.Sub(out.coeffs[i], c)
		} else {
			out.coeffs[i] = f.Add(out.coeffs[i], c)
		}
	}
	return out, nil
}

// Scale returns c⋅p.
func Scale[E any](p *Polynomial[E], c E) (*Polynomial[E], error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	out, err := New(p.f, p.Len())
	if err != nil {
		return nil, err
	}
	for i, pi := range p.coeffs {
		out.coeffs[i] = p.f.Mul(pi, c)
	}
	return out, nil
}

// Equal reports whether a and b have the same field, the same length and the
// same coefficients. Zero leading coefficients are significant.
func Equal[E any](a, b *Polynomial[E]) bool {
	if a == nil || b == nil || a.released || b.released {
		return false
	}
	if a.f.Name() != b.f.Name() || a.Len() != b.Len() {
		return false
	}
	for i := range a.coeffs {
		if !a.f.Equal(a.coeffs[i], b.coeffs[i]) {
			return false
		}
	}
	return true
}
