package polynomial

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Evaluate returns p(x) using Horner's method: starting from the leading
// coefficient, acc = acc⋅x + cᵢ for i = n-2 … 0. The empty polynomial
// evaluates to zero everywhere, including at x = 0.
func Evaluate[E any](p *Polynomial[E], x E) (E, error) {
	if err := p.check(); err != nil {
		var zero E
		return zero, err
	}
	return horner(p, x), nil
}

func horner[E any](p *Polynomial[E], x E) E {
	f := p.f
	n := len(p.coeffs)
	if n == 0 {
		return f.Zero()
	}
	acc := p.coeffs[n-1]
	for i := n - 2; i >= 0; i-- {
		// bᵢ = bᵢ₊₁⋅x + cᵢ
		acc = f.Add(f.Mul(acc, x), p.coeffs[i])
	}
	return acc
}

// EvaluateDirect returns Σ cᵢ⋅xⁱ, accumulating the powers of x explicitly. It
// costs twice as many multiplications as Evaluate and exists to cross check it.
func EvaluateDirect[E any](p *Polynomial[E], x E) (E, error) {
	if err := p.check(); err != nil {
		var zero E
		return zero, err
	}
	f := p.f
	sum := f.Zero()
	pow := f.FromUint64(1)
	for _, c := range p.coeffs {
		sum = f.Add(sum, f.Mul(c, pow))
		pow = f.Mul(pow, x)
	}
	return sum, nil
}

// EvaluateMany returns p(xs[i]) for every point, splitting the points across
// GOMAXPROCS workers. p is only read, so it must not be modified until the
// call returns.
func EvaluateMany[E any](ctx context.Context, p *Polynomial[E], xs []E) ([]E, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	out := make([]E, len(xs))
	workers := runtime.GOMAXPROCS(0)
	chunk := (len(xs) + workers - 1) / workers
	if chunk < 64 {
		chunk = 64
	}

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(xs); start += chunk {
		end := min(start+chunk, len(xs))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				out[i] = horner(p, xs[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
