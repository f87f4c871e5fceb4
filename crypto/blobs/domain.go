package blobs

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// rootOfUnity2Pow32 is the primitive 2³²-th root of unity of BLS12-381 Fr used
// by go-eth-kzg and c-kzg-4844.
const rootOfUnity2Pow32 = "10238227357739495823651030575849232062558860180284477541189508159991286009131"

// logN is log₂(FieldElementsPerBlob).
const logN = 12

var bigN = big.NewInt(FieldElementsPerBlob)

// Domain is the multiplicative subgroup of order 4096 in bit-reversed order,
// the evaluation domain of EIP-4844 blobs: blob cell i holds P(Roots[i]).
type Domain struct {
	Roots [FieldElementsPerBlob]fr.Element
}

var domain = sync.OnceValue(func() *Domain {
	var root fr.Element
	if _, err := root.SetString(rootOfUnity2Pow32); err != nil {
		panic(err)
	}
	// ω = root^(2³²/4096)
	var generator fr.Element
	generator.Exp(root, big.NewInt(1<<(32-logN)))

	var natural [FieldElementsPerBlob]fr.Element
	natural[0].SetOne()
	for i := 1; i < FieldElementsPerBlob; i++ {
		natural[i].Mul(&natural[i-1], &generator)
	}

	d := &Domain{}
	for i := range FieldElementsPerBlob {
		d.Roots[i] = natural[bitReverse(i, logN)]
	}
	return d
})

// EvaluationDomain returns the shared blob evaluation domain. It must not be
// modified.
func EvaluationDomain() *Domain {
	return domain()
}

// Index returns the position of z in the domain, or -1.
func (d *Domain) Index(z fr.Element) int {
	for i := range d.Roots {
		if d.Roots[i].Equal(&z) {
			return i
		}
	}
	return -1
}

// bitReverse reverses the low log2n bits of n.
func bitReverse(n, log2n int) int {
	rev := 0
	for i := range log2n {
		if (n>>i)&1 == 1 {
			rev |= 1 << (log2n - 1 - i)
		}
	}
	return rev
}
