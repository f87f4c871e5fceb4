package kzg

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	gnarkkzg "github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-poly/crypto/field"
	fieldbls "github.com/vocdoni/davinci-poly/crypto/field/bls12381"
	"github.com/vocdoni/davinci-poly/polynomial"
)

const testSRSSize = 64

func testProver(t *testing.T) *Prover {
	t.Helper()
	srs, err := NewTestSRS(testSRSSize, big.NewInt(42))
	qt.Assert(t, err, qt.IsNil)
	prover, err := NewProver(srs)
	qt.Assert(t, err, qt.IsNil)
	return prover
}

func TestOpenVerifies(t *testing.T) {
	c := qt.New(t)
	var f field.Field[fr.Element] = fieldbls.New()
	prover := testProver(t)

	for _, length := range []int{1, 2, 7, testSRSSize} {
		p, err := polynomial.Random(f, length)
		c.Assert(err, qt.IsNil)
		z, err := f.Random()
		c.Assert(err, qt.IsNil)

		commitment, err := prover.Commit(p)
		c.Assert(err, qt.IsNil)
		proof, q, err := prover.Open(p, z)
		c.Assert(err, qt.IsNil)
		c.Assert(q.Len(), qt.Equals, max(length-1, 1))

		want, err := polynomial.Evaluate(p, z)
		c.Assert(err, qt.IsNil)
		c.Assert(proof.ClaimedValue.Equal(&want), qt.IsTrue)
		c.Assert(prover.Verify(commitment, proof, z), qt.IsNil)

		if length == 1 {
			// gnark-crypto refuses to commit to the empty quotient
			continue
		}
		// gnark-crypto derives the same quotient commitment
		reference, err := gnarkkzg.Open(p.Coefficients(), z, gnarkkzg.ProvingKey{G1: prover.pk.G1})
		c.Assert(err, qt.IsNil)
		c.Assert(proof.H.Equal(&reference.H), qt.IsTrue, qt.Commentf("length %d", length))
		c.Assert(proof.ClaimedValue.Equal(&reference.ClaimedValue), qt.IsTrue)
	}
}

func TestVerifyRejectsWrongClaim(t *testing.T) {
	c := qt.New(t)
	var f field.Field[fr.Element] = fieldbls.New()
	prover := testProver(t)

	p, err := polynomial.FromUint64(f, 1, 2, 3, 4)
	c.Assert(err, qt.IsNil)
	z := f.FromUint64(5)
	commitment, err := prover.Commit(p)
	c.Assert(err, qt.IsNil)
	proof, _, err := prover.Open(p, z)
	c.Assert(err, qt.IsNil)

	// 1 + 2⋅5 + 3⋅25 + 4⋅125 = 586
	c.Assert(f.String(proof.ClaimedValue), qt.Equals, "586")

	proof.ClaimedValue = f.Add(proof.ClaimedValue, field.One(f))
	c.Assert(prover.Verify(commitment, proof, z), qt.IsNotNil)
	c.Assert(CompressedBytes(commitment), qt.HasLen, 48)
}

func TestCommitTooLong(t *testing.T) {
	c := qt.New(t)
	var f field.Field[fr.Element] = fieldbls.New()
	prover := testProver(t)

	p, err := polynomial.New(f, testSRSSize+1)
	c.Assert(err, qt.IsNil)
	_, err = prover.Commit(p)
	c.Assert(err, qt.ErrorIs, ErrPolynomialTooLong)
	_, _, err = prover.Open(p, f.FromUint64(1))
	c.Assert(err, qt.ErrorIs, ErrPolynomialTooLong)
}

func TestReadSRS(t *testing.T) {
	c := qt.New(t)
	srs, err := NewTestSRS(8, big.NewInt(7))
	c.Assert(err, qt.IsNil)

	path := filepath.Join(t.TempDir(), "srs.bin")
	fd, err := os.Create(path)
	c.Assert(err, qt.IsNil)
	_, err = srs.WriteTo(fd)
	c.Assert(err, qt.IsNil)
	c.Assert(fd.Close(), qt.IsNil)

	loaded, err := ReadSRS(path)
	c.Assert(err, qt.IsNil)
	c.Assert(loaded.Pk.G1, qt.HasLen, 8)
	c.Assert(loaded.Pk.G1[1].Equal(&srs.Pk.G1[1]), qt.IsTrue)

	_, err = ReadSRS(filepath.Join(t.TempDir(), "missing"))
	c.Assert(err, qt.ErrorMatches, "open SRS: .*")
}
