package storage

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	qt "github.com/frankban/quicktest"
	"github.com/google/uuid"
	"github.com/vocdoni/davinci-poly/db"
	"github.com/vocdoni/davinci-poly/db/metadb"
	"github.com/vocdoni/davinci-poly/polynomial"
)

func newStorage(t *testing.T, typ string, opts ...Option) *Storage {
	database, err := metadb.New(typ, t.TempDir())
	qt.Assert(t, err, qt.IsNil)
	s, err := New(database, opts...)
	qt.Assert(t, err, qt.IsNil)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func randomPolynomial(c *qt.C, s *Storage, n int) *polynomial.Polynomial[fr.Element] {
	p, err := polynomial.Random(s.Field(), n)
	c.Assert(err, qt.IsNil)
	return p
}

func TestPutGetAcrossBackends(t *testing.T) {
	for _, typ := range []string{db.TypePebble, db.TypeLevelDB, db.TypeInMem} {
		t.Run(typ, func(t *testing.T) {
			c := qt.New(t)
			s := newStorage(t, typ)
			p := randomPolynomial(c, s, 10)

			id, err := s.Put(p)
			c.Assert(err, qt.IsNil)
			c.Assert(id, qt.Not(qt.Equals), uuid.Nil)

			got, err := s.Get(id)
			c.Assert(err, qt.IsNil)
			c.Assert(polynomial.Equal(got, p), qt.IsTrue)

			// a cold cache decodes from the database
			s.cache.Purge()
			got, err = s.Get(id)
			c.Assert(err, qt.IsNil)
			c.Assert(polynomial.Equal(got, p), qt.IsTrue)

			// the returned polynomial is owned by the caller
			c.Assert(got.Release(), qt.IsNil)
			again, err := s.Get(id)
			c.Assert(err, qt.IsNil)
			c.Assert(polynomial.Equal(again, p), qt.IsTrue)
		})
	}
}

func TestJSONEncoding(t *testing.T) {
	c := qt.New(t)
	s := newStorage(t, db.TypeInMem, WithEncoding(ArtifactEncodingJSON))
	p, err := polynomial.FromUint64(s.Field(), 1, 2, 3)
	c.Assert(err, qt.IsNil)
	id, err := s.Put(p)
	c.Assert(err, qt.IsNil)

	raw, err := s.polynomials.Get(id[:])
	c.Assert(err, qt.IsNil)
	c.Assert(string(raw), qt.Contains, `"field":"bls12381-fr"`)

	record, err := s.Record(id)
	c.Assert(err, qt.IsNil)
	c.Assert(record.Coefficients, qt.HasLen, 3)
	c.Assert(record.Coefficients[2].LeftTrim().String(), qt.Equals, "0x03")

	_, err = New(s.db, WithEncoding(ArtifactEncoding(7)))
	c.Assert(err, qt.IsNotNil)
}

func TestDeleteAndList(t *testing.T) {
	c := qt.New(t)
	s := newStorage(t, db.TypePebble)

	ids := map[uuid.UUID]bool{}
	for range 3 {
		id, err := s.Put(randomPolynomial(c, s, 4))
		c.Assert(err, qt.IsNil)
		ids[id] = true
	}
	listed, err := s.List()
	c.Assert(err, qt.IsNil)
	c.Assert(listed, qt.HasLen, 3)
	for _, id := range listed {
		c.Assert(ids[id], qt.IsTrue)
	}

	victim := listed[1]
	c.Assert(s.SetCommitment(victim, []byte{0xc0}), qt.IsNil)
	c.Assert(s.Delete(victim), qt.IsNil)
	_, err = s.Get(victim)
	c.Assert(err, qt.ErrorIs, ErrNotFound)
	_, err = s.Commitment(victim)
	c.Assert(err, qt.ErrorIs, ErrNotFound)
	c.Assert(s.Delete(victim), qt.ErrorIs, ErrNotFound)

	listed, err = s.List()
	c.Assert(err, qt.IsNil)
	c.Assert(listed, qt.HasLen, 2)
}

func TestCommitment(t *testing.T) {
	c := qt.New(t)
	s := newStorage(t, db.TypeInMem)

	c.Assert(s.SetCommitment(uuid.New(), []byte{1}), qt.ErrorIs, ErrNotFound)

	id, err := s.Put(randomPolynomial(c, s, 2))
	c.Assert(err, qt.IsNil)
	_, err = s.Commitment(id)
	c.Assert(err, qt.ErrorIs, ErrNotFound)

	c.Assert(s.SetCommitment(id, []byte{0xaa, 0xbb}), qt.IsNil)
	got, err := s.Commitment(id)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, []byte{0xaa, 0xbb})
}

func TestPutReleased(t *testing.T) {
	c := qt.New(t)
	s := newStorage(t, db.TypeInMem)
	p := randomPolynomial(c, s, 2)
	c.Assert(p.Release(), qt.IsNil)
	_, err := s.Put(p)
	c.Assert(err, qt.IsNotNil)
}

func TestUnknownField(t *testing.T) {
	c := qt.New(t)
	s := newStorage(t, db.TypeInMem)
	data, err := EncodeArtifact(&PolynomialRecord{Field: "bn254-fr"}, ArtifactEncodingCBOR)
	c.Assert(err, qt.IsNil)
	id := uuid.New()
	c.Assert(s.write(s.polynomials, id, data), qt.IsNil)

	_, err = s.Get(id)
	c.Assert(err, qt.ErrorIs, ErrFieldUnknown)
}
