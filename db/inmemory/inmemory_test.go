package inmemory

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-poly/db"
	"github.com/vocdoni/davinci-poly/db/internal/dbtest"
)

func newDB(t *testing.T) db.Database {
	database, err := New(db.Options{})
	qt.Assert(t, err, qt.IsNil)
	return database
}

func TestBackend(t *testing.T) {
	dbtest.TestAll(t, newDB)
}

func TestConcurrentWriteTx(t *testing.T) {
	c := qt.New(t)
	database := newDB(t)

	first := database.WriteTx()
	second := database.WriteTx()
	_, err := first.Get([]byte("k"))
	c.Assert(err, qt.ErrorIs, db.ErrKeyNotFound)
	c.Assert(first.Set([]byte("k"), []byte("1")), qt.IsNil)
	c.Assert(second.Set([]byte("k"), []byte("2")), qt.IsNil)

	c.Assert(first.Commit(), qt.IsNil)
	c.Assert(second.Commit(), qt.ErrorIs, db.ErrConflict)

	v, err := database.Get([]byte("k"))
	c.Assert(err, qt.IsNil)
	c.Assert(string(v), qt.Equals, "1")
}

func TestCompactDropsTombstones(t *testing.T) {
	c := qt.New(t)
	database, err := New(db.Options{})
	c.Assert(err, qt.IsNil)

	tx := database.WriteTx()
	c.Assert(tx.Set([]byte("k"), []byte("v")), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)
	tx = database.WriteTx()
	c.Assert(tx.Delete([]byte("k")), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)

	c.Assert(database.data, qt.HasLen, 1)
	c.Assert(database.Compact(), qt.IsNil)
	c.Assert(database.data, qt.HasLen, 0)
}
