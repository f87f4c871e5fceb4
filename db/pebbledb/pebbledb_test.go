package pebbledb

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-poly/db"
	"github.com/vocdoni/davinci-poly/db/internal/dbtest"
)

func TestBackend(t *testing.T) {
	dbtest.TestAll(t, func(t *testing.T) db.Database {
		database, err := New(db.Options{Path: t.TempDir()})
		qt.Assert(t, err, qt.IsNil)
		return database
	})
}

func TestReopen(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()

	database, err := New(db.Options{Path: dir})
	c.Assert(err, qt.IsNil)
	tx := database.WriteTx()
	c.Assert(tx.Set([]byte("k"), []byte("v")), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)
	c.Assert(database.Close(), qt.IsNil)
	c.Assert(database.Close(), qt.IsNil)

	database, err = New(db.Options{Path: dir})
	c.Assert(err, qt.IsNil)
	defer database.Close()
	v, err := database.Get([]byte("k"))
	c.Assert(err, qt.IsNil)
	c.Assert(string(v), qt.Equals, "v")
}

func TestKeyUpperBound(t *testing.T) {
	c := qt.New(t)
	c.Assert(keyUpperBound([]byte("ab")), qt.DeepEquals, []byte("ac"))
	c.Assert(keyUpperBound([]byte{0x01, 0xff}), qt.DeepEquals, []byte{0x02})
	c.Assert(keyUpperBound([]byte{0xff, 0xff}), qt.IsNil)
	c.Assert(keyUpperBound(nil), qt.IsNil)
}
