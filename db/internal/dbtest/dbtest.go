// Package dbtest holds the behaviour every db.Database backend must share.
package dbtest

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/davinci-poly/db"
	"github.com/vocdoni/davinci-poly/db/prefixeddb"
)

// TestWriteTx checks read-your-writes, commit visibility and deletes.
func TestWriteTx(t *testing.T, database db.Database) {
	c := qt.New(t)

	tx := database.WriteTx()
	c.Assert(tx.Set([]byte("a"), []byte("1")), qt.IsNil)
	v, err := tx.Get([]byte("a"))
	c.Assert(err, qt.IsNil)
	c.Assert(string(v), qt.Equals, "1")

	_, err = database.Get([]byte("a"))
	c.Assert(err, qt.ErrorIs, db.ErrKeyNotFound)

	c.Assert(tx.Commit(), qt.IsNil)
	tx.Discard()
	v, err = database.Get([]byte("a"))
	c.Assert(err, qt.IsNil)
	c.Assert(string(v), qt.Equals, "1")

	c.Assert(tx.Set([]byte("b"), []byte("2")), qt.ErrorIs, db.ErrTxClosed)
	c.Assert(tx.Commit(), qt.ErrorIs, db.ErrTxClosed)

	tx = database.WriteTx()
	c.Assert(tx.Delete([]byte("a")), qt.IsNil)
	_, err = tx.Get([]byte("a"))
	c.Assert(err, qt.ErrorIs, db.ErrKeyNotFound)
	c.Assert(tx.Commit(), qt.IsNil)
	_, err = database.Get([]byte("a"))
	c.Assert(err, qt.ErrorIs, db.ErrKeyNotFound)
}

// TestDiscard checks that discarded writes never reach the database.
func TestDiscard(t *testing.T, database db.Database) {
	c := qt.New(t)

	tx := database.WriteTx()
	c.Assert(tx.Set([]byte("discarded"), []byte("x")), qt.IsNil)
	tx.Discard()
	_, err := database.Get([]byte("discarded"))
	c.Assert(err, qt.ErrorIs, db.ErrKeyNotFound)
}

// TestIterate checks ordering, prefix stripping, early stop and the overlay
// of pending writes in transactions.
func TestIterate(t *testing.T, database db.Database) {
	c := qt.New(t)

	tx := database.WriteTx()
	for _, k := range []string{"p/3", "p/1", "p/2", "q/1", "p"} {
		c.Assert(tx.Set([]byte(k), []byte("v"+k)), qt.IsNil)
	}
	c.Assert(tx.Commit(), qt.IsNil)

	var keys []string
	c.Assert(database.Iterate([]byte("p/"), func(k, v []byte) bool {
		keys = append(keys, string(k))
		c.Assert(string(v), qt.Equals, "vp/"+string(k))
		return true
	}), qt.IsNil)
	c.Assert(keys, qt.DeepEquals, []string{"1", "2", "3"})

	keys = nil
	c.Assert(database.Iterate([]byte("p/"), func(k, _ []byte) bool {
		keys = append(keys, string(k))
		return len(keys) < 2
	}), qt.IsNil)
	c.Assert(keys, qt.DeepEquals, []string{"1", "2"})

	tx = database.WriteTx()
	defer tx.Discard()
	c.Assert(tx.Delete([]byte("p/2")), qt.IsNil)
	c.Assert(tx.Set([]byte("p/4"), []byte("vp/4")), qt.IsNil)
	keys = nil
	c.Assert(tx.Iterate([]byte("p/"), func(k, _ []byte) bool {
		keys = append(keys, string(k))
		return true
	}), qt.IsNil)
	c.Assert(keys, qt.DeepEquals, []string{"1", "3", "4"})
}

// TestPrefixed checks that prefixed views of the same database are isolated.
func TestPrefixed(t *testing.T, database db.Database) {
	c := qt.New(t)
	one := prefixeddb.NewPrefixedDatabase(database, []byte("one/"))
	two := prefixeddb.NewPrefixedDatabase(database, []byte("two/"))

	tx := one.WriteTx()
	c.Assert(tx.Set([]byte("k"), []byte("1")), qt.IsNil)
	c.Assert(tx.Commit(), qt.IsNil)

	_, err := two.Get([]byte("k"))
	c.Assert(err, qt.ErrorIs, db.ErrKeyNotFound)
	v, err := database.Get([]byte("one/k"))
	c.Assert(err, qt.IsNil)
	c.Assert(string(v), qt.Equals, "1")

	var keys []string
	c.Assert(one.Iterate(nil, func(k, _ []byte) bool {
		keys = append(keys, string(k))
		return true
	}), qt.IsNil)
	c.Assert(keys, qt.DeepEquals, []string{"k"})
}

// TestAll runs every shared test on a fresh database from newDB.
func TestAll(t *testing.T, newDB func(t *testing.T) db.Database) {
	for name, test := range map[string]func(*testing.T, db.Database){
		"WriteTx":  TestWriteTx,
		"Discard":  TestDiscard,
		"Iterate":  TestIterate,
		"Prefixed": TestPrefixed,
	} {
		t.Run(name, func(t *testing.T) {
			database := newDB(t)
			defer func() { qt.Assert(t, database.Close(), qt.IsNil) }()
			test(t, database)
			qt.Assert(t, database.Compact(), qt.IsNil)
		})
	}
}
