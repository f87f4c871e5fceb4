// Package metadb opens a db.Database by backend name.
package metadb

import (
	"fmt"
	"testing"

	"github.com/vocdoni/davinci-poly/db"
	"github.com/vocdoni/davinci-poly/db/inmemory"
	"github.com/vocdoni/davinci-poly/db/leveldb"
	"github.com/vocdoni/davinci-poly/db/pebbledb"
	"github.com/vocdoni/davinci-poly/log"
)

// New opens the backend typ (db.TypePebble, db.TypeLevelDB or db.TypeInMem)
// at dir. dir is ignored by the in-memory backend.
func New(typ, dir string) (db.Database, error) {
	opts := db.Options{Path: dir}
	var (
		database db.Database
		err      error
	)
	switch typ {
	case db.TypePebble:
		database, err = pebbledb.New(opts)
	case db.TypeLevelDB:
		database, err = leveldb.New(opts)
	case db.TypeInMem:
		database, err = inmemory.New(opts)
	default:
		return nil, fmt.Errorf("invalid db type %q, available types: %s, %s, %s",
			typ, db.TypePebble, db.TypeLevelDB, db.TypeInMem)
	}
	if err != nil {
		return nil, err
	}
	log.Debugw("database opened", "type", typ, "path", dir)
	return database, nil
}

// NewTest opens a pebble database in a temporary directory, closed when the
// test ends.
func NewTest(tb testing.TB) db.Database {
	tb.Helper()
	database, err := New(db.TypePebble, tb.TempDir())
	if err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() { _ = database.Close() })
	return database
}
