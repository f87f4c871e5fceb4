// Package leveldb implements db.Database on top of syndtr/goleveldb.
package leveldb

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/vocdoni/davinci-poly/db"
)

// LevelDB implements db.Database.
type LevelDB struct {
	db *leveldb.DB
}

var _ db.Database = (*LevelDB)(nil)

// New opens or creates the database at opts.Path.
func New(opts db.Options) (*LevelDB, error) {
	ldb, err := leveldb.OpenFile(opts.Path, &opt.Options{})
	if err != nil {
		return nil, fmt.Errorf("open leveldb: %w", err)
	}
	return &LevelDB{db: ldb}, nil
}

func (d *LevelDB) Close() error {
	err := d.db.Close()
	if errors.Is(err, leveldb.ErrClosed) {
		return nil
	}
	return err
}

func (d *LevelDB) Get(key []byte) ([]byte, error) {
	value, err := d.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, db.ErrKeyNotFound
	}
	return value, err
}

func (d *LevelDB) Iterate(prefix []byte, callback func(key, value []byte) bool) error {
	iter := d.db.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()
	for iter.Next() {
		if !callback(iter.Key()[len(prefix):], iter.Value()) {
			break
		}
	}
	return iter.Error()
}

func (d *LevelDB) Compact() error {
	return d.db.CompactRange(util.Range{})
}

// WriteTx buffers writes in memory and applies them as one leveldb.Batch.
// Conflicts are not detected.
func (d *LevelDB) WriteTx() db.WriteTx {
	return &WriteTx{db: d, pending: make(map[string][]byte)}
}

// WriteTx is the transaction of a LevelDB.
type WriteTx struct {
	db      *LevelDB
	mu      sync.Mutex
	pending map[string][]byte // nil value marks a delete
	closed  bool
}

var _ db.WriteTx = (*WriteTx)(nil)

func (tx *WriteTx) Get(key []byte) ([]byte, error) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.closed {
		return nil, db.ErrTxClosed
	}
	if v, ok := tx.pending[string(key)]; ok {
		if v == nil {
			return nil, db.ErrKeyNotFound
		}
		return bytes.Clone(v), nil
	}
	return tx.db.Get(key)
}

func (tx *WriteTx) Iterate(prefix []byte, callback func(key, value []byte) bool) error {
	tx.mu.Lock()
	if tx.closed {
		tx.mu.Unlock()
		return db.ErrTxClosed
	}
	entries := map[string][]byte{}
	err := tx.db.Iterate(prefix, func(k, v []byte) bool {
		entries[string(k)] = bytes.Clone(v)
		return true
	})
	for k, v := range tx.pending {
		if !strings.HasPrefix(k, string(prefix)) {
			continue
		}
		if v == nil {
			delete(entries, k[len(prefix):])
			continue
		}
		entries[k[len(prefix):]] = bytes.Clone(v)
	}
	tx.mu.Unlock()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !callback([]byte(k), entries[k]) {
			break
		}
	}
	return nil
}

func (tx *WriteTx) Set(key, value []byte) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.closed {
		return db.ErrTxClosed
	}
	v := bytes.Clone(value)
	if v == nil {
		v = []byte{}
	}
	tx.pending[string(key)] = v
	return nil
}

func (tx *WriteTx) Delete(key []byte) error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.closed {
		return db.ErrTxClosed
	}
	tx.pending[string(key)] = nil
	return nil
}

func (tx *WriteTx) Commit() error {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.closed {
		return db.ErrTxClosed
	}
	tx.closed = true
	batch := new(leveldb.Batch)
	for k, v := range tx.pending {
		if v == nil {
			batch.Delete([]byte(k))
			continue
		}
		batch.Put([]byte(k), v)
	}
	return tx.db.db.Write(batch, &opt.WriteOptions{Sync: true})
}

func (tx *WriteTx) Discard() {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.pending = nil
	tx.closed = true
}
