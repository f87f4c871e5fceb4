// Package inmemory implements an ephemeral db.Database with optimistic
// conflict detection, used by tests and by the inmem backend.
package inmemory

import (
	"bytes"
	"slices"
	"strings"
	"sync"

	"github.com/vocdoni/davinci-poly/db"
)

type entry struct {
	value   []byte
	version uint64
	deleted bool
}

// InMemoryDB implements an ephemeral in-memory db.Database. Every write bumps
// a global version; a transaction fails with db.ErrConflict when a key it
// touched changed since it was read.
type InMemoryDB struct {
	mu          sync.RWMutex
	data        map[string]entry
	nextVersion uint64
}

var _ db.Database = (*InMemoryDB)(nil)

// New returns a new in-memory database. Options are ignored.
func New(_ db.Options) (*InMemoryDB, error) {
	return &InMemoryDB{data: make(map[string]entry)}, nil
}

func (d *InMemoryDB) Close() error { return nil }

// Compact drops the tombstones of deleted keys.
func (d *InMemoryDB) Compact() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, ent := range d.data {
		if ent.deleted {
			delete(d.data, k)
		}
	}
	return nil
}

func (d *InMemoryDB) WriteTx() db.WriteTx {
	d.mu.RLock()
	baseVer := d.nextVersion
	d.mu.RUnlock()
	return &WriteTx{
		db:      d,
		writes:  make(map[string]*[]byte),
		reads:   make(map[string]uint64),
		baseVer: baseVer,
	}
}

func (d *InMemoryDB) Get(key []byte) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	ent, ok := d.data[string(key)]
	if !ok || ent.deleted {
		return nil, db.ErrKeyNotFound
	}
	return bytes.Clone(ent.value), nil
}

func (d *InMemoryDB) Iterate(prefix []byte, callback func(key, value []byte) bool) error {
	entries, _ := d.snapshot(prefix)
	return iterateEntries(prefix, entries, callback)
}

// snapshot copies the live entries under prefix and their versions.
func (d *InMemoryDB) snapshot(prefix []byte) (map[string][]byte, map[string]uint64) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	entries := make(map[string][]byte)
	versions := make(map[string]uint64)
	for k, ent := range d.data {
		if ent.deleted || !strings.HasPrefix(k, string(prefix)) {
			continue
		}
		entries[k] = bytes.Clone(ent.value)
		versions[k] = ent.version
	}
	return entries, versions
}

func (d *InMemoryDB) version(key string) uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data[key].version
}

// WriteTx buffers writes until Commit.
type WriteTx struct {
	db      *InMemoryDB
	writes  map[string]*[]byte // nil value marks a delete
	reads   map[string]uint64
	baseVer uint64
	closed  bool
}

var _ db.WriteTx = (*WriteTx)(nil)

func (tx *WriteTx) recordRead(key string, version uint64) {
	if _, ok := tx.reads[key]; !ok {
		tx.reads[key] = version
	}
}

func (tx *WriteTx) Get(key []byte) ([]byte, error) {
	if tx.closed {
		return nil, db.ErrTxClosed
	}
	k := string(key)
	if pending, ok := tx.writes[k]; ok {
		if pending == nil {
			return nil, db.ErrKeyNotFound
		}
		return bytes.Clone(*pending), nil
	}
	tx.recordRead(k, tx.db.version(k))
	return tx.db.Get(key)
}

func (tx *WriteTx) Iterate(prefix []byte, callback func(key, value []byte) bool) error {
	if tx.closed {
		return db.ErrTxClosed
	}
	entries, versions := tx.db.snapshot(prefix)
	for k, v := range versions {
		tx.recordRead(k, v)
	}
	for k, v := range tx.writes {
		if !strings.HasPrefix(k, string(prefix)) {
			continue
		}
		if v == nil {
			delete(entries, k)
			continue
		}
		entries[k] = bytes.Clone(*v)
	}
	return iterateEntries(prefix, entries, callback)
}

func (tx *WriteTx) Set(key, value []byte) error {
	if tx.closed {
		return db.ErrTxClosed
	}
	k := string(key)
	tx.recordRead(k, tx.db.version(k))
	v := bytes.Clone(value)
	tx.writes[k] = &v
	return nil
}

func (tx *WriteTx) Delete(key []byte) error {
	if tx.closed {
		return db.ErrTxClosed
	}
	k := string(key)
	tx.recordRead(k, tx.db.version(k))
	tx.writes[k] = nil
	return nil
}

func (tx *WriteTx) Commit() error {
	if tx.closed {
		return db.ErrTxClosed
	}
	tx.closed = true

	d := tx.db
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, readVersion := range tx.reads {
		if readVersion > tx.baseVer || d.data[key].version != readVersion {
			return db.ErrConflict
		}
	}
	for key, value := range tx.writes {
		d.nextVersion++
		ent := entry{version: d.nextVersion}
		if value == nil {
			ent.deleted = true
		} else {
			ent.value = *value
		}
		d.data[key] = ent
	}
	return nil
}

func (tx *WriteTx) Discard() {
	tx.writes = nil
	tx.reads = nil
	tx.closed = true
}

func iterateEntries(prefix []byte, entries map[string][]byte, callback func(key, value []byte) bool) error {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if !callback([]byte(key[len(prefix):]), entries[key]) {
			break
		}
	}
	return nil
}
