// Package db defines the key/value store the service persists polynomials in,
// implemented by the inmemory, pebbledb and leveldb subpackages.
package db

import (
	"errors"
	"io"
)

const (
	TypePebble  = "pebble"
	TypeLevelDB = "leveldb"
	TypeInMem   = "inmem"
)

var (
	// ErrKeyNotFound is returned by Get when the key does not exist.
	ErrKeyNotFound = errors.New("key not found")
	// ErrConflict is returned by Commit when a key read or written by the
	// transaction was modified by another committed transaction. Only
	// backends with conflict detection return it.
	ErrConflict = errors.New("transaction conflict")
	// ErrTxClosed is returned when using a committed or discarded WriteTx.
	ErrTxClosed = errors.New("transaction already committed or discarded")
)

// Options configures a backend.
type Options struct {
	Path string
}

// Reader reads keys and ranges.
type Reader interface {
	// Get returns a copy of the value of key, or ErrKeyNotFound.
	Get(key []byte) ([]byte, error)
	// Iterate calls callback for every key starting with prefix, in
	// lexicographic order and with the prefix removed, until it returns
	// false. The slices are only valid during the call.
	Iterate(prefix []byte, callback func(key, value []byte) bool) error
}

// Database is a key/value store.
type Database interface {
	io.Closer
	Reader
	// WriteTx opens a transaction. Its writes are visible to its own reads
	// and to the database once committed.
	WriteTx() WriteTx
	// Compact compacts the underlying storage.
	Compact() error
}

// WriteTx is a write transaction. It must end with Commit or Discard.
type WriteTx interface {
	Reader
	Set(key, value []byte) error
	Delete(key []byte) error
	Commit() error
	// Discard releases the transaction. It is safe to call after Commit,
	// so it can be deferred.
	Discard()
}
