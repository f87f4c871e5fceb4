/*
Package storage persists BLS12-381 polynomials and their KZG commitments.

# Storage Organization

The storage uses a key-value database with prefixed namespaces:

  - pl/ : polynomial id → PolynomialRecord (field name and coefficients)
  - cm/ : polynomial id → compressed KZG commitment, written on first opening

Polynomial ids are random UUIDs. Records are decoded through an LRU cache;
callers always receive a fresh polynomial they own and must release.
*/
package storage

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vocdoni/davinci-poly/crypto/field"
	"github.com/vocdoni/davinci-poly/crypto/field/bls12381"
	"github.com/vocdoni/davinci-poly/db"
	"github.com/vocdoni/davinci-poly/db/prefixeddb"
	"github.com/vocdoni/davinci-poly/log"
	"github.com/vocdoni/davinci-poly/polynomial"
	"github.com/vocdoni/davinci-poly/types"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrFieldUnknown = errors.New("record field is not supported")

	polynomialPrefix = []byte("pl/")
	commitmentPrefix = []byte("cm/")
)

// DefaultCacheSize is the number of decoded polynomials kept in memory.
const DefaultCacheSize = 256

// PolynomialRecord is the persisted form of a polynomial.
type PolynomialRecord struct {
	Field        string           `json:"field" cbor:"0,keyasint"`
	Coefficients []types.HexBytes `json:"coefficients" cbor:"1,keyasint"`
	CreatedAt    int64            `json:"createdAt" cbor:"2,keyasint"`
}

// Storage stores polynomials by id.
type Storage struct {
	db          db.Database
	polynomials db.Database
	commitments db.Database
	encoding    ArtifactEncoding
	cache       *lru.Cache[uuid.UUID, []fr.Element]
	field       field.Field[fr.Element]
	mu          sync.Mutex // serializes writes
}

// Option configures a Storage.
type Option func(*Storage) error

// WithEncoding sets the record encoding. Changing it on an existing database
// makes previous records unreadable.
func WithEncoding(e ArtifactEncoding) Option {
	return func(s *Storage) error {
		if e != ArtifactEncodingCBOR && e != ArtifactEncodingJSON {
			return fmt.Errorf("unknown artifact encoding: %d", e)
		}
		s.encoding = e
		return nil
	}
}

// WithCacheSize sets the LRU cache size.
func WithCacheSize(size int) Option {
	return func(s *Storage) error {
		cache, err := lru.New[uuid.UUID, []fr.Element](size)
		if err != nil {
			return fmt.Errorf("create LRU cache: %w", err)
		}
		s.cache = cache
		return nil
	}
}

// New creates a Storage on top of database.
func New(database db.Database, opts ...Option) (*Storage, error) {
	s := &Storage{
		db:          database,
		polynomials: prefixeddb.NewPrefixedDatabase(database, polynomialPrefix),
		commitments: prefixeddb.NewPrefixedDatabase(database, commitmentPrefix),
		field:       bls12381.New(),
	}
	for _, opt := range append([]Option{WithCacheSize(DefaultCacheSize)}, opts...) {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Field returns the field stored polynomials are defined over.
func (s *Storage) Field() field.Field[fr.Element] {
	return s.field
}

// Put stores a copy of p under a new id.
func (s *Storage) Put(p *polynomial.Polynomial[fr.Element]) (uuid.UUID, error) {
	if p == nil || p.Released() {
		return uuid.Nil, fmt.Errorf("cannot store a released polynomial")
	}
	coeffs := p.Coefficients()
	record := PolynomialRecord{
		Field:        s.field.Name(),
		Coefficients: types.SliceOf(coeffs, s.encodeElement),
		CreatedAt:    time.Now().Unix(),
	}
	data, err := EncodeArtifact(&record, s.encoding)
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode polynomial: %w", err)
	}

	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(s.polynomials, id, data); err != nil {
		return uuid.Nil, err
	}
	s.cache.Add(id, coeffs)
	log.Debugw("polynomial stored", "id", id.String(), "length", len(coeffs))
	return id, nil
}

// Get returns the polynomial stored under id. The caller owns it.
func (s *Storage) Get(id uuid.UUID) (*polynomial.Polynomial[fr.Element], error) {
	coeffs, err := s.coefficients(id)
	if err != nil {
		return nil, err
	}
	return polynomial.FromCoefficients(s.field, coeffs...)
}

// Record returns the raw record stored under id.
func (s *Storage) Record(id uuid.UUID) (*PolynomialRecord, error) {
	data, err := s.polynomials.Get(id[:])
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("polynomial %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get polynomial %s: %w", id, err)
	}
	record := &PolynomialRecord{}
	if err := DecodeArtifact(data, record, s.encoding); err != nil {
		return nil, fmt.Errorf("decode polynomial %s: %w", id, err)
	}
	return record, nil
}

func (s *Storage) coefficients(id uuid.UUID) ([]fr.Element, error) {
	if coeffs, ok := s.cache.Get(id); ok {
		return coeffs, nil
	}
	record, err := s.Record(id)
	if err != nil {
		return nil, err
	}
	if record.Field != s.field.Name() {
		return nil, fmt.Errorf("polynomial %s over %q: %w", id, record.Field, ErrFieldUnknown)
	}
	coeffs, err := types.SliceOfErr(record.Coefficients, s.decodeElement)
	if err != nil {
		return nil, fmt.Errorf("decode polynomial %s: %w", id, err)
	}
	s.cache.Add(id, coeffs)
	return coeffs, nil
}

// Delete removes the polynomial and its commitment.
func (s *Storage) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.polynomials.Get(id[:]); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return fmt.Errorf("polynomial %s: %w", id, ErrNotFound)
		}
		return err
	}
	tx := s.db.WriteTx()
	defer tx.Discard()
	for _, prefix := range [][]byte{polynomialPrefix, commitmentPrefix} {
		if err := tx.Delete(append(append([]byte{}, prefix...), id[:]...)); err != nil {
			return fmt.Errorf("delete polynomial %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete polynomial %s: %w", id, err)
	}
	s.cache.Remove(id)
	log.Debugw("polynomial deleted", "id", id.String())
	return nil
}

// List returns the ids of every stored polynomial, in byte order.
func (s *Storage) List() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	var parseErr error
	err := s.polynomials.Iterate(nil, func(key, _ []byte) bool {
		id, err := uuid.FromBytes(key)
		if err != nil {
			parseErr = fmt.Errorf("invalid polynomial key %x: %w", key, err)
			return false
		}
		ids = append(ids, id)
		return true
	})
	if err != nil {
		return nil, err
	}
	return ids, parseErr
}

// SetCommitment stores the commitment of the polynomial id.
func (s *Storage) SetCommitment(id uuid.UUID, commitment []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.polynomials.Get(id[:]); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return fmt.Errorf("polynomial %s: %w", id, ErrNotFound)
		}
		return err
	}
	return s.write(s.commitments, id, commitment)
}

// Commitment returns the stored commitment of the polynomial id.
func (s *Storage) Commitment(id uuid.UUID) ([]byte, error) {
	commitment, err := s.commitments.Get(id[:])
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("commitment %s: %w", id, ErrNotFound)
	}
	return commitment, err
}

func (s *Storage) write(database db.Database, id uuid.UUID, data []byte) error {
	tx := database.WriteTx()
	defer tx.Discard()
	if err := tx.Set(id[:], data); err != nil {
		return fmt.Errorf("write %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", id, err)
	}
	return nil
}

func (s *Storage) encodeElement(e fr.Element) types.HexBytes {
	return s.field.Bytes(e)
}

func (s *Storage) decodeElement(b types.HexBytes) (fr.Element, error) {
	return s.field.SetBytes(b)
}
