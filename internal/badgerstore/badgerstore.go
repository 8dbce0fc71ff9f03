// Package badgerstore implements the embedded key-value document backend.
// Each document is stored under "doc:<name>" as a CBOR array of byte
// strings, one per line, so lines keep their exact bytes.
package badgerstore

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/mesh-intelligence/objcat/pkg/types"
)

// DirName is the badger directory created inside the data directory.
const DirName = "badger"

const keyPrefix = "doc:"

// encMode uses Core Deterministic Encoding so equal documents encode to
// equal values.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("badgerstore: CBOR encoder initialization failed: " + err.Error())
	}
}

func encodeLines(lines []string) ([]byte, error) {
	raw := make([][]byte, len(lines))
	for i, l := range lines {
		raw[i] = []byte(l)
	}
	return encMode.Marshal(raw)
}

func decodeLines(val []byte) ([]string, error) {
	var raw [][]byte
	if err := cbor.Unmarshal(val, &raw); err != nil {
		return nil, err
	}
	lines := make([]string, len(raw))
	for i, b := range raw {
		lines[i] = string(b)
	}
	return lines, nil
}

// Store implements types.Store on a badger database.
type Store struct {
	mu     sync.RWMutex
	db     *badger.DB
	closed bool
}

var (
	_ types.Store  = (*Store)(nil)
	_ types.Lister = (*Store)(nil)
)

// Open opens (creating if needed) a badger database in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts)
}

// OpenInMemory opens a badger database that is never written to disk.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Store, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Store{db: db}, nil
}

func docKey(name string) []byte {
	return []byte(keyPrefix + name)
}

// ReadLines returns the lines of the named document.
func (s *Store) ReadLines(name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrStoreClosed
	}
	if name == "" {
		return nil, fmt.Errorf("document name: %w", types.ErrInvalidName)
	}

	var lines []string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			lines, err = decodeLines(val)
			return err
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("reading %s: %w", name, types.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return lines, nil
}

// WriteLines replaces the named document with lines.
func (s *Store) WriteLines(name string, lines []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	if name == "" {
		return fmt.Errorf("document name: %w", types.ErrInvalidName)
	}
	val, err := encodeLines(lines)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(name), val)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Names returns the stored document names in sorted order.
func (s *Store) Names() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrStoreClosed
	}

	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), keyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the database. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
