// ABOUTME: In-memory badger database holding the five dashboard collections.
// ABOUTME: Nothing is written to disk; all records are lost when the store closes.
package storage

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"
	"github.com/sirupsen/logrus"
)

// Store is the entity store. Every mutation runs in a single badger
// transaction, so dependent collections change together or not at all.
// Mutations are also serialized: badger only detects conflicts on keys a
// transaction read, and the integrity checks scan whole collections.
type Store struct {
	db  *badger.DB
	log *logrus.Entry
	seq atomic.Uint64
	mu  sync.Mutex // held for the whole of every update transaction
}

// Compile-time check that Store implements Repository.
var _ Repository = (*Store)(nil)

// Open creates an empty in-memory store. A nil logger discards badger's logs.
func Open(log *logrus.Entry) (*Store, error) {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}

	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithMemTableSize(8 << 20).
		WithLogger(log.WithField("component", "badger"))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Close releases the database. All records are discarded.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// update runs fn in a read-write transaction while holding the write lock.
func (s *Store) update(fn func(txn *badger.Txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Update(fn)
}

// nextSeq returns the insertion sequence number for a new record.
func (s *Store) nextSeq() uint64 {
	return s.seq.Add(1)
}
