// ABOUTME: Key-value helpers shared by all collections: keys, encoding, prefix lookups.
// ABOUTME: Records live under "<kind>:<id>" keys with an insertion sequence envelope.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/harperreed/bbg/internal/models"
)

var (
	// ErrNotFound means no record matched the id or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous means an id prefix matched more than one record.
	ErrAmbiguous = errors.New("ambiguous id prefix")
	// ErrDuplicateID means a record with the same id already exists.
	ErrDuplicateID = errors.New("duplicate id")
)

// envelope wraps a stored record with its insertion order.
type envelope struct {
	Seq  uint64          `json:"seq"`
	Data json.RawMessage `json:"data"`
}

func kindPrefix(kind models.Kind) []byte {
	return []byte(string(kind) + ":")
}

func recordKey(kind models.Kind, id string) []byte {
	return append(kindPrefix(kind), id...)
}

// newID generates an id at the store boundary, e.g. "m-1b4e28ba-2fa1-...".
func newID(kind models.Kind) string {
	return kind.IDPrefix() + "-" + uuid.NewString()
}

// put stores v under kind/id. It fails if the id is already taken.
func (s *Store) put(txn *badger.Txn, kind models.Kind, id string, v any) error {
	key := recordKey(kind, id)
	if _, err := txn.Get(key); err == nil {
		return fmt.Errorf("%s %s: %w", kind, id, ErrDuplicateID)
	} else if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", kind, err)
	}
	env, err := json.Marshal(envelope{Seq: s.nextSeq(), Data: data})
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", kind, err)
	}
	return txn.Set(key, env)
}

// resolveKey finds the key for an id or unique id prefix. An exact id match
// wins over longer ids sharing the prefix.
func resolveKey(txn *badger.Txn, kind models.Kind, idOrPrefix string) ([]byte, error) {
	if idOrPrefix == "" {
		return nil, fmt.Errorf("%s: empty id: %w", kind, ErrNotFound)
	}

	exact := recordKey(kind, idOrPrefix)
	if _, err := txn.Get(exact); err == nil {
		return exact, nil
	} else if !errors.Is(err, badger.ErrKeyNotFound) {
		return nil, err
	}

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	var match []byte
	for it.Seek(exact); it.ValidForPrefix(exact); it.Next() {
		if match != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, idOrPrefix, ErrAmbiguous)
		}
		match = it.Item().KeyCopy(nil)
	}
	if match == nil {
		return nil, fmt.Errorf("%s %s: %w", kind, idOrPrefix, ErrNotFound)
	}
	return match, nil
}

// getRecord loads and decodes the record stored under key.
func getRecord[T any](txn *badger.Txn, key []byte) (*T, error) {
	item, err := txn.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	raw, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[T](raw)
}

func decodeEnvelope[T any](raw []byte) (*T, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	var v T
	if err := json.Unmarshal(env.Data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &v, nil
}

// lookup resolves an id or prefix and decodes the record.
func lookup[T any](txn *badger.Txn, kind models.Kind, idOrPrefix string) (*T, []byte, error) {
	key, err := resolveKey(txn, kind, idOrPrefix)
	if err != nil {
		return nil, nil, err
	}
	v, err := getRecord[T](txn, key)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", kind, idOrPrefix, err)
	}
	return v, key, nil
}

// listKind returns every record of a kind in insertion order.
func listKind[T any](txn *badger.Txn, kind models.Kind) ([]T, error) {
	prefix := kindPrefix(kind)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	type seqRecord struct {
		seq uint64
		v   T
	}
	var rows []seqRecord
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		raw, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", kind, err)
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("unmarshal %s envelope: %w", kind, err)
		}
		var v T
		if err := json.Unmarshal(env.Data, &v); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", kind, err)
		}
		rows = append(rows, seqRecord{seq: env.Seq, v: v})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.v)
	}
	return out, nil
}

// exists reports whether a record with exactly this id is stored.
func exists(txn *badger.Txn, kind models.Kind, id string) (bool, error) {
	_, err := txn.Get(recordKey(kind, id))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return false, err
}
