// Package index stores position records in a pebble database ordered by
// the record ordering, so records with the same piece count are adjacent
// and can be scanned as a range.
package index

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/lgbarn/chessindex/internal/config"
	"github.com/lgbarn/chessindex/internal/errors"
	"github.com/lgbarn/chessindex/internal/position"
)

// ComparerName identifies the key ordering on disk. A database created
// with one comparer cannot be reopened with another.
const ComparerName = "chessindex.position.v1"

// Comparer orders keys with position.CompareBytes. Records begin with their
// piece count, so this agrees with bytewise order and the default key
// separator and successor functions stay valid.
var Comparer = func() *pebble.Comparer {
	c := *pebble.DefaultComparer
	c.Compare = position.CompareBytes
	c.Equal = bytes.Equal
	c.Name = ComparerName
	return &c
}()

// Entry is one stored position.
type Entry struct {
	Position *position.Position
	// Count is how many times the position was added
	Count uint64
	// FirstSeen is the FEN text of the first add
	FirstSeen string
}

// Index is an ordered set of positions with occurrence counts.
type Index struct {
	db *pebble.DB
	mu sync.Mutex // serializes read-modify-write in Add
}

// Open opens or creates the index described by cfg.
func Open(cfg *config.IndexConfig) (*Index, error) {
	opts := &pebble.Options{Comparer: Comparer}
	dir := cfg.Dir
	if cfg.InMemory {
		opts.FS = vfs.NewMem()
		dir = ""
	}
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "opening index %q", cfg.Dir)
	}
	return &Index{db: db}, nil
}

// Add stores p, or bumps its count if an equal record is present, and
// returns the new count.
func (ix *Index) Add(p *position.Position) (uint64, error) {
	key, err := p.MarshalBinary()
	if err != nil {
		return 0, err
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	count, first := uint64(0), p.Source()
	if value, closer, err := ix.db.Get(key); err == nil {
		count, first, err = decodeValue(value)
		closer.Close()
		if err != nil {
			return 0, err
		}
	} else if err != pebble.ErrNotFound {
		return 0, errors.Wrap(err, "reading index")
	}

	count++
	if err := ix.db.Set(key, encodeValue(count, first), pebble.Sync); err != nil {
		return 0, errors.Wrap(err, "writing index")
	}
	return count, nil
}

// Get returns the entry for p.
func (ix *Index) Get(p *position.Position) (Entry, bool, error) {
	key, err := p.MarshalBinary()
	if err != nil {
		return Entry{}, false, err
	}
	value, closer, err := ix.db.Get(key)
	if err == pebble.ErrNotFound {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, errors.Wrap(err, "reading index")
	}
	defer closer.Close()

	count, first, err := decodeValue(value)
	if err != nil {
		return Entry{}, false, err
	}
	return Entry{Position: p, Count: count, FirstSeen: first}, true, nil
}

// Range calls fn for every entry in record order until fn returns an error.
func (ix *Index) Range(fn func(Entry) error) error {
	return ix.scan(nil, nil, fn)
}

// RangePieces calls fn for the entries with exactly n pieces, in record
// order.
func (ix *Index) RangePieces(n int, fn func(Entry) error) error {
	if n < 0 || n > position.MaxPieces {
		return fmt.Errorf("piece count %d out of range 0..%d", n, position.MaxPieces)
	}
	return ix.scan([]byte{byte(n)}, []byte{byte(n + 1)}, fn)
}

// Len returns the number of distinct positions.
func (ix *Index) Len() (int, error) {
	n := 0
	err := ix.Range(func(Entry) error {
		n++
		return nil
	})
	return n, err
}

// Close closes the database.
func (ix *Index) Close() error {
	return ix.db.Close()
}

func (ix *Index) scan(lower, upper []byte, fn func(Entry) error) error {
	iter, err := ix.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return errors.Wrap(err, "scanning index")
	}

	for iter.First(); iter.Valid(); iter.Next() {
		p, err := position.FromBytes(iter.Key())
		if err != nil {
			iter.Close()
			return err
		}
		count, first, err := decodeValue(iter.Value())
		if err != nil {
			iter.Close()
			return err
		}
		if err := fn(Entry{Position: p, Count: count, FirstSeen: first}); err != nil {
			iter.Close()
			return err
		}
	}
	if err := iter.Error(); err != nil {
		iter.Close()
		return errors.Wrap(err, "scanning index")
	}
	return iter.Close()
}

// A value is the uvarint occurrence count followed by the first FEN seen.
func encodeValue(count uint64, first string) []byte {
	buf := binary.AppendUvarint(make([]byte, 0, binary.MaxVarintLen64+len(first)), count)
	return append(buf, first...)
}

func decodeValue(value []byte) (uint64, string, error) {
	count, n := binary.Uvarint(value)
	if n <= 0 {
		return 0, "", &errors.CorruptError{Err: errors.ErrCorruptRecord, Type: "index value", Value: fmt.Sprintf("%x", value)}
	}
	return count, string(value[n:]), nil
}
