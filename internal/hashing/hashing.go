// Package hashing provides duplicate detection for position records.
package hashing

import (
	"github.com/cespare/xxhash/v2"

	"github.com/lgbarn/chessindex/internal/position"
)

// Fingerprint returns a 64-bit digest of the record's canonical bytes. Two
// records with the same fingerprint are almost certainly equal, but callers
// that need certainty still compare with position.Equal.
func Fingerprint(p *position.Position) uint64 {
	return xxhash.Sum64(p.Bytes())
}

// entry is one stored record and its fingerprint.
type entry struct {
	fingerprint uint64
	pos         *position.Position
}

// PositionSet tracks seen positions.
type PositionSet struct {
	// buckets groups records by their 32-bit position hash
	buckets map[uint32][]entry
	// size is the number of distinct records stored
	size int
	// maxCapacity limits distinct records (0 = unlimited)
	maxCapacity int
	// duplicateCount tracks number of duplicates found
	duplicateCount int
}

// NewPositionSet creates a new set. maxCapacity of 0 means unlimited.
func NewPositionSet(maxCapacity int) *PositionSet {
	return &PositionSet{
		buckets:     make(map[uint32][]entry),
		maxCapacity: maxCapacity,
	}
}

// CheckAndAdd reports whether p was already in the set and adds it if not.
// Once the set is full new records are checked but no longer stored.
func (s *PositionSet) CheckAndAdd(p *position.Position) (bool, error) {
	hash, err := p.Hash()
	if err != nil {
		return false, err
	}
	fp := Fingerprint(p)

	for _, e := range s.buckets[hash] {
		if e.fingerprint == fp && position.Equal(e.pos, p) {
			s.duplicateCount++
			return true, nil
		}
	}

	if s.IsFull() {
		return false, nil
	}
	s.buckets[hash] = append(s.buckets[hash], entry{fingerprint: fp, pos: p})
	s.size++
	return false, nil
}

// Contains reports whether p is in the set.
func (s *PositionSet) Contains(p *position.Position) bool {
	hash, err := p.Hash()
	if err != nil {
		return false
	}
	fp := Fingerprint(p)
	for _, e := range s.buckets[hash] {
		if e.fingerprint == fp && position.Equal(e.pos, p) {
			return true
		}
	}
	return false
}

// DuplicateCount returns the number of duplicates detected.
func (s *PositionSet) DuplicateCount() int {
	return s.duplicateCount
}

// UniqueCount returns the number of distinct records stored.
func (s *PositionSet) UniqueCount() int {
	return s.size
}

// Collisions returns the number of hash buckets holding more than one
// distinct record.
func (s *PositionSet) Collisions() int {
	n := 0
	for _, b := range s.buckets {
		if len(b) > 1 {
			n++
		}
	}
	return n
}

// IsFull returns true if the set has reached its capacity limit.
func (s *PositionSet) IsFull() bool {
	return s.maxCapacity > 0 && s.size >= s.maxCapacity
}

// Reset clears the set.
func (s *PositionSet) Reset() {
	s.buckets = make(map[uint32][]entry)
	s.size = 0
	s.duplicateCount = 0
}
