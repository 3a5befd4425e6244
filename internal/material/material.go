// Package material encodes the non-king material of one side as a 15-bit
// signature. Each bit is a slot in the fixed order Q, R R, B B, N N,
// P P P P P P P P; a kind with n pieces fills its first n slots, so the
// signature records how many pieces of each kind remain, never which.
package material

import (
	"fmt"

	"github.com/lgbarn/chessindex/internal/chess"
	"github.com/lgbarn/chessindex/internal/errors"
)

// NumSlots is the number of slots in a signature.
const NumSlots = 15

// Signature is a material signature. Slot 0 is bit 14.
type Signature uint16

// Mask covers the meaningful bits of a signature.
const Mask Signature = 1<<NumSlots - 1

type slotRange struct {
	kind  chess.Kind
	first int
	count int
}

// slots lists the kinds most valuable first.
var slots = [...]slotRange{
	{chess.Queen, 0, 1},
	{chess.Rook, 1, 2},
	{chess.Bishop, 3, 2},
	{chess.Knight, 5, 2},
	{chess.Pawn, 7, 8},
}

func slotBit(slot int) Signature {
	return 1 << (NumSlots - 1 - slot)
}

// FromCounts builds a signature from per-kind piece counts. Counts above
// the slots available for a kind are capped.
func FromCounts(counts map[chess.Kind]int) Signature {
	var sig Signature
	for _, r := range slots {
		n := counts[r.kind]
		if n > r.count {
			n = r.count
		}
		for i := 0; i < n; i++ {
			sig |= slotBit(r.first + i)
		}
	}
	return sig
}

// FromPieces builds the signature of side from a full piece list. Pieces
// of the other colour and kings are ignored.
func FromPieces(pieces []chess.Piece, side chess.Colour) Signature {
	counts := make(map[chess.Kind]int, len(slots))
	for _, p := range pieces {
		if p.Colour() != side || p.Kind() == chess.King {
			continue
		}
		counts[p.Kind()]++
	}
	return FromCounts(counts)
}

// Count returns how many slots of kind are filled.
func (s Signature) Count(kind chess.Kind) int {
	n := 0
	for _, r := range slots {
		if r.kind != kind {
			continue
		}
		for i := 0; i < r.count; i++ {
			if s&slotBit(r.first+i) != 0 {
				n++
			}
		}
	}
	return n
}

// Validate checks that only the 15 slot bits are set and that every kind
// fills its slots from the front.
func (s Signature) Validate() error {
	if s&^Mask != 0 {
		return &errors.CorruptError{Err: errors.ErrBadMaterialSignature, Type: "pindex", Value: fmt.Sprintf("%#x", uint16(s))}
	}
	for _, r := range slots {
		gap := false
		for i := 0; i < r.count; i++ {
			filled := s&slotBit(r.first+i) != 0
			if filled && gap {
				return &errors.CorruptError{Err: errors.ErrBadMaterialSignature, Type: "pindex", Value: fmt.Sprintf("%#x", uint16(s))}
			}
			gap = gap || !filled
		}
	}
	return nil
}

// String renders the signature as 15 characters, '.' for an empty slot
// and the uppercase kind letter for a filled one.
func (s Signature) String() string {
	var buf [NumSlots]byte
	for _, r := range slots {
		for i := 0; i < r.count; i++ {
			slot := r.first + i
			if s&slotBit(slot) != 0 {
				buf[slot] = r.kind.Letter()
			} else {
				buf[slot] = '.'
			}
		}
	}
	return string(buf[:])
}

// Parse reverses String. Kind letters may be either case.
func Parse(text string) (Signature, error) {
	bad := func() (Signature, error) {
		return 0, &errors.InputError{Err: errors.ErrBadMaterialSignature, Type: "pindex", Input: text}
	}
	if len(text) != NumSlots {
		return bad()
	}

	var sig Signature
	for _, r := range slots {
		for i := 0; i < r.count; i++ {
			slot := r.first + i
			c := text[slot]
			switch {
			case c == '.':
			case chess.KindFromLetter(c) == r.kind:
				sig |= slotBit(slot)
			default:
				return bad()
			}
		}
	}
	if sig.Validate() != nil {
		return bad()
	}
	return sig, nil
}
