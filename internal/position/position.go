// Package position converts chess positions between FEN text and a compact
// binary record, and defines the ordering and hash used to index records.
//
// A record holds a 64-bit occupancy bitmap, the codes of the occupying
// pieces in FEN reading order (a8..h8, a7..h7, ..., a1..h1), the side to
// move, the four castling rights and, when an en passant capture is
// possible, the square of the pawn that may be captured. Occupancy bit j
// stands for square chess.ScanSquare(j), so bit 63 is a8 and bit 0 is h1.
//
// Records are immutable once built and safe to share between goroutines.
package position

import (
	"fmt"
	"math/bits"

	"github.com/lgbarn/chessindex/internal/chess"
	"github.com/lgbarn/chessindex/internal/errors"
	"github.com/lgbarn/chessindex/internal/material"
)

const (
	// MaxFEN is the longest FEN string Decode accepts.
	MaxFEN = 100

	// MaxPieces is the most pieces a record can hold.
	MaxPieces = 32
)

// Castling is a set of castling rights.
type Castling uint8

// Castling rights, in FEN output order.
const (
	WhiteKingside Castling = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastling  Castling = 0
	AllCastling          = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

var castlingLetters = [...]struct {
	right  Castling
	letter byte
}{
	{WhiteKingside, 'K'},
	{WhiteQueenside, 'Q'},
	{BlackKingside, 'k'},
	{BlackQueenside, 'q'},
}

// Has reports whether all rights in r are present.
func (c Castling) Has(r Castling) bool {
	return c&r == r
}

// String renders the rights as in FEN, "-" when there are none.
func (c Castling) String() string {
	var buf []byte
	for _, cl := range castlingLetters {
		if c.Has(cl.right) {
			buf = append(buf, cl.letter)
		}
	}
	if len(buf) == 0 {
		return "-"
	}
	return string(buf)
}

// Position is a decoded chess position record.
type Position struct {
	occupancy uint64
	count     int
	pieces    [MaxPieces]chess.Piece
	toMove    chess.Colour
	castling  Castling
	epPawn    chess.Square
	hasEP     bool

	// source is the text the record was decoded from, kept for
	// diagnostics only.
	source string
}

// Occupancy returns the occupancy bitmap.
func (p *Position) Occupancy() uint64 {
	return p.occupancy
}

// PieceCount returns the number of pieces on the board.
func (p *Position) PieceCount() int {
	return p.count
}

// Pieces returns a copy of the piece codes in FEN reading order.
func (p *Position) Pieces() []chess.Piece {
	out := make([]chess.Piece, p.count)
	copy(out, p.pieces[:p.count])
	return out
}

// SideToMove returns the side to move.
func (p *Position) SideToMove() chess.Colour {
	return p.toMove
}

// Castling returns the castling rights.
func (p *Position) Castling() Castling {
	return p.castling
}

// EnPassantPawn returns the square of the pawn that may be captured en
// passant. This is the square the pawn stands on, not the FEN target.
func (p *Position) EnPassantPawn() (chess.Square, bool) {
	return p.epPawn, p.hasEP
}

// EnPassantTarget returns the FEN en passant target square.
func (p *Position) EnPassantTarget() (chess.Square, bool) {
	if !p.hasEP {
		return 0, false
	}
	target, err := epTarget(p.epPawn)
	if err != nil {
		return 0, false
	}
	return target, true
}

// Source returns the FEN the record was decoded from, if known.
func (p *Position) Source() string {
	return p.source
}

// PieceAt returns the piece on sq.
func (p *Position) PieceAt(sq chess.Square) (chess.Piece, bool) {
	if !sq.Valid() {
		return 0, false
	}
	bit := uint(sq.Bit())
	if p.occupancy&(1<<bit) == 0 {
		return 0, false
	}
	// Pieces are stored in descending bit order.
	idx := bits.OnesCount64(p.occupancy >> (bit + 1))
	if idx >= p.count {
		return 0, false
	}
	return p.pieces[idx], true
}

// Material returns the material signature of side.
func (p *Position) Material(side chess.Colour) material.Signature {
	return material.FromPieces(p.pieces[:p.count], side)
}

// String returns the canonical FEN, or a placeholder for a corrupt record.
func (p *Position) String() string {
	fen, err := p.FEN()
	if err != nil {
		return fmt.Sprintf("<corrupt position: %v>", err)
	}
	return fen
}

// epPawnColour returns the colour a pawn must have to be capturable en
// passant on sq: white pawns on the fourth rank, black on the fifth.
func epPawnColour(sq chess.Square) (chess.Colour, bool) {
	switch sq.Rank() {
	case 3:
		return chess.White, true
	case 4:
		return chess.Black, true
	}
	return chess.White, false
}

// epTarget returns the square a pawn on sq passed over.
func epTarget(pawn chess.Square) (chess.Square, error) {
	switch pawn.Rank() {
	case 3:
		return pawn - chess.BoardSize, nil
	case 4:
		return pawn + chess.BoardSize, nil
	}
	return 0, &errors.CorruptError{Err: errors.ErrCorruptRecord, Type: "en passant square", Value: pawn.String()}
}

// validate checks the record invariants. It is used on every record read
// back from bytes.
func (p *Position) validate() error {
	corrupt := func(what, value string) error {
		return &errors.CorruptError{Err: errors.ErrCorruptRecord, Type: what, Value: value, Detail: p.source}
	}

	if p.count < 0 || p.count > MaxPieces {
		return corrupt("piece count", fmt.Sprint(p.count))
	}
	if n := bits.OnesCount64(p.occupancy); n != p.count {
		return corrupt("occupancy", fmt.Sprintf("%d squares for %d pieces", n, p.count))
	}
	for i := 0; i < p.count; i++ {
		if !p.pieces[i].Valid() {
			return &errors.CorruptError{Err: errors.ErrCorruptPiece, Type: "piece", Value: fmt.Sprintf("%#x", uint8(p.pieces[i])), Detail: p.source}
		}
	}
	if !p.toMove.Valid() {
		return &errors.CorruptError{Err: errors.ErrCorruptSide, Type: "side", Value: fmt.Sprint(int(p.toMove)), Detail: p.source}
	}
	if p.castling&^AllCastling != 0 {
		return corrupt("castling", fmt.Sprintf("%#x", uint8(p.castling)))
	}
	if p.hasEP {
		if !p.epPawn.Valid() {
			return &errors.CorruptError{Err: errors.ErrCorruptSquare, Type: "square", Value: fmt.Sprint(int(p.epPawn)), Detail: p.source}
		}
		colour, ok := epPawnColour(p.epPawn)
		if !ok {
			return corrupt("en passant square", p.epPawn.String())
		}
		if piece, found := p.PieceAt(p.epPawn); !found || piece != chess.MakePiece(colour, chess.Pawn) {
			return corrupt("en passant square", p.epPawn.String())
		}
	}
	return nil
}
