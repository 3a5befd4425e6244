// Package chess provides the single-value codecs of chessindex: colours,
// piece codes and board coordinates.
package chess

import (
	"fmt"

	"github.com/lgbarn/chessindex/internal/errors"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// ParseColour converts a side token to a colour. Both the FEN letters and
// the long names are accepted.
func ParseColour(s string) (Colour, error) {
	switch s {
	case "w", "white", "WHITE":
		return White, nil
	case "b", "black", "BLACK":
		return Black, nil
	}
	return White, &errors.InputError{Err: errors.ErrInvalidSide, Type: "side", Input: s}
}

// String returns the string representation of a colour.
func (c Colour) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return fmt.Sprintf("Colour(%d)", int(c))
}

// Letter returns the FEN letter of a colour.
func (c Colour) Letter() byte {
	if c == Black {
		return 'b'
	}
	return 'w'
}

// Valid reports whether c is White or Black.
func (c Colour) Valid() bool {
	return c == White || c == Black
}

// Not returns the opposite colour. Anything other than White or Black can
// only come from corrupt stored data.
func (c Colour) Not() (Colour, error) {
	switch c {
	case White:
		return Black, nil
	case Black:
		return White, nil
	}
	return c, &errors.CorruptError{Err: errors.ErrCorruptSide, Type: "side", Value: fmt.Sprint(int(c))}
}

// Kind is an uncoloured piece type.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
	NumKinds
)

var kindLetters = [NumKinds]byte{'?', 'P', 'N', 'B', 'R', 'Q', 'K'}

// String returns the name of a kind.
func (k Kind) String() string {
	names := []string{"None", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the uppercase letter of a kind.
func (k Kind) Letter() byte {
	if k < NumKinds {
		return kindLetters[k]
	}
	return '?'
}

// KindFromLetter converts a letter of either case to a kind.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoKind
}

// Piece is a 4-bit coloured piece code. The low three bits hold the kind
// and bit 3 is set for black pieces. Codes 0, 7, 8 and 15 are invalid.
type Piece uint8

// ColourShift is the bit position of the colour flag in a Piece.
const ColourShift = 3

// Coloured pieces, in the order of their codes.
const (
	WhitePawn   = Piece(Pawn)
	WhiteKnight = Piece(Knight)
	WhiteBishop = Piece(Bishop)
	WhiteRook   = Piece(Rook)
	WhiteQueen  = Piece(Queen)
	WhiteKing   = Piece(King)
	BlackPawn   = Piece(Pawn) | 1<<ColourShift
	BlackKnight = Piece(Knight) | 1<<ColourShift
	BlackBishop = Piece(Bishop) | 1<<ColourShift
	BlackRook   = Piece(Rook) | 1<<ColourShift
	BlackQueen  = Piece(Queen) | 1<<ColourShift
	BlackKing   = Piece(King) | 1<<ColourShift
)

// MakePiece creates a coloured piece code.
func MakePiece(colour Colour, kind Kind) Piece {
	return Piece(kind) | Piece(colour)<<ColourShift
}

// ParsePiece converts single-character text to a piece code.
func ParsePiece(s string) (Piece, error) {
	if len(s) == 1 {
		if p, ok := PieceFromLetter(s[0]); ok {
			return p, nil
		}
	}
	return 0, &errors.InputError{Err: errors.ErrInvalidPiece, Type: "piece", Input: s}
}

// PieceFromLetter converts a FEN letter to a piece code.
func PieceFromLetter(c byte) (Piece, bool) {
	kind := KindFromLetter(c)
	if kind == NoKind {
		return 0, false
	}
	colour := White
	if c >= 'a' {
		colour = Black
	}
	return MakePiece(colour, kind), true
}

// Valid reports whether p is one of the twelve piece codes.
func (p Piece) Valid() bool {
	if p > 0xF {
		return false
	}
	k := p.Kind()
	return k >= Pawn && k <= King
}

// Kind extracts the piece kind.
func (p Piece) Kind() Kind {
	return Kind(p & 0x7)
}

// Colour extracts the piece colour.
func (p Piece) Colour() Colour {
	return Colour(p >> ColourShift & 1)
}

// Letter returns the FEN letter for a valid piece, uppercase for white.
func (p Piece) Letter() byte {
	letter := p.Kind().Letter()
	if p.Colour() == Black && letter != '?' {
		letter += 'a' - 'A'
	}
	return letter
}

// Text returns the FEN letter of p as a string, rejecting invalid codes.
func (p Piece) Text() (string, error) {
	if !p.Valid() {
		return "", &errors.CorruptError{Err: errors.ErrCorruptPiece, Type: "piece", Value: fmt.Sprintf("%#x", uint8(p))}
	}
	return string(p.Letter()), nil
}

// String implements fmt.Stringer.
func (p Piece) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Piece(%#x)", uint8(p))
	}
	return string(p.Letter())
}
