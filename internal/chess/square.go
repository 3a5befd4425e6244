package chess

import (
	"fmt"

	"github.com/lgbarn/chessindex/internal/errors"
)

// Square is a board coordinate, file + 8*rank, with a1 = 0 and h8 = 63.
type Square int8

// Constants for board dimensions and coordinates.
const (
	BoardSize  = 8
	NumSquares = BoardSize * BoardSize

	RankBase = '1'
	FileBase = 'a'
	LastRank = RankBase + BoardSize - 1
	LastFile = FileBase + BoardSize - 1
)

// Named squares used by tests and callers.
const (
	A1 Square = 0
	H1 Square = 7
	A8 Square = 56
	H8 Square = 63
)

// ParseSquare converts two-character text such as "e4" to a square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return 0, &errors.InputError{Err: errors.ErrInvalidCoordinate, Type: "square", Input: s}
	}
	return SquareFromCoords(s[0], s[1])
}

// SquareFromCoords converts a file letter and rank digit to a square.
func SquareFromCoords(file, rank byte) (Square, error) {
	if file < FileBase || file > LastFile || rank < RankBase || rank > LastRank {
		return 0, &errors.InputError{Err: errors.ErrInvalidCoordinate, Type: "square", Input: string([]byte{file, rank})}
	}
	return Square(file-FileBase) + BoardSize*Square(rank-RankBase), nil
}

// SquareFromInt converts an integer in 0..63 to a square.
func SquareFromInt(n int) (Square, error) {
	if n < 0 || n >= NumSquares {
		return 0, &errors.InputError{Err: errors.ErrInvalidCoordinate, Type: "square", Input: fmt.Sprint(n)}
	}
	return Square(n), nil
}

// Valid reports whether s is on the board.
func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// Int returns the square number.
func (s Square) Int() int {
	return int(s)
}

// File returns the file index, 0 for the a-file.
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the rank index, 0 for the first rank.
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// Diagonal numbers the diagonals parallel to a1-h8: a1-h8 itself is 0,
// diagonals towards a8 are negative and towards h1 positive.
func (s Square) Diagonal() int {
	return s.File() - s.Rank()
}

// AntiDiagonal numbers the diagonals parallel to a8-h1: a8-h1 itself is 0,
// a1 is -7 and h8 is 7.
func (s Square) AntiDiagonal() int {
	return s.File() + s.Rank() - (BoardSize - 1)
}

// Text returns the coordinate text of s, rejecting off-board values.
func (s Square) Text() (string, error) {
	if !s.Valid() {
		return "", &errors.CorruptError{Err: errors.ErrCorruptSquare, Type: "square", Value: fmt.Sprint(int(s))}
	}
	return string([]byte{byte(FileBase + s.File()), byte(RankBase + s.Rank())}), nil
}

// String implements fmt.Stringer.
func (s Square) String() string {
	text, err := s.Text()
	if err != nil {
		return fmt.Sprintf("Square(%d)", int(s))
	}
	return text
}

// ScanSquare maps an occupancy bit to the square it stands for. Bit 63 is
// a8 and bits descend through each rank towards h1, so walking bits 63..0
// visits squares in FEN reading order.
func ScanSquare(bit int) Square {
	return Square(BoardSize*(bit/BoardSize) + BoardSize - 1 - bit%BoardSize)
}

// Bit returns the occupancy bit of s. The scan transform is its own inverse.
func (s Square) Bit() int {
	return int(ScanSquare(int(s)))
}
