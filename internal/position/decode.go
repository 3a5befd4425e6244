package position

import (
	"github.com/lgbarn/chessindex/internal/chess"
	"github.com/lgbarn/chessindex/internal/errors"
)

// phase is a step of the FEN decoder. Phases run strictly in order.
type phase int

const (
	phaseBoard phase = iota
	phaseSide
	phaseCastling
	phaseEnPassant
	phaseTrailing
	phaseDone
)

// maxTrailingFields is the number of move counter fields after en passant.
const maxTrailingFields = 2

// decoder walks a FEN string once, left to right.
type decoder struct {
	fen string
	pos int
	p   *Position
}

// Decode parses a FEN string into a record. The halfmove clock and
// fullmove number may be present but are not stored. On failure no record
// is returned and the error is a *errors.FENError wrapping one of the
// tagged FEN errors.
func Decode(fen string) (*Position, error) {
	if len(fen) > MaxFEN {
		return nil, &errors.FENError{Err: errors.ErrFENTooLong, FEN: fen, Offset: MaxFEN, Got: fen[MaxFEN:]}
	}

	d := &decoder{fen: fen, p: &Position{source: fen}}
	for ph := phaseBoard; ph != phaseDone; {
		var err error
		if ph, err = d.step(ph); err != nil {
			return nil, err
		}
	}
	return d.p, nil
}

// MustDecode is like Decode but panics on error. It is meant for
// positions known to be valid, such as constants.
func MustDecode(fen string) *Position {
	p, err := Decode(fen)
	if err != nil {
		panic(err)
	}
	return p
}

func (d *decoder) step(ph phase) (phase, error) {
	switch ph {
	case phaseBoard:
		return phaseSide, d.board()
	case phaseSide:
		return phaseCastling, d.side()
	case phaseCastling:
		return phaseEnPassant, d.castling()
	case phaseEnPassant:
		return phaseTrailing, d.enPassant()
	case phaseTrailing:
		return phaseDone, d.trailing()
	}
	return phaseDone, nil
}

func (d *decoder) fail(err error, offset int, got string) error {
	return &errors.FENError{Err: err, FEN: d.fen, Offset: offset, Got: got}
}

// field returns the next space-separated field and its offset.
func (d *decoder) field() (int, string, bool) {
	for d.pos < len(d.fen) && d.fen[d.pos] == ' ' {
		d.pos++
	}
	start := d.pos
	for d.pos < len(d.fen) && d.fen[d.pos] != ' ' {
		d.pos++
	}
	return start, d.fen[start:d.pos], d.pos > start
}

// board consumes the piece placement field. Squares are counted down from
// 64 so that the remaining count is the occupancy bit of the next square.
func (d *decoder) board() error {
	start, text, ok := d.field()
	if !ok {
		return d.fail(errors.ErrBoardTooShort, start, "")
	}

	remaining := chess.NumSquares
	file := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '/':
			if remaining == 0 {
				return d.fail(errors.ErrBoardTooLong, start+i, text[i:])
			}
			if file < chess.BoardSize {
				return d.fail(errors.ErrBoardTooShort, start+i, text[:i+1])
			}
			file = 0
		case c >= '1' && c <= '8':
			n := int(c - '0')
			if file+n > chess.BoardSize {
				return d.fail(errors.ErrBoardTooLong, start+i, text[:i+1])
			}
			file += n
			remaining -= n
		default:
			piece, ok := chess.PieceFromLetter(c)
			if !ok {
				return d.fail(errors.ErrMalformedBoard, start+i, string(c))
			}
			if file >= chess.BoardSize {
				return d.fail(errors.ErrBoardTooLong, start+i, text[:i+1])
			}
			if d.p.count == MaxPieces {
				return d.fail(errors.ErrTooManyPieces, start+i, string(c))
			}
			remaining--
			d.p.occupancy |= 1 << uint(remaining)
			d.p.pieces[d.p.count] = piece
			d.p.count++
			file++
		}
	}

	if remaining != 0 || file != chess.BoardSize {
		return d.fail(errors.ErrBoardTooShort, start, text)
	}
	return nil
}

func (d *decoder) side() error {
	start, text, ok := d.field()
	if !ok {
		return d.fail(errors.ErrTruncatedFEN, start, "")
	}
	switch text {
	case "w":
		d.p.toMove = chess.White
	case "b":
		d.p.toMove = chess.Black
	default:
		return d.fail(errors.ErrBadSideToMove, start, text)
	}
	return nil
}

func (d *decoder) castling() error {
	start, text, ok := d.field()
	if !ok {
		return d.fail(errors.ErrTruncatedFEN, start, "")
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case 'K':
			d.p.castling |= WhiteKingside
		case 'Q':
			d.p.castling |= WhiteQueenside
		case 'k':
			d.p.castling |= BlackKingside
		case 'q':
			d.p.castling |= BlackQueenside
		case '-':
		default:
			return d.fail(errors.ErrBadCastling, start+i, text[i:i+1])
		}
	}
	return nil
}

// enPassant reads the capture target square and stores the square of the
// pawn that made the double step instead: one rank above a rank-3 target
// (a white pawn) or one rank below a rank-6 target (a black pawn).
func (d *decoder) enPassant() error {
	start, text, ok := d.field()
	if !ok {
		return d.fail(errors.ErrTruncatedFEN, start, "")
	}
	if text == "-" {
		return nil
	}
	if len(text) != 2 {
		return d.fail(errors.ErrInvalidCoordinate, start, text)
	}

	var pawn chess.Square
	var colour chess.Colour
	switch text[1] {
	case '3':
		pawn, colour = chess.BoardSize, chess.White
	case '6':
		pawn, colour = -chess.BoardSize, chess.Black
	default:
		return d.fail(errors.ErrBadEnPassantRank, start+1, text[1:])
	}

	target, err := chess.SquareFromCoords(text[0], text[1])
	if err != nil {
		return d.fail(errors.ErrInvalidCoordinate, start, text)
	}
	pawn += target

	if piece, found := d.p.PieceAt(pawn); !found || piece != chess.MakePiece(colour, chess.Pawn) {
		return d.fail(errors.ErrEnPassantPawnNotFound, start, text)
	}
	d.p.epPawn = pawn
	d.p.hasEP = true
	return nil
}

// trailing accepts the halfmove clock and fullmove number without storing
// them.
func (d *decoder) trailing() error {
	for n := 0; ; n++ {
		start, text, ok := d.field()
		if !ok {
			return nil
		}
		if n == maxTrailingFields {
			return d.fail(errors.ErrBadTrailingField, start, text)
		}
		for i := 0; i < len(text); i++ {
			if text[i] < '0' || text[i] > '9' {
				return d.fail(errors.ErrBadTrailingField, start+i, text)
			}
		}
	}
}
