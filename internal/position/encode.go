package position

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chessindex/internal/chess"
	"github.com/lgbarn/chessindex/internal/errors"
)

// FEN renders the record as FEN text without move counters. Castling
// letters always appear in KQkq order. An error is returned only for a
// record whose invariants do not hold.
func (p *Position) FEN() (string, error) {
	var sb strings.Builder
	sb.Grow(MaxFEN)

	if err := p.writeBoard(&sb); err != nil {
		return "", err
	}
	sb.WriteByte(' ')
	if !p.toMove.Valid() {
		return "", &errors.CorruptError{Err: errors.ErrCorruptSide, Type: "side", Value: fmt.Sprint(int(p.toMove)), Detail: p.source}
	}
	sb.WriteByte(p.toMove.Letter())
	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())
	sb.WriteByte(' ')
	if err := p.writeEnPassant(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Encode is the function form of FEN.
func Encode(p *Position) (string, error) {
	return p.FEN()
}

// writeBoard walks occupancy bits 63..0, which is FEN reading order, and
// takes the next stored piece for every occupied square.
func (p *Position) writeBoard(sb *strings.Builder) error {
	corrupt := func(format string, args ...interface{}) error {
		return &errors.CorruptError{Err: errors.ErrCorruptRecord, Type: "position", Value: fmt.Sprintf(format, args...), Detail: p.source}
	}
	if p.count < 0 || p.count > MaxPieces {
		return corrupt("piece count %d", p.count)
	}

	cursor, empty, visited := 0, 0, 0
	for bit := chess.NumSquares - 1; bit >= 0; bit-- {
		visited++
		if p.occupancy&(1<<uint(bit)) == 0 {
			empty++
		} else {
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			if cursor >= p.count {
				return corrupt("occupied square %s beyond %d pieces", chess.ScanSquare(bit), p.count)
			}
			piece := p.pieces[cursor]
			if !piece.Valid() {
				return &errors.CorruptError{Err: errors.ErrCorruptPiece, Type: "piece", Value: fmt.Sprintf("%#x", uint8(piece)), Detail: p.source}
			}
			sb.WriteByte(piece.Letter())
			cursor++
		}

		if bit%chess.BoardSize == 0 {
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			if bit > 0 {
				sb.WriteByte('/')
			}
		}
	}

	if cursor != p.count || visited != chess.NumSquares {
		return corrupt("%d pieces placed, %d stored", cursor, p.count)
	}
	return nil
}

func (p *Position) writeEnPassant(sb *strings.Builder) error {
	if !p.hasEP {
		sb.WriteByte('-')
		return nil
	}
	target, err := epTarget(p.epPawn)
	if err != nil {
		return err
	}
	text, err := target.Text()
	if err != nil {
		return err
	}
	sb.WriteString(text)
	return nil
}
