package output

import (
	"fmt"

	"github.com/lgbarn/chessindex/internal/chess"
	"github.com/lgbarn/chessindex/internal/position"
)

// JSONPosition represents a position record in JSON format.
type JSONPosition struct {
	FEN       string       `json:"fen"`
	Pieces    int          `json:"pieces"`
	Occupancy string       `json:"occupancy"`
	ToMove    string       `json:"toMove"` // "w" or "b"
	Castling  string       `json:"castling"`
	EnPassant string       `json:"enPassant,omitempty"`
	Hash      uint32       `json:"hash"`
	Material  JSONMaterial `json:"material"`
	Record    string       `json:"record"`

	Line      int    `json:"line,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
	Count     uint64 `json:"count,omitempty"`
}

// JSONMaterial holds the material signature of each side.
type JSONMaterial struct {
	White string `json:"white"`
	Black string `json:"black"`
}

// JSONOutput holds multiple positions for array output.
type JSONOutput struct {
	Positions []*JSONPosition `json:"positions"`
}

// PositionToJSON converts a record to its JSON representation.
func PositionToJSON(p *position.Position, note Annotations) (*JSONPosition, error) {
	fen, err := p.FEN()
	if err != nil {
		return nil, err
	}
	hash, err := p.Hash()
	if err != nil {
		return nil, err
	}

	jp := &JSONPosition{
		FEN:       fen,
		Pieces:    p.PieceCount(),
		Occupancy: fmt.Sprintf("%016x", p.Occupancy()),
		ToMove:    string(p.SideToMove().Letter()),
		Castling:  p.Castling().String(),
		Hash:      hash,
		Material: JSONMaterial{
			White: p.Material(chess.White).String(),
			Black: p.Material(chess.Black).String(),
		},
		Record:    fmt.Sprintf("%x", p.Bytes()),
		Line:      note.Line,
		Duplicate: note.Duplicate,
		Count:     note.Count,
	}
	if target, ok := p.EnPassantTarget(); ok {
		jp.EnPassant = target.String()
	}
	return jp, nil
}
