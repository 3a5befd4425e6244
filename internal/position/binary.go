package position

import (
	"encoding/binary"
	"fmt"

	"github.com/lgbarn/chessindex/internal/chess"
	"github.com/lgbarn/chessindex/internal/errors"
)

// Record layout:
//
//	[count(1)][occupancy(8, big-endian)][flags(1)][ep square(1)][pieces(ceil(count/2))]
//
// Pieces are packed two per byte, high nibble first; an odd count leaves a
// zero low nibble in the last byte. The piece count leads so that
// comparing encoded records bytewise orders them by piece count first.
const (
	offCount     = 0
	offOccupancy = 1
	offFlags     = 9
	offEnPassant = 10
	headerSize   = 11
)

// Flag bits.
const (
	flagBlackToMove = 1 << 0
	flagCastleShift = 1
	flagEnPassant   = 1 << 5
	flagReserved    = 0xC0
)

// MaxRecordSize is the size of a record holding MaxPieces pieces.
const MaxRecordSize = headerSize + MaxPieces/2

// RecordSize returns the encoded size of a record with n pieces.
func RecordSize(n int) int {
	return headerSize + (n+1)/2
}

// Size returns the encoded size of p.
func (p *Position) Size() int {
	return RecordSize(p.count)
}

// Bytes returns the encoded record.
func (p *Position) Bytes() []byte {
	return p.AppendBinary(make([]byte, 0, p.Size()))
}

// AppendBinary appends the encoded record to buf.
func (p *Position) AppendBinary(buf []byte) []byte {
	var header [headerSize]byte
	header[offCount] = byte(p.count)
	binary.BigEndian.PutUint64(header[offOccupancy:], p.occupancy)

	flags := byte(p.castling) << flagCastleShift
	if p.toMove == chess.Black {
		flags |= flagBlackToMove
	}
	if p.hasEP {
		flags |= flagEnPassant
		header[offEnPassant] = byte(p.epPawn)
	}
	header[offFlags] = flags

	buf = append(buf, header[:]...)
	n := min(p.count, MaxPieces)
	for i := 0; i < n; i += 2 {
		b := byte(p.pieces[i]) << 4
		if i+1 < n {
			b |= byte(p.pieces[i+1]) & 0xF
		}
		buf = append(buf, b)
	}
	return buf
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p *Position) MarshalBinary() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Every record
// invariant is checked; a record that fails is reported as corrupt and p
// is left unchanged.
func (p *Position) UnmarshalBinary(data []byte) error {
	q, err := FromBytes(data)
	if err != nil {
		return err
	}
	*p = *q
	return nil
}

// FromBytes decodes and validates an encoded record.
func FromBytes(data []byte) (*Position, error) {
	corrupt := func(format string, args ...interface{}) error {
		return &errors.CorruptError{Err: errors.ErrCorruptRecord, Type: "position", Value: fmt.Sprintf(format, args...)}
	}

	if len(data) < headerSize {
		return nil, corrupt("%d bytes, header needs %d", len(data), headerSize)
	}
	count := int(data[offCount])
	if count > MaxPieces {
		return nil, corrupt("piece count %d", count)
	}
	if len(data) != RecordSize(count) {
		return nil, corrupt("%d bytes for %d pieces", len(data), count)
	}

	flags := data[offFlags]
	if flags&flagReserved != 0 {
		return nil, corrupt("flags %#x", flags)
	}

	p := &Position{
		occupancy: binary.BigEndian.Uint64(data[offOccupancy:]),
		count:     count,
		castling:  Castling(flags>>flagCastleShift) & AllCastling,
	}
	if flags&flagBlackToMove != 0 {
		p.toMove = chess.Black
	}
	if flags&flagEnPassant != 0 {
		p.hasEP = true
		p.epPawn = chess.Square(data[offEnPassant])
	} else if data[offEnPassant] != 0 {
		return nil, corrupt("en passant byte %#x without flag", data[offEnPassant])
	}

	packed := data[headerSize:]
	for i := 0; i < count; i++ {
		b := packed[i/2]
		if i%2 == 0 {
			b >>= 4
		}
		p.pieces[i] = chess.Piece(b & 0xF)
	}
	if count%2 == 1 && packed[len(packed)-1]&0xF != 0 {
		return nil, corrupt("pad nibble %#x", packed[len(packed)-1]&0xF)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}
