package position

import (
	"encoding/hex"
	"testing"

	"github.com/lgbarn/chessindex/internal/errors"
	"github.com/lgbarn/chessindex/internal/testutil"
)

func TestBytes_Layout(t *testing.T) {
	p := mustDecode(t, testutil.LoneKingsFEN)
	testutil.AssertEqual(t, hex.EncodeToString(p.Bytes()), "0208000000000000080000e6")
	testutil.AssertEqual(t, p.Size(), 12)

	empty := mustDecode(t, "8/8/8/8/8/8/8/8 b - -")
	testutil.AssertEqual(t, hex.EncodeToString(empty.Bytes()), "00000000000000000001"+"00")

	ep := mustDecode(t, "4k3/8/8/3Pp3/8/8/8/4K3 w - e6 0 1")
	data := ep.Bytes()
	testutil.AssertEqual(t, data[offFlags], byte(flagEnPassant))
	testutil.AssertEqual(t, data[offEnPassant], byte(36), "e5 is stored, not e6")
}

func TestBytes_RoundTrip(t *testing.T) {
	for _, fen := range testutil.RoundTripFENs {
		t.Run(fen, func(t *testing.T) {
			p := mustDecode(t, fen)
			data, err := p.MarshalBinary()
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, len(data), RecordSize(p.PieceCount()))

			var q Position
			testutil.AssertNoError(t, q.UnmarshalBinary(data))
			testutil.AssertTrue(t, Equal(p, &q), "decoded record equals original")
			testutil.AssertEqual(t, q.Source(), "", "source text is not stored")
			testutil.AssertEqual(t, q.Bytes(), data)

			want, _ := p.FEN()
			got, err := q.FEN()
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, want)
		})
	}
}

func TestRecordSize(t *testing.T) {
	testutil.AssertEqual(t, RecordSize(0), 11)
	testutil.AssertEqual(t, RecordSize(1), 12)
	testutil.AssertEqual(t, RecordSize(2), 12)
	testutil.AssertEqual(t, RecordSize(MaxPieces), MaxRecordSize)
	testutil.AssertEqual(t, mustDecode(t, testutil.InitialFEN).Size(), MaxRecordSize)
}

func TestFromBytes_Corrupt(t *testing.T) {
	kings := mustDecode(t, testutil.LoneKingsFEN).Bytes()
	three := mustDecode(t, "4k3/8/8/8/8/8/8/4KQ2 w - - 0 1").Bytes()

	mutate := func(src []byte, fn func([]byte) []byte) []byte {
		data := append([]byte(nil), src...)
		return fn(data)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"nil", nil, errors.ErrCorruptRecord},
		{"short header", kings[:5], errors.ErrCorruptRecord},
		{"missing piece byte", kings[:headerSize], errors.ErrCorruptRecord},
		{"extra byte", append(append([]byte(nil), kings...), 0), errors.ErrCorruptRecord},
		{"count above 32", mutate(kings, func(d []byte) []byte { d[offCount] = 33; return d }), errors.ErrCorruptRecord},
		{"count disagrees with length", mutate(kings, func(d []byte) []byte { d[offCount] = 3; return d }), errors.ErrCorruptRecord},
		{"popcount disagrees with count", mutate(kings, func(d []byte) []byte { d[8] ^= 0x10; return d }), errors.ErrCorruptRecord},
		{"invalid nibble", mutate(kings, func(d []byte) []byte { d[len(d)-1] = 0xE7; return d }), errors.ErrCorruptPiece},
		{"empty nibble", mutate(kings, func(d []byte) []byte { d[len(d)-1] = 0x06; return d }), errors.ErrCorruptPiece},
		{"reserved flag", mutate(kings, func(d []byte) []byte { d[offFlags] |= 0x80; return d }), errors.ErrCorruptRecord},
		{"en passant without pawn", mutate(kings, func(d []byte) []byte { d[offFlags] |= flagEnPassant; return d }), errors.ErrCorruptRecord},
		{"en passant byte without flag", mutate(kings, func(d []byte) []byte { d[offEnPassant] = 36; return d }), errors.ErrCorruptRecord},
		{"en passant square off board", mutate(kings, func(d []byte) []byte { d[offFlags] |= flagEnPassant; d[offEnPassant] = 200; return d }), errors.ErrCorruptSquare},
		{"pad nibble set", mutate(three, func(d []byte) []byte { d[len(d)-1] |= 0x1; return d }), errors.ErrCorruptRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromBytes(tt.data)
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertTrue(t, errors.IsCorrupt(err), "record errors are corruption errors")
			testutil.AssertTrue(t, p == nil, "no record on failure")
		})
	}
}

func TestUnmarshalBinary_LeavesTargetOnError(t *testing.T) {
	p := mustDecode(t, testutil.InitialFEN)
	before := p.Bytes()

	testutil.AssertError(t, p.UnmarshalBinary([]byte{1, 2, 3}))
	testutil.AssertEqual(t, p.Bytes(), before)
}

func TestMarshalBinary_RejectsCorrupt(t *testing.T) {
	p := &Position{occupancy: 0x1}
	_, err := p.MarshalBinary()
	testutil.AssertErrorIs(t, err, errors.ErrCorruptRecord)
}
