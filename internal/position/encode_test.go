package position

import (
	"strings"
	"sync"
	"testing"

	"github.com/lgbarn/chessindex/internal/chess"
	"github.com/lgbarn/chessindex/internal/errors"
	"github.com/lgbarn/chessindex/internal/testutil"
)

// canonical drops the move counters from a FEN.
func canonical(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

func TestFEN_RoundTrip(t *testing.T) {
	for _, fen := range testutil.RoundTripFENs {
		t.Run(fen, func(t *testing.T) {
			got, err := mustDecode(t, fen).FEN()
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, canonical(fen))

			// The canonical form is a fixed point.
			again, err := mustDecode(t, got).FEN()
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, again, got)
		})
	}
}

func TestFEN_NormalizesCastling(t *testing.T) {
	got, err := Encode(mustDecode(t, "r3k2r/8/8/8/8/8/8/R3K2R b qkQK - 3 20"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "r3k2r/8/8/8/8/8/8/R3K2R b KQkq -")
}

func TestFEN_EmptyRunsAtRankEdges(t *testing.T) {
	tests := []string{
		"7k/8/8/8/8/8/8/K7 w - -",
		"k7/8/8/8/8/8/8/7K w - -",
		"1k6/8/8/3Q4/8/8/8/6K1 b - -",
		"8/8/8/8/8/8/8/8 w - -",
	}

	for _, fen := range tests {
		t.Run(fen, func(t *testing.T) {
			got, err := mustDecode(t, fen).FEN()
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, fen)
		})
	}
}

func TestFEN_CorruptRecords(t *testing.T) {
	tests := []struct {
		name string
		p    *Position
		want error
	}{
		{
			name: "more squares than pieces",
			p:    &Position{occupancy: 0x3, count: 1, pieces: [MaxPieces]chess.Piece{chess.WhiteKing}},
			want: errors.ErrCorruptRecord,
		},
		{
			name: "more pieces than squares",
			p:    &Position{occupancy: 0x1, count: 2, pieces: [MaxPieces]chess.Piece{chess.WhiteKing, chess.BlackKing}},
			want: errors.ErrCorruptRecord,
		},
		{
			name: "invalid nibble",
			p:    &Position{occupancy: 0x1, count: 1, pieces: [MaxPieces]chess.Piece{0x7}},
			want: errors.ErrCorruptPiece,
		},
		{
			name: "count out of range",
			p:    &Position{count: 40},
			want: errors.ErrCorruptRecord,
		},
		{
			name: "bad side",
			p:    &Position{toMove: chess.Colour(3)},
			want: errors.ErrCorruptSide,
		},
		{
			name: "en passant pawn on wrong rank",
			p:    &Position{hasEP: true, epPawn: chess.A1},
			want: errors.ErrCorruptRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fen, err := tt.p.FEN()
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertTrue(t, errors.IsCorrupt(err), "corruption is never reported as input error")
			testutil.AssertEqual(t, fen, "")

			_, err = tt.p.Hash()
			testutil.AssertErrorIs(t, err, tt.want)
			testutil.AssertContains(t, tt.p.String(), "corrupt")
		})
	}
}

func TestFEN_CorruptIncludesSource(t *testing.T) {
	p := mustDecode(t, testutil.LoneKingsFEN)
	p.pieces[0] = 0xF

	_, err := p.FEN()
	testutil.AssertErrorIs(t, err, errors.ErrCorruptPiece)
	testutil.AssertContains(t, err.Error(), testutil.LoneKingsFEN)
}

func TestCodec_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, fen := range testutil.RoundTripFENs {
				p, err := Decode(fen)
				if err != nil {
					t.Errorf("Decode(%q) error = %v", fen, err)
					return
				}
				if got, err := p.FEN(); err != nil || got != canonical(fen) {
					t.Errorf("FEN() = %q, %v; want %q", got, err, canonical(fen))
				}
			}
		}()
	}
	wg.Wait()
}
