package testutil

// Positions shared by the codec, index and CLI tests.
const (
	InitialFEN   = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	AfterE4FEN   = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	SicilianFEN  = "rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2"
	KiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	LoneKingsFEN = "4k3/8/8/8/8/8/8/4K3 w - - 0 1"
	EndgameFEN   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
)

// RoundTripFENs are inputs whose canonical encoding is the input minus the
// move counters.
var RoundTripFENs = []string{
	InitialFEN,
	AfterE4FEN,
	SicilianFEN,
	KiwipeteFEN,
	LoneKingsFEN,
	EndgameFEN,
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"8/8/8/3pP3/8/8/8/k6K w - d6 0 2",
	"8/8/8/8/8/8/8/8 b - - 0 1",
}
