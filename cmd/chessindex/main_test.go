package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lgbarn/chessindex/internal/config"
	"github.com/lgbarn/chessindex/internal/errors"
	"github.com/lgbarn/chessindex/internal/output"
	"github.com/lgbarn/chessindex/internal/testutil"
)

// run executes the command tree with the given stdin and returns what was
// written to the output and log streams.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, log, cobraOut bytes.Buffer
	cfg := config.NewConfigBuilder().WithOutput(&out).WithLog(&log).Build()

	cmd := newRootCmd(cfg)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&cobraOut)
	cmd.SetErr(&cobraOut)

	err := cmd.Execute()
	return out.String(), log.String(), err
}

func TestDecodeCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"text", []string{"decode", testutil.LoneKingsFEN}, "4k3/8/8/8/8/8/8/4K3 w - -\n"},
		{"hex", []string{"decode", "-f", "hex", testutil.LoneKingsFEN}, "0208000000000000080000e6\n"},
		{"several", []string{"decode", testutil.LoneKingsFEN, "8/8/8/8/8/8/8/8 b - -"},
			"4k3/8/8/8/8/8/8/4K3 w - -\n8/8/8/8/8/8/8/8 b - -\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := run(t, "", tt.args...)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
		})
	}
}

func TestDecodeCmd_JSON(t *testing.T) {
	got, _, err := run(t, "", "decode", "--format", "json", testutil.SicilianFEN)
	testutil.AssertNoError(t, err)

	var jp output.JSONPosition
	testutil.AssertNoError(t, json.Unmarshal([]byte(got), &jp))
	testutil.AssertEqual(t, jp.Pieces, 32)
	testutil.AssertEqual(t, jp.EnPassant, "c6")
	testutil.AssertEqual(t, jp.ToMove, "w")
}

func TestDecodeCmd_Errors(t *testing.T) {
	_, _, err := run(t, "", "decode", "8/8/8 w - -")
	testutil.AssertErrorIs(t, err, errors.ErrBoardTooShort)

	_, _, err = run(t, "", "decode", "-f", "xml", testutil.InitialFEN)
	testutil.AssertError(t, err)

	_, _, err = run(t, "", "decode")
	testutil.AssertError(t, err, "a FEN argument is required")
}

func TestEncodeCmd(t *testing.T) {
	got, _, err := run(t, "", "encode", "0208000000000000080000e6")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "4k3/8/8/8/8/8/8/4K3 w - -\n")

	_, _, err = run(t, "", "encode", "0208000000000000080000e7")
	testutil.AssertTrue(t, errors.IsCorrupt(err), "invalid piece nibble is corrupt data")

	_, _, err = run(t, "", "encode", "zz")
	testutil.AssertError(t, err)
}

func TestCompareAndHashCmds(t *testing.T) {
	got, _, err := run(t, "", "compare", testutil.LoneKingsFEN, testutil.InitialFEN)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "-1\n")

	got, _, err = run(t, "", "compare", testutil.InitialFEN, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 9 99")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "0\n")

	got, _, err = run(t, "", "hash", "8/8/8/8/8/8/8/8 w - - 0 1")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "1006651560\n")
}

func TestSquareCmd(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"square", "e4"}, "28\n"},
		{[]string{"square", "28"}, "e4\n"},
		{[]string{"square", "h8"}, "63\n"},
		{[]string{"square", "--detail", "a8"}, "a8 56 file=0 rank=7 diagonal=-7 antidiagonal=0\n"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			got, _, err := run(t, "", tt.args...)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tt.want)
		})
	}

	for _, bad := range []string{"64", "z9", "e"} {
		_, _, err := run(t, "", "square", bad)
		testutil.AssertErrorIs(t, err, errors.ErrInvalidCoordinate, bad)
	}
}

func TestMaterialCmd(t *testing.T) {
	const fen = "r3k2r/8/8/8/8/8/8/4K3 w - - 0 1"

	got, _, err := run(t, "", "material", fen)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "white ...............\nblack .RR............\n")

	got, _, err = run(t, "", "material", "--side", "b", fen)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, ".RR............\n")

	_, _, err = run(t, "", "material", "--side", "x", fen)
	testutil.AssertErrorIs(t, err, errors.ErrInvalidSide)
}

const batchInput = testutil.InitialFEN + `
# comment

not a fen
rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 7 12
`

func TestBatchCmd(t *testing.T) {
	got, log, err := run(t, batchInput, "batch", "--dedupe", "-j", "1")
	testutil.AssertNoError(t, err)

	initial := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"
	testutil.AssertEqual(t, got, initial+"\n"+initial+"\tduplicate\n")
	testutil.AssertContains(t, log, "-:4:")
	testutil.AssertContains(t, log, "2 positions, 1 errors, 1 duplicates")
}

func TestBatchCmd_Files(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "positions.fen")
	testutil.AssertNoError(t, os.WriteFile(path, []byte(strings.Join(testutil.RoundTripFENs, "\n")), 0o644))

	got, log, err := run(t, "", "batch", "-j", "4", "-f", "hex", path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(strings.Split(strings.TrimSpace(got), "\n")), len(testutil.RoundTripFENs))
	testutil.AssertContains(t, log, "0 errors")
}

func TestBatchCmd_StopOnError(t *testing.T) {
	got, _, err := run(t, batchInput, "batch", "--stop-on-error")
	testutil.AssertTrue(t, errors.IsInput(err))
	testutil.AssertContains(t, err.Error(), "-:4:")
	testutil.AssertEqual(t, got, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -\n", "lines before the failure are written")

	_, _, err = run(t, batchInput, "batch", "-j", "0")
	testutil.AssertError(t, err)
}

func TestIndexCmds(t *testing.T) {
	dir := t.TempDir()
	input := strings.Join([]string{testutil.InitialFEN, testutil.LoneKingsFEN, testutil.InitialFEN, "bad"}, "\n")

	_, log, err := run(t, input, "index", "add", "--index-dir", dir)
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, log, "added 3 positions (2 new), 1 errors")

	initial := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"
	kings := "4k3/8/8/8/8/8/8/4K3 w - -"

	got, _, err := run(t, "", "index", "list", "--index-dir", dir)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, kings+"\t1\n"+initial+"\t2\n")

	got, _, err = run(t, "", "index", "list", "--index-dir", dir, "--pieces", "32")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, initial+"\t2\n")

	got, _, err = run(t, "", "index", "list", "--index-dir", dir, "--white", "...............")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, kings+"\t1\n")

	_, _, err = run(t, "", "index", "list", "--index-dir", dir, "--black", "QQ")
	testutil.AssertErrorIs(t, err, errors.ErrBadMaterialSignature)

	got, _, err = run(t, "", "index", "get", "--index-dir", dir, testutil.InitialFEN, testutil.SicilianFEN)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, initial+"\t2\n"+"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6\t0\n")
}

func TestIndexCmd_InMemory(t *testing.T) {
	_, log, err := run(t, testutil.KiwipeteFEN, "index", "add", "--in-memory")
	testutil.AssertNoError(t, err)
	testutil.AssertContains(t, log, "added 1 positions (1 new)")
}

func TestOutputFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")

	got, _, err := run(t, "", "decode", "-o", path, testutil.LoneKingsFEN)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "")

	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, string(data), "4k3/8/8/8/8/8/8/4K3 w - -\n")
}

func TestFileFlags_ClosedOnError(t *testing.T) {
	dir := t.TempDir()
	cfg := config.NewConfig()

	cmd := newRootCmd(cfg)
	cmd.SetArgs([]string{"decode", "-l", filepath.Join(dir, "log.txt"), "-o", filepath.Join(dir, "out.txt"), "not a fen"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	testutil.AssertError(t, cmd.Execute())

	for name, w := range map[string]interface{}{"log": cfg.LogFile, "output": cfg.OutputFile} {
		f, ok := w.(*os.File)
		testutil.AssertTrue(t, ok, name+" is the opened file")
		_, err := f.Write([]byte("x"))
		testutil.AssertErrorIs(t, err, os.ErrClosed, name+" closed after a failed run")
	}
}

func TestBatchCmd_DedupeManyWorkers(t *testing.T) {
	var lines []string
	for i := 0; i < 60; i++ {
		lines = append(lines, testutil.RoundTripFENs[i%3])
	}

	got, _, err := run(t, strings.Join(lines, "\n"), "batch", "--dedupe", "-j", "8")
	testutil.AssertNoError(t, err)

	out := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	testutil.AssertEqual(t, len(out), len(lines))
	for i, line := range out {
		testutil.AssertEqual(t, strings.HasSuffix(line, "\tduplicate"), i >= 3, line)
	}
}
