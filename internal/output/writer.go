// Package output writes position records in the formats of the chessindex
// command.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessindex/internal/config"
	"github.com/lgbarn/chessindex/internal/position"
)

// Annotations carry optional context printed next to a record.
type Annotations struct {
	Line      int    // 1-based input line, 0 if unknown
	Duplicate bool   // Seen on an earlier line
	Count     uint64 // Occurrences in an index, 0 if not from an index
}

// PositionWriter is the interface for writing records to output.
type PositionWriter interface {
	// WritePosition writes a single record.
	WritePosition(p *position.Position, note Annotations) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close flushes and releases any resources.
	Close() error
}

// NewWriter returns the writer for cfg.Format.
func NewWriter(w io.Writer, cfg *config.Config) PositionWriter {
	switch cfg.Format {
	case config.Hex:
		return &HexWriter{w: w}
	case config.JSON:
		return NewJSONWriterSingle(w)
	default:
		return &TextWriter{w: w}
	}
}

// suffix renders annotations as tab-separated fields.
func suffix(note Annotations) string {
	var b strings.Builder
	if note.Count > 0 {
		fmt.Fprintf(&b, "\t%d", note.Count)
	}
	if note.Duplicate {
		b.WriteString("\tduplicate")
	}
	return b.String()
}

// TextWriter writes the canonical FEN of each record.
type TextWriter struct {
	w io.Writer
}

// WritePosition writes one FEN line.
func (tw *TextWriter) WritePosition(p *position.Position, note Annotations) error {
	fen, err := p.FEN()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(tw.w, "%s%s\n", fen, suffix(note))
	return err
}

// Flush is a no-op; lines are written immediately.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close is a no-op.
func (tw *TextWriter) Close() error {
	return nil
}

// HexWriter writes the record bytes of each record in hexadecimal.
type HexWriter struct {
	w io.Writer
}

// WritePosition writes one hex line.
func (hw *HexWriter) WritePosition(p *position.Position, note Annotations) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(hw.w, "%x%s\n", data, suffix(note))
	return err
}

// Flush is a no-op; lines are written immediately.
func (hw *HexWriter) Flush() error {
	return nil
}

// Close is a no-op.
func (hw *HexWriter) Close() error {
	return nil
}

// JSONWriter writes records in JSON format.
// It buffers records and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w         io.Writer
	positions []*JSONPosition
	single    bool // If true, write one object per line immediately
}

// NewJSONWriter creates a JSON writer that batches records into an array.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// NewJSONWriterSingle creates a JSON writer that writes each record
// immediately as one line.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, single: true}
}

// WritePosition buffers a record (or writes it immediately in single mode).
func (jw *JSONWriter) WritePosition(p *position.Position, note Annotations) error {
	jp, err := PositionToJSON(p, note)
	if err != nil {
		return err
	}
	if jw.single {
		return json.NewEncoder(jw.w).Encode(jp)
	}
	jw.positions = append(jw.positions, jp)
	return nil
}

// Flush writes all buffered records as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.positions) == 0 {
		return nil
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(&JSONOutput{Positions: jw.positions})

	jw.positions = jw.positions[:0]
	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
