// Package errors provides sentinel errors and error types for chessindex.
// It defines the tagged failure conditions of the position codec and
// structured error types that preserve context while allowing inspection
// with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes. Every tagged error below wraps exactly one of these, so a
// host can tell recoverable input problems from stored-data corruption.
var (
	// ErrInvalidInput marks malformed caller-supplied text.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptData marks a stored value that violates a record invariant.
	ErrCorruptData = errors.New("corrupt internal data")
)

// Input validation errors.
var (
	// ErrInvalidCoordinate indicates a square outside a1..h8.
	ErrInvalidCoordinate = tag("invalid coordinate", ErrInvalidInput)

	// ErrInvalidPiece indicates a character that is not one of PNBRQKpnbrqk.
	ErrInvalidPiece = tag("invalid piece", ErrInvalidInput)

	// ErrInvalidSide indicates a side token other than w/b/white/black.
	ErrInvalidSide = tag("invalid side", ErrInvalidInput)

	// ErrFENTooLong indicates a FEN string above the supported length.
	ErrFENTooLong = tag("FEN too long", ErrInvalidInput)

	// ErrMalformedBoard indicates an unexpected character in the piece placement field.
	ErrMalformedBoard = tag("malformed board", ErrInvalidInput)

	// ErrBoardTooLong indicates piece placement describing more than 64 squares
	// or a rank wider than 8.
	ErrBoardTooLong = tag("board too long", ErrInvalidInput)

	// ErrBoardTooShort indicates piece placement describing fewer than 64 squares
	// or a rank narrower than 8.
	ErrBoardTooShort = tag("board too short", ErrInvalidInput)

	// ErrTooManyPieces indicates piece placement with more pieces than a record holds.
	ErrTooManyPieces = tag("too many pieces", ErrInvalidInput)

	// ErrBadSideToMove indicates a side-to-move field other than w or b.
	ErrBadSideToMove = tag("bad side to move", ErrInvalidInput)

	// ErrBadCastling indicates a character outside KQkq- in the castling field.
	ErrBadCastling = tag("bad castling", ErrInvalidInput)

	// ErrBadEnPassantRank indicates an en passant target not on rank 3 or 6.
	ErrBadEnPassantRank = tag("bad en passant rank", ErrInvalidInput)

	// ErrEnPassantPawnNotFound indicates no pawn of the right colour stands
	// on the square implied by the en passant target.
	ErrEnPassantPawnNotFound = tag("en passant pawn not found", ErrInvalidInput)

	// ErrTruncatedFEN indicates the input ended before the en passant field.
	ErrTruncatedFEN = tag("truncated FEN", ErrInvalidInput)

	// ErrBadTrailingField indicates a halfmove or fullmove field that is not a number.
	ErrBadTrailingField = tag("bad move counter", ErrInvalidInput)

	// ErrBadMaterialSignature indicates a malformed material signature string.
	ErrBadMaterialSignature = tag("bad material signature", ErrInvalidInput)
)

// Internal corruption errors.
var (
	// ErrCorruptSquare indicates a stored square outside 0..63.
	ErrCorruptSquare = tag("corrupt square", ErrCorruptData)

	// ErrCorruptPiece indicates a stored piece nibble outside the 12 valid codes.
	ErrCorruptPiece = tag("corrupt piece", ErrCorruptData)

	// ErrCorruptSide indicates a stored side value that is neither colour.
	ErrCorruptSide = tag("corrupt side", ErrCorruptData)

	// ErrCorruptRecord indicates a position record that violates its invariants.
	ErrCorruptRecord = tag("corrupt record", ErrCorruptData)
)

// tagged is a sentinel that also matches its class with errors.Is.
type tagged struct {
	msg   string
	class error
}

func tag(msg string, class error) error {
	return &tagged{msg: msg, class: class}
}

func (t *tagged) Error() string { return t.msg }

func (t *tagged) Unwrap() error { return t.class }

// IsInput reports whether err is an input validation error.
func IsInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsCorrupt reports whether err reports corrupt stored data.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrCorruptData)
}

// InputError reports caller text that could not be parsed as a value of
// the named type. It renders the way the host presents syntax errors.
type InputError struct {
	Err   error  // The underlying tagged error
	Type  string // Value type name, e.g. "square"
	Input string // The offending literal
}

// Error returns `invalid input syntax for <type>: "<input>"` plus the tag.
func (e *InputError) Error() string {
	msg := fmt.Sprintf("invalid input syntax for %s: %q", e.Type, e.Input)
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *InputError) Unwrap() error {
	return e.Err
}

// CorruptError reports a stored value that failed validation on read.
type CorruptError struct {
	Err    error  // The underlying tagged error
	Type   string // Value type name, e.g. "piece"
	Value  string // Rendering of the bad value
	Detail string // Optional diagnostic, e.g. the source FEN
}

// Error returns `corrupt internal data for <type>: "<value>"` with any detail.
func (e *CorruptError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("corrupt internal data for %s: %q", e.Type, e.Value))

	if e.Detail != "" {
		parts = append(parts, e.Detail)
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *CorruptError) Unwrap() error {
	return e.Err
}

// FENError represents a FEN decoding failure with location context.
type FENError struct {
	Err    error  // The underlying tagged error
	FEN    string // The input being decoded
	Offset int    // Byte offset of the offending text (0-based)
	Got    string // The offending substring
}

// Error returns a formatted error message with location and context.
func (e *FENError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("invalid input syntax for fen: %q", e.FEN))

	if e.Got != "" {
		parts = append(parts, fmt.Sprintf("at offset %d: unexpected %q", e.Offset, e.Got))
	} else {
		parts = append(parts, fmt.Sprintf("at offset %d", e.Offset))
	}

	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error.
func (e *FENError) Unwrap() error {
	return e.Err
}

// Wrap adds context to an error while preserving the underlying error
// for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}
