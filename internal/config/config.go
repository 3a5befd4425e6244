// Package config holds the settings of the chessindex command.
package config

import (
	"fmt"
	"io"
	"os"
)

// OutputFormat selects how decoded records are printed.
type OutputFormat int

const (
	Text OutputFormat = iota // Canonical FEN and a summary line
	Hex                      // Record bytes in hexadecimal
	JSON                     // One JSON object per record
)

var outputFormatNames = map[string]OutputFormat{
	"text": Text,
	"hex":  Hex,
	"json": JSON,
}

// ParseOutputFormat returns the format with the given name.
func ParseOutputFormat(name string) (OutputFormat, error) {
	f, ok := outputFormatNames[name]
	if !ok {
		return Text, fmt.Errorf("unknown output format %q (want text, hex or json)", name)
	}
	return f, nil
}

// String returns the format name.
func (f OutputFormat) String() string {
	for name, v := range outputFormatNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("OutputFormat(%d)", int(f))
}

// BatchConfig holds settings for decoding files of FEN lines.
type BatchConfig struct {
	// Workers is the number of decoding goroutines
	Workers int

	// Dedupe reports positions already seen earlier in the input
	Dedupe bool

	// MaxPositions caps the positions remembered for Dedupe (0 = unlimited)
	MaxPositions int

	// StopOnError aborts at the first line that does not decode
	StopOnError bool
}

// NewBatchConfig creates a BatchConfig with default values.
func NewBatchConfig() *BatchConfig {
	return &BatchConfig{
		Workers: 1,
	}
}

// Validate checks the batch settings.
func (c *BatchConfig) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxPositions < 0 {
		return fmt.Errorf("max positions must not be negative, got %d", c.MaxPositions)
	}
	return nil
}

// IndexConfig holds settings for the on-disk position index.
type IndexConfig struct {
	// Dir is the pebble data directory
	Dir string

	// InMemory keeps the index in memory and ignores Dir
	InMemory bool
}

// NewIndexConfig creates an IndexConfig with default values.
func NewIndexConfig() *IndexConfig {
	return &IndexConfig{
		Dir: "./positions",
	}
}

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=summaries, 2=running commentary
	Format    OutputFormat

	Batch *BatchConfig
	Index *IndexConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Format:     Text,
		Batch:      NewBatchConfig(),
		Index:      NewIndexConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output stream.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Logf writes a diagnostic to LogFile when Verbosity is at least level.
func (c *Config) Logf(level int, format string, args ...interface{}) {
	if c.Verbosity < level || c.LogFile == nil {
		return
	}
	fmt.Fprintf(c.LogFile, format, args...)
}
