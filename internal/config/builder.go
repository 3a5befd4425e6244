package config

import "io"

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithFormat sets the output format.
func (b *ConfigBuilder) WithFormat(format OutputFormat) *ConfigBuilder {
	b.cfg.Format = format
	return b
}

// WithWorkers sets the number of batch decoding goroutines.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Batch.Workers = n
	return b
}

// WithDedupe enables duplicate reporting in batch mode.
func (b *ConfigBuilder) WithDedupe(enabled bool, maxPositions int) *ConfigBuilder {
	b.cfg.Batch.Dedupe = enabled
	b.cfg.Batch.MaxPositions = maxPositions
	return b
}

// WithIndexDir sets the index directory.
func (b *ConfigBuilder) WithIndexDir(dir string) *ConfigBuilder {
	b.cfg.Index.Dir = dir
	return b
}

// WithInMemoryIndex keeps the index in memory.
func (b *ConfigBuilder) WithInMemoryIndex(enabled bool) *ConfigBuilder {
	b.cfg.Index.InMemory = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the diagnostics writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
