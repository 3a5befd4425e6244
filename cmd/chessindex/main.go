// chessindex converts chess positions between FEN and compact binary
// records, and keeps an ordered index of positions.
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chessindex/internal/config"
)

const programVersion = "0.1.0"

func main() {
	if err := newRootCmd(config.NewConfig()).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around cfg. Flags write straight into
// cfg, so tests can inspect it after Execute.
func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		format  string
		logPath string
		outPath string
		files   []io.Closer
	)

	// closeFiles closes what -l and -o opened. It runs after every
	// command, whether or not the command failed.
	closeFiles := func() error {
		var first error
		for _, f := range files {
			if err := f.Close(); err != nil && first == nil {
				first = err
			}
		}
		files = nil
		return first
	}

	root := &cobra.Command{
		Use:   "chessindex",
		Short: "Chess position codec and index",
		Long: `chessindex converts chess positions between FEN text and a compact
binary record, compares and hashes records, and stores them in an
ordered on-disk index.`,
		Version:      programVersion,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			f, err := config.ParseOutputFormat(format)
			if err != nil {
				return err
			}
			cfg.Format = f

			if logPath != "" {
				file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				cfg.LogFile = file
				files = append(files, file)
			}
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					closeFiles()
					return err
				}
				cfg.SetOutput(file)
				files = append(files, file)
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.IntVarP(&cfg.Verbosity, "verbosity", "v", cfg.Verbosity, "0=quiet, 1=summaries, 2=running commentary")
	flags.StringVarP(&format, "format", "f", cfg.Format.String(), "output format: text, hex or json")
	flags.StringVarP(&logPath, "log", "l", "", "append diagnostics to this file instead of stderr")
	flags.StringVarP(&outPath, "output", "o", "", "write output to this file instead of stdout")

	root.AddCommand(
		newDecodeCmd(cfg),
		newEncodeCmd(cfg),
		newCompareCmd(cfg),
		newHashCmd(cfg),
		newSquareCmd(cfg),
		newMaterialCmd(cfg),
		newBatchCmd(cfg),
		newIndexCmd(cfg),
	)
	closeAfterRun(root, closeFiles)
	return root
}

// closeAfterRun wraps the RunE of cmd and its subcommands so that
// closeFiles runs on both the success and the error path.
func closeAfterRun(cmd *cobra.Command, closeFiles func() error) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := closeFiles(); err == nil {
					err = cerr
				}
			}()
			return run(c, args)
		}
	}
	for _, sub := range cmd.Commands() {
		closeAfterRun(sub, closeFiles)
	}
}
