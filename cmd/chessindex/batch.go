package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chessindex/internal/config"
	"github.com/lgbarn/chessindex/internal/hashing"
	"github.com/lgbarn/chessindex/internal/output"
	"github.com/lgbarn/chessindex/internal/worker"
)

func newBatchCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [file...]",
		Short: "Decode a file of FEN lines",
		Long: `Decode one FEN per line from the given files, or stdin, and print each
record in the selected format. Lines that fail to decode are reported on
the log and skipped unless --stop-on-error is set.

Example:
  chessindex batch -j 4 --dedupe positions.fen`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Batch.Validate(); err != nil {
				return err
			}
			lines, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			opts := []worker.DecodeOption{worker.WithStopOnError(cfg.Batch.StopOnError)}
			if cfg.Batch.Dedupe {
				opts = append(opts, worker.WithDuplicates(hashing.NewPositionSet(cfg.Batch.MaxPositions)))
			}
			results := worker.DecodeAll(texts(lines), cfg.Batch.Workers, opts...)

			w := output.NewWriter(cfg.OutputFile, cfg)
			var failed, dups int
			for _, res := range results {
				in := lines[res.Index]
				if res.Error != nil {
					if cfg.Batch.StopOnError {
						w.Close()
						return fmt.Errorf("%s:%d: %w", in.File, in.Line, res.Error)
					}
					cfg.Logf(1, "%s:%d: %v\n", in.File, in.Line, res.Error)
					failed++
					continue
				}
				if res.Duplicate {
					dups++
				}
				cfg.Logf(2, "%s:%d: %d pieces\n", in.File, in.Line, res.Position.PieceCount())
				if err := w.WritePosition(res.Position, output.Annotations{Line: in.Line, Duplicate: res.Duplicate}); err != nil {
					return err
				}
			}
			if err := w.Close(); err != nil {
				return err
			}

			cfg.Logf(1, "%d positions, %d errors, %d duplicates\n", len(results)-failed, failed, dups)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&cfg.Batch.Workers, "workers", "j", cfg.Batch.Workers, "number of decoding goroutines")
	flags.BoolVar(&cfg.Batch.Dedupe, "dedupe", cfg.Batch.Dedupe, "mark positions already seen on an earlier line")
	flags.IntVar(&cfg.Batch.MaxPositions, "max-positions", cfg.Batch.MaxPositions, "positions remembered by --dedupe (0 = unlimited)")
	flags.BoolVar(&cfg.Batch.StopOnError, "stop-on-error", cfg.Batch.StopOnError, "fail at the first line that does not decode")
	return cmd
}
