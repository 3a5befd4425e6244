package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chessindex/internal/chess"
	"github.com/lgbarn/chessindex/internal/config"
	"github.com/lgbarn/chessindex/internal/index"
	"github.com/lgbarn/chessindex/internal/material"
	"github.com/lgbarn/chessindex/internal/output"
	"github.com/lgbarn/chessindex/internal/position"
	"github.com/lgbarn/chessindex/internal/worker"
)

func newIndexCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Maintain an ordered index of positions",
		Long: `Store positions in a pebble database keyed by their binary record.
Records are ordered by piece count first, so all positions with the same
number of pieces can be listed together.`,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.Index.Dir, "index-dir", cfg.Index.Dir, "index data directory")
	flags.BoolVar(&cfg.Index.InMemory, "in-memory", cfg.Index.InMemory, "keep the index in memory for this run only")

	cmd.AddCommand(newIndexAddCmd(cfg), newIndexListCmd(cfg), newIndexGetCmd(cfg))
	return cmd
}

func newIndexAddCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [file...]",
		Short: "Add FEN lines to the index",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Batch.Validate(); err != nil {
				return err
			}
			lines, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			ix, err := index.Open(cfg.Index)
			if err != nil {
				return err
			}
			defer ix.Close()

			var added, fresh, failed int
			for _, res := range worker.DecodeAll(texts(lines), cfg.Batch.Workers) {
				in := lines[res.Index]
				if res.Error != nil {
					cfg.Logf(1, "%s:%d: %v\n", in.File, in.Line, res.Error)
					failed++
					continue
				}
				n, err := ix.Add(res.Position)
				if err != nil {
					return err
				}
				added++
				if n == 1 {
					fresh++
				}
			}

			cfg.Logf(1, "added %d positions (%d new), %d errors\n", added, fresh, failed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&cfg.Batch.Workers, "workers", "j", cfg.Batch.Workers, "number of decoding goroutines")
	return cmd
}

func newIndexListCmd(cfg *config.Config) *cobra.Command {
	var (
		pieces int
		white  string
		black  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed positions in record order",
		Long: `List indexed positions in record order with their occurrence counts.

Example:
  chessindex index list --pieces 3 --white "QRR............"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filters []func(*position.Position) bool
			for _, m := range []struct {
				text string
				side chess.Colour
			}{{white, chess.White}, {black, chess.Black}} {
				if m.text == "" {
					continue
				}
				sig, err := material.Parse(m.text)
				if err != nil {
					return err
				}
				side := m.side
				filters = append(filters, func(p *position.Position) bool { return p.Material(side) == sig })
			}

			ix, err := index.Open(cfg.Index)
			if err != nil {
				return err
			}
			defer ix.Close()

			w := output.NewWriter(cfg.OutputFile, cfg)
			visit := func(e index.Entry) error {
				for _, keep := range filters {
					if !keep(e.Position) {
						return nil
					}
				}
				return w.WritePosition(e.Position, output.Annotations{Count: e.Count})
			}

			if pieces >= 0 {
				err = ix.RangePieces(pieces, visit)
			} else {
				err = ix.Range(visit)
			}
			if err != nil {
				return err
			}
			return w.Close()
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&pieces, "pieces", "p", -1, "only positions with this many pieces")
	flags.StringVar(&white, "white", "", "only positions with this white material signature")
	flags.StringVar(&black, "black", "", "only positions with this black material signature")
	return cmd
}

func newIndexGetCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "get <fen>...",
		Short: "Print how often each position was added",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ix, err := index.Open(cfg.Index)
			if err != nil {
				return err
			}
			defer ix.Close()

			for _, fen := range args {
				p, err := position.Decode(fen)
				if err != nil {
					return err
				}
				e, ok, err := ix.Get(p)
				if err != nil {
					return err
				}
				if !ok {
					cfg.Logf(2, "%s: not indexed\n", p)
				} else {
					cfg.Logf(2, "%s: first seen as %q\n", p, e.FirstSeen)
				}
				if _, err := fmt.Fprintf(cfg.OutputFile, "%s\t%d\n", p, e.Count); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
