package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chessindex/internal/config"
	"github.com/lgbarn/chessindex/internal/errors"
	"github.com/lgbarn/chessindex/internal/output"
	"github.com/lgbarn/chessindex/internal/position"
)

func newDecodeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <fen>...",
		Short: "Decode FEN strings into records",
		Long: `Decode each FEN argument and print the record in the selected format.
The halfmove clock and fullmove number are accepted but not stored.

Example:
  chessindex decode -f hex "4k3/8/8/8/8/8/8/4K3 w - - 0 1"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewWriter(cfg.OutputFile, cfg)
			for _, fen := range args {
				p, err := position.Decode(fen)
				if err != nil {
					return err
				}
				cfg.Logf(2, "decoded %q: %d pieces\n", fen, p.PieceCount())
				if err := w.WritePosition(p, output.Annotations{}); err != nil {
					return err
				}
			}
			return w.Close()
		},
	}
}

func newEncodeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <hex>...",
		Short: "Read hexadecimal records back",
		Long: `Validate each hexadecimal record and print it in the selected format.
With the default text format this prints the canonical FEN.

Example:
  chessindex encode 0208000000000000080000e6`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := output.NewWriter(cfg.OutputFile, cfg)
			for _, arg := range args {
				data, err := hex.DecodeString(arg)
				if err != nil {
					return errors.Wrapf(err, "record %q", arg)
				}
				p, err := position.FromBytes(data)
				if err != nil {
					return err
				}
				if err := w.WritePosition(p, output.Annotations{}); err != nil {
					return err
				}
			}
			return w.Close()
		},
	}
}

func newCompareCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <fen> <fen>",
		Short: "Print -1, 0 or 1 for the record order of two positions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := position.Decode(args[0])
			if err != nil {
				return err
			}
			b, err := position.Decode(args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cfg.OutputFile, position.Compare(a, b))
			return err
		},
	}
}

func newHashCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <fen>...",
		Short: "Print the hash of each position",
		Long: `Print the 32-bit hash of each position. Positions that differ only in
move counters or in the order of castling letters hash alike.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, fen := range args {
				p, err := position.Decode(fen)
				if err != nil {
					return err
				}
				h, err := p.Hash()
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(cfg.OutputFile, h); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
