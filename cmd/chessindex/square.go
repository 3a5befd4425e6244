package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lgbarn/chessindex/internal/chess"
	"github.com/lgbarn/chessindex/internal/config"
	"github.com/lgbarn/chessindex/internal/position"
)

func newSquareCmd(cfg *config.Config) *cobra.Command {
	var detail bool

	cmd := &cobra.Command{
		Use:   "square <square|0..63>",
		Short: "Convert between square names and integers",
		Long: `Print the integer of a square name, or the name of an integer.
Squares are numbered file + 8*rank, so a1 is 0 and h8 is 63.

Example:
  chessindex square e4
  chessindex square --detail 28`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sq chess.Square
			var err error
			n, numErr := strconv.Atoi(args[0])
			if numErr == nil {
				sq, err = chess.SquareFromInt(n)
			} else {
				sq, err = chess.ParseSquare(args[0])
			}
			if err != nil {
				return err
			}

			switch {
			case detail:
				_, err = fmt.Fprintf(cfg.OutputFile, "%s %d file=%d rank=%d diagonal=%d antidiagonal=%d\n",
					sq, sq.Int(), sq.File(), sq.Rank(), sq.Diagonal(), sq.AntiDiagonal())
			case numErr == nil:
				_, err = fmt.Fprintln(cfg.OutputFile, sq)
			default:
				_, err = fmt.Fprintln(cfg.OutputFile, sq.Int())
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&detail, "detail", "d", false, "also print file, rank and diagonals")
	return cmd
}

func newMaterialCmd(cfg *config.Config) *cobra.Command {
	var side string

	cmd := &cobra.Command{
		Use:   "material <fen>",
		Short: "Print the material signature of each side",
		Long: `Print the material signature of a position: one slot each for the
queen, two rooks, two bishops, two knights and eight pawns, with '.' for
an empty slot. Kings are not counted.

Example:
  chessindex material --side w "r3k2r/8/8/8/8/8/8/4K3 w - - 0 1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := position.Decode(args[0])
			if err != nil {
				return err
			}

			if side != "" {
				c, err := chess.ParseColour(side)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cfg.OutputFile, p.Material(c))
				return err
			}
			_, err = fmt.Fprintf(cfg.OutputFile, "white %s\nblack %s\n", p.Material(chess.White), p.Material(chess.Black))
			return err
		},
	}

	cmd.Flags().StringVarP(&side, "side", "s", "", "only this side: w or b")
	return cmd
}
