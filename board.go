package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tinyboards/internal/game"
	"tinyboards/internal/queens"
	"tinyboards/internal/sandbox"
)

var boardLevel int

func init() {
	boardCmd := &cobra.Command{
		Use:   "board queens|chess",
		Short: "Print the starting board of a game",
		Long: `Print the starting board of a game to stdout.

Examples:
  tinyboards board queens --level 3
  tinyboards board chess`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{game.KindQueens, game.KindChess},
		RunE:      runBoard,
	}
	boardCmd.Flags().IntVarP(&boardLevel, "level", "l", 1, "Queens level to print")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case game.KindQueens:
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		levels, err := loadLevels(cfg.LevelsFile)
		if err != nil {
			return err
		}
		p := queens.New(levels)
		if err := p.CreateBoard(boardLevel); err != nil {
			return err
		}
		fmt.Fprintf(out, "level %d of %d, %d blocked\n", p.Level(), p.MaxLevel(), levels[p.Level()-1].BlockedCount())
		fmt.Fprint(out, p.String())
	case game.KindChess:
		g := sandbox.New()
		b := g.Board()
		fmt.Fprint(out, b.Draw())
		fmt.Fprintln(out)
		fmt.Fprint(out, b.String())
		fmt.Fprintln(out, g.FEN())
	default:
		return fmt.Errorf("unknown game %q, want queens or chess", args[0])
	}
	return nil
}
