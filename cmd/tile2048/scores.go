package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Princic-1837592/2048/internal/platform/tui"
	"github.com/Princic-1837592/2048/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Show high scores for a board size",
	Long: `Display high scores for a board size such as 4x4.
The board defaults to the configured size.

In a terminal the interactive score table opens; use tab to switch boards.
--plain (or piping the output) prints the top scores instead.

Examples:
  tile2048 scores
  tile2048 scores 5x5 --plain
  tile2048 scores 3x3 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print scores instead of opening the score table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the board")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to print")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	board := storage.BoardKey(cfg.Board.Height, cfg.Board.Width)
	if len(args) == 1 {
		board = args[0]
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(board); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", board)
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, board, width, height)
	}

	return printScores(store, board)
}

func printScores(store *storage.Store, board string) error {
	scores, err := store.TopScores(board, flagLimit)
	if err != nil {
		return fmt.Errorf("cannot retrieve scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", board)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tile2048 play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-5s  %s\n", "Rank", "Player", "Score", "Tile", "ID", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-6s  %-5s  %s\n", "----", "------", "-----", "----", "--", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-8d  %-6d  %-5d  %s\n",
			i+1, e.Player, e.Score, e.MaxTile, e.ID, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetBoardStats(board)
	if err == nil && stats != nil {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %d  Best tile: %d  Average: %.0f\n",
			stats.GamesCount, stats.HighScore, stats.BestTile, stats.AvgScore)
	}
	return nil
}
