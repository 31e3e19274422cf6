package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/younwookim/starcatch/internal/infrastructure/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores for a stage.

Examples:
  starcatch scores
  starcatch scores --stage level1 --limit 5
  starcatch scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the stage")
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("214"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	out := cmd.OutOrStdout()
	if flagClear {
		if err := store.ClearScores(flagStage); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Cleared scores for %s\n", flagStage)
		return nil
	}

	entries, err := store.TopScores(flagStage, flagLimit)
	if err != nil {
		return err
	}

	_, err = io.WriteString(out, renderScores(flagStage, entries, isTerminal(out)))
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderScores formats the score list, as a styled table on a terminal
// and as plain aligned text otherwise.
func renderScores(stage string, entries []storage.ScoreEntry, styled bool) string {
	var b strings.Builder

	title := "High Scores - " + stage
	if styled {
		title = titleStyle.Render(title)
	}
	b.WriteString(title + "\n\n")

	if len(entries) == 0 {
		b.WriteString("No scores recorded yet.\n")
		return b.String()
	}

	if !styled {
		fmt.Fprintf(&b, "  %-4s  %-10s  %-20s  %s\n", "Rank", "Score", "Seed", "Date")
		fmt.Fprintf(&b, "  %-4s  %-10s  %-20s  %s\n", "----", "-----", "----", "----")
		for i, e := range entries {
			fmt.Fprintf(&b, "  %-4d  %-10d  %-20d  %s\n", i+1, e.Score, e.Seed, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		return b.String()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("RANK", "SCORE", "SEED", "DATE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle
			case 0:
				return bestStyle
			default:
				return cellStyle
			}
		})
	for i, e := range entries {
		t.Row(
			strconv.Itoa(i+1),
			strconv.Itoa(e.Score),
			strconv.FormatInt(e.Seed, 10),
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	b.WriteString(t.Render() + "\n")
	return b.String()
}
