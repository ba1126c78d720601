package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/bank"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show best score, recent attempts and category accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		stats, err := d.stats.Load(cmd.Context(), d.baseline())
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		out := cmd.OutOrStdout()
		if stats.Best != nil {
			fmt.Fprintf(out, "Best score:  %d / %d\n", stats.Best.Score, stats.Best.Total)
		} else {
			fmt.Fprintln(out, "Best score:  --")
		}
		fmt.Fprintf(out, "Sessions:    %d\n", len(stats.History))

		recent := stats.Recent(limit)
		if len(recent) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Recent Attempts")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			fmt.Fprintf(out, "%-16s  %-9s  %-14s  %7s  %6s\n", "When", "Mode", "Focus", "Score", "%")
			fmt.Fprintln(out, strings.Repeat("─", 60))
			for _, a := range recent {
				fmt.Fprintf(out, "%-16s  %-9s  %-14s  %3d/%-3d  %5.0f%%\n",
					a.Timestamp.Local().Format("2006-01-02 15:04"),
					a.Mode,
					truncate(d.bank.FocusLabel(bank.Focus(a.Focus)), 14),
					a.Score, a.Total,
					a.Percent(),
				)
			}
		}

		cats := d.bank.CategoryKeys()
		weights := stats.PerCategory.Weights(cats)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Categories")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		fmt.Fprintf(out, "%-24s  %8s  %9s  %7s\n", "Category", "Answered", "Accuracy", "Weight")
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, c := range cats {
			st := stats.PerCategory.Get(c)
			acc := "--"
			if st.Total > 0 {
				acc = fmt.Sprintf("%.0f%%", st.Accuracy())
			}
			fmt.Fprintf(out, "%-24s  %8d  %9s  %7.2f\n",
				truncate(d.bank.Label(c), 24), st.Total, acc, weights[c])
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 10, "Number of recent attempts to show")
}
