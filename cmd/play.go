package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a session straight away",
	Long: `Start an exam or practice session without going through the menu.
Flags left unset fall back to EXAMIZ_MODE, EXAMIZ_FOCUS and EXAMIZ_COUNT.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, func(defaults session.Options, b *bank.Bank) (session.Options, error) {
			return playOptions(cmd, defaults, b)
		})
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(c *cobra.Command) {
	c.Flags().StringP("mode", "m", "exam", "Session mode: exam or practice")
	c.Flags().StringP("focus", "f", "smart", "Focus: smart, all, or a category key")
	c.Flags().IntP("count", "c", session.DefaultCount, "Number of questions")
}

// playOptions applies the flags the user set on top of the configured defaults.
func playOptions(cmd *cobra.Command, defaults session.Options, b *bank.Bank) (session.Options, error) {
	opts := defaults
	flags := cmd.Flags()
	if flags.Changed("mode") {
		s, _ := flags.GetString("mode")
		m, err := session.ParseMode(s)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if flags.Changed("focus") {
		s, _ := flags.GetString("focus")
		f, err := bank.ParseFocus(s, b)
		if err != nil {
			return opts, err
		}
		opts.Focus = f
	}
	if flags.Changed("count") {
		n, _ := flags.GetInt("count")
		if n <= 0 {
			return opts, fmt.Errorf("--count must be positive, got %d", n)
		}
		opts.Count = n
	}
	return opts, nil
}
