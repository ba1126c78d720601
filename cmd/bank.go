package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/tutor"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect, validate and extend question banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and question counts of the active bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b, err := bank.LoadOrDefault(cfg.BankPath)
		if err != nil {
			return fmt.Errorf("load bank: %w", err)
		}

		out := cmd.OutOrStdout()
		source := cfg.BankPath
		if source == "" {
			source = "(embedded)"
		}
		fmt.Fprintf(out, "Bank:      %s\n", source)
		fmt.Fprintf(out, "Version:   %s\n", b.Version)
		fmt.Fprintf(out, "Questions: %d\n\n", b.Len())

		counts := b.CountByCategory()
		fmt.Fprintf(out, "%-16s  %-28s  %5s  %5s  %5s  %5s\n", "Key", "Label", "Easy", "Med", "Hard", "Total")
		fmt.Fprintln(out, strings.Repeat("─", 76))
		for _, c := range b.CategoryKeys() {
			byDiff := map[bank.Difficulty]int{}
			for _, q := range b.ByCategory(c) {
				byDiff[q.Difficulty]++
			}
			fmt.Fprintf(out, "%-16s  %-28s  %5d  %5d  %5d  %5d\n",
				truncate(string(c), 16), truncate(b.Label(c), 28),
				byDiff[bank.DifficultyEasy], byDiff[bank.DifficultyMedium], byDiff[bank.DifficultyHard],
				counts[c])
		}
		return nil
	},
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML question bank for schema and content errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := bank.Load(args[0])
		if err != nil {
			var verr *bank.ValidationError
			if errors.As(err, &verr) {
				for _, p := range verr.Problems {
					fmt.Fprintln(cmd.ErrOrStderr(), "  -", p)
				}
				return fmt.Errorf("%s: %d problem(s)", args[0], len(verr.Problems))
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d questions in %d categories)\n",
			args[0], b.Len(), len(b.Categories))
		return nil
	},
}

var bankGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft new questions with the configured LLM provider",
	Long: `Generate asks the LLM for new questions in one category, checks each draft
and appends the accepted ones to the active bank. The merged bank is written
to --out, or to stdout when --out is not set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		catKey, _ := flags.GetString("category")
		count, _ := flags.GetInt("count")
		diff, _ := flags.GetString("difficulty")
		outPath, _ := flags.GetString("out")

		if count <= 0 || count > tutor.MaxDraftCount {
			return fmt.Errorf("--count must be between 1 and %d", tutor.MaxDraftCount)
		}
		difficulty := bank.Difficulty(diff)
		if !validDifficulty(difficulty) {
			return fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", diff)
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		cat := bank.Category(catKey)
		if !d.bank.HasCategory(cat) {
			return fmt.Errorf("unknown category %q (see 'examiz bank list')", catKey)
		}

		ctx := cmd.Context()
		p, llmCfg, ok, err := d.provider(ctx)
		if err != nil {
			return fmt.Errorf("llm provider: %w", err)
		}
		if !ok {
			return errors.New("no LLM provider configured; set EXAMIZ_LLM_PROVIDER or an API key such as ANTHROPIC_API_KEY")
		}

		existing := make([]string, 0, d.bank.Len())
		for _, q := range d.bank.Questions {
			existing = append(existing, q.Text)
		}

		cfg := tutor.DefaultDraftConfig()
		cfg.Timeout = llmCfg.Timeout
		res, err := tutor.NewDrafter(p, cfg, d.logger).Draft(ctx, tutor.DraftInput{
			Category:      cat,
			CategoryLabel: d.bank.Label(cat),
			Difficulty:    difficulty,
			Count:         count,
			Existing:      existing,
		})
		if err != nil {
			return err
		}
		for _, r := range res.Rejected {
			fmt.Fprintln(cmd.ErrOrStderr(), "rejected:", r)
		}
		if len(res.Questions) == 0 {
			return errors.New("no drafts passed validation")
		}

		merged, err := d.bank.WithQuestions(res.Questions)
		if err != nil {
			return fmt.Errorf("merge drafts: %w", err)
		}
		data, err := bank.Marshal(merged)
		if err != nil {
			return err
		}

		if outPath == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write bank: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Added %d question(s) to %s (%d total).\n",
			len(res.Questions), outPath, merged.Len())
		return nil
	},
}

func validDifficulty(d bank.Difficulty) bool {
	for _, known := range bank.AllDifficulties() {
		if d == known {
			return true
		}
	}
	return false
}

func init() {
	bankGenerateCmd.Flags().String("category", "", "Category key to draft questions for")
	bankGenerateCmd.Flags().IntP("count", "c", 5, "Number of questions to draft")
	bankGenerateCmd.Flags().String("difficulty", string(bank.DifficultyMedium), "Difficulty: easy, medium or hard")
	bankGenerateCmd.Flags().StringP("out", "o", "", "Write the merged bank here instead of stdout")
	_ = bankGenerateCmd.MarkFlagRequired("category")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankGenerateCmd)
}
