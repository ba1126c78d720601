package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/examiz/internal/llm"
	"github.com/abhisek/examiz/internal/logging"
	"github.com/abhisek/examiz/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged LLM calls",
	Long:  "Every explanation and draft request is logged to the event store. These commands read that log.",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failedOnly, _ := cmd.Flags().GetBool("failed")
		switch purpose {
		case "", llm.PurposeExplain, llm.PurposeDraft:
		default:
			return fmt.Errorf("unknown purpose %q (want %s or %s)", purpose, llm.PurposeExplain, llm.PurposeDraft)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		// Filters apply after the query, so fetch everything when one is set.
		opts := store.QueryOpts{Limit: limit}
		if purpose != "" || failedOnly {
			opts.Limit = 0
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		out := cmd.OutOrStdout()
		shown := 0
		for _, e := range events {
			if limit > 0 && shown == limit {
				break
			}
			if (purpose != "" && e.Purpose != purpose) || (failedOnly && e.Success) {
				continue
			}
			if shown == 0 {
				fmt.Fprintf(out, "%5s  %-16s  %-8s  %-28s  %6s  %6s  %7s  %s\n",
					"ID", "When", "Purpose", "Model", "In", "Out", "Ms", "OK")
				rule(out, 96)
			}
			mark := "✓"
			if !e.Success {
				mark = "✗"
			}
			fmt.Fprintf(out, "%5d  %-16s  %-8s  %-28s  %6d  %6d  %7d  %s\n",
				e.ID, e.Timestamp.Local().Format("2006-01-02 15:04"), e.Purpose,
				truncate(e.Model, 28), e.InputTokens, e.OutputTokens, e.LatencyMs, mark)
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(out, "No matching LLM calls.")
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no LLM call with ID %d", id)
		}

		out := cmd.OutOrStdout()
		field := func(k, v string) { fmt.Fprintf(out, "%-10s %s\n", k+":", v) }
		field("ID", strconv.Itoa(e.ID))
		field("Time", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		field("Provider", e.Provider)
		field("Model", e.Model)
		field("Purpose", e.Purpose)
		field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
		field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
		if e.Success {
			field("Result", "ok")
		} else {
			field("Result", "failed: "+e.ErrorMessage)
		}

		section(out, "REQUEST", e.RequestBody)
		section(out, "RESPONSE", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM usage recorded yet.")
			return nil
		}

		fmt.Fprintln(out, "By purpose")
		rule(out, 64)
		var calls, in, outTok int
		for _, u := range byPurpose {
			fmt.Fprintf(out, "%-10s  %5d calls  %9d in  %9d out  %6d ms avg\n",
				u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			calls += u.Calls
			in += u.InputTokens
			outTok += u.OutputTokens
		}
		rule(out, 64)
		fmt.Fprintf(out, "%-10s  %5d calls  %9d in  %9d out\n", "total", calls, in, outTok)

		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(byModel) == 0 {
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Estimated cost (USD)")
		rule(out, 64)
		var total float64
		var unpriced []string
		for _, u := range byModel {
			price := "?"
			if c := llm.LookupCost(u.Model); c != nil {
				usd := c.Cost(u.InputTokens, u.OutputTokens)
				total += usd
				price = formatCost(usd)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			fmt.Fprintf(out, "%-36s  %5d calls  %10s\n", truncate(u.Model, 36), u.Calls, price)
		}
		rule(out, 64)
		label := "total"
		if len(unpriced) > 0 {
			label = "total (excluding unpriced models)"
		}
		fmt.Fprintf(out, "%-36s  %16s\n", label, formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "\nNo pricing for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

// openStore opens only the event store; the llm commands need no bank.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath, logging.Nop())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

// section prints a titled body, indenting it when it is JSON.
func section(w io.Writer, title, body string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	rule(w, 60)
	if body == "" {
		fmt.Fprintln(w, "(not captured)")
		return
	}
	var pretty bytes.Buffer
	if json.Indent(&pretty, []byte(body), "", "  ") == nil {
		body = pretty.String()
	}
	fmt.Fprintln(w, body)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls for this purpose (explain, draft)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed calls")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
