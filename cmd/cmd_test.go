package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examiz/internal/bank"
	"github.com/abhisek/examiz/internal/session"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("EXAMIZ_STATS_BACKEND", "sqlite")
	t.Setenv("EXAMIZ_LOG_FILE", filepath.Join(dir, "examiz.log"))
	t.Setenv("EXAMIZ_BANK", "")
	return dir
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "examiz "))
}

func TestBankValidate_EmbeddedBankRoundTrips(t *testing.T) {
	b, err := bank.Default()
	require.NoError(t, err)
	data, err := bank.Marshal(b)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bank.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	out, err := execute(t, "", "bank", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (")
}

func TestBankValidate_ReportsProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"\"\n"), 0o644))

	_, err := execute(t, "", "bank", "validate", path)
	assert.Error(t, err)
}

func TestReset_DeclinedPromptLeavesStats(t *testing.T) {
	isolateEnv(t)
	out, err := execute(t, "n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
}

func TestStats_FreshDatabase(t *testing.T) {
	dir := isolateEnv(t)
	out, err := execute(t, "", "--db", filepath.Join(dir, "examiz.db"), "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Best score:  --")
	assert.Contains(t, out, "Sessions:    0")
	assert.Contains(t, out, "Categories")
}

func TestValidDifficulty(t *testing.T) {
	assert.True(t, validDifficulty(bank.DifficultyHard))
	assert.False(t, validDifficulty("extreme"))
}

func TestLLMList_EmptyLog(t *testing.T) {
	dir := isolateEnv(t)
	out, err := execute(t, "", "--db", filepath.Join(dir, "llm.db"), "llm", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching LLM calls.")
}

func TestLLMList_RejectsUnknownPurpose(t *testing.T) {
	dir := isolateEnv(t)
	_, err := execute(t, "", "--db", filepath.Join(dir, "llm.db"), "llm", "list", "--purpose", "lesson")
	assert.ErrorContains(t, err, "unknown purpose")
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.50", formatCost(1.5))
}

func TestPlayOptions(t *testing.T) {
	b, err := bank.Default()
	require.NoError(t, err)
	defaults := session.Options{Mode: session.ModeExam, Focus: bank.FocusSmart, Count: session.DefaultCount}

	tests := []struct {
		name    string
		args    []string
		want    session.Options
		wantErr string
	}{
		{"defaults kept", nil, defaults, ""},
		{"overrides", []string{"--mode", "practice", "--focus", "all", "--count", "3"},
			session.Options{Mode: session.ModePractice, Focus: bank.FocusAll, Count: 3}, ""},
		{"zero count", []string{"--count", "0"}, session.Options{}, "--count must be positive"},
		{"negative count", []string{"--count=-2"}, session.Options{}, "--count must be positive"},
		{"unknown mode", []string{"--mode", "speedrun"}, session.Options{}, "unknown mode"},
		{"unknown focus", []string{"--focus", "astrology"}, session.Options{}, "astrology"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cobra.Command{Use: "play"}
			addPlayFlags(c)
			require.NoError(t, c.ParseFlags(tt.args))

			got, err := playOptions(c, defaults, b)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
