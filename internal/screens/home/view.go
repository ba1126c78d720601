package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/screens/welcome"
	"github.com/abhisek/examiz/internal/ui/theme"
)

func centered(s string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(s)
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true)

	if compact {
		return centered(style.Render(welcome.BannerCompact), cw)
	}
	return centered(style.Render(welcome.BannerArt), cw)
}

func renderMascotBox(v MascotVariant, cw int) string {
	return centered(RenderMascot(v), cw)
}

// renderStatsBar renders best score, attempt count and weakest category in
// a double-bordered box matching content width.
func renderStatsBar(s statsSummary, cw int, compact bool) string {
	bestStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	weakStyle := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	switch {
	case !s.loaded:
		line = dimStyle.Render("loading stats...")
	case compact:
		line = fmt.Sprintf("%s %s %s",
			bestStyle.Render("★"+bestText(s)),
			countStyle.Render(fmt.Sprintf("#%d", s.attempts)),
			weakStyle.Render("▼"+s.weakest),
		)
	default:
		line = fmt.Sprintf("%s  %s  %s",
			bestStyle.Render("★ BEST "+bestText(s)),
			countStyle.Render(fmt.Sprintf("# %d RUNS", s.attempts)),
			weakStyle.Render("▼ "+s.weakest),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Info).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

func bestText(s statsSummary) string {
	if s.best == nil {
		return "--"
	}
	return fmt.Sprintf("%d/%d", s.best.Score, s.best.Total)
}

func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("Stats unavailable: " + msg)
}
