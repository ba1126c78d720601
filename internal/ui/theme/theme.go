// Package theme holds the colour palette shared by every screen.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette. Screens build their own styles from these.
var (
	Primary   = lipgloss.Color("#6366F1") // indigo: brand, focus
	Secondary = lipgloss.Color("#0EA5E9") // sky: secondary headings
	Accent    = lipgloss.Color("#F59E0B") // amber: scores, status
	Gold      = lipgloss.Color("#FDE047") // best score, highlights
	Info      = lipgloss.Color("#67E8F9") // tutor panel

	Success = lipgloss.Color("#10B981")
	Error   = lipgloss.Color("#EF4444")

	Text    = lipgloss.Color("#F1F5F9")
	TextDim = lipgloss.Color("#8C9AAF")
	BgDark  = lipgloss.Color("#111827")
	BgCard  = lipgloss.Color("#1F2937")
	Border  = lipgloss.Color("#374151")
)
