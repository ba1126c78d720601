package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/profile"
	"github.com/abhisek/examiz/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // no attempts yet, or a middling one
	MascotCelebrating                      // last attempt scored 80% or more
	MascotAlert                            // last attempt scored under 50%
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ A?B │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ A✓B │
└─╥═╥─┘
  ╚═╝`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ A✗B │
└─────┘`

// mascotFor picks the variant from the most recent attempt.
func mascotFor(stats *profile.Stats) MascotVariant {
	if stats == nil {
		return MascotIdle
	}
	recent := stats.Recent(1)
	if len(recent) == 0 {
		return MascotIdle
	}
	switch p := recent[0].Percent(); {
	case p >= 80:
		return MascotCelebrating
	case p < 50:
		return MascotAlert
	}
	return MascotIdle
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Gold
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
