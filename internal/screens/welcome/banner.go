package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examiz/internal/ui/theme"
)

// BannerArt is the block-letter title shared with the home screen.
const BannerArt = ` ███████╗██╗  ██╗ █████╗ ███╗   ███╗██╗███████╗
 ██╔════╝╚██╗██╔╝██╔══██╗████╗ ████║██║╚══███╔╝
 █████╗   ╚███╔╝ ███████║██╔████╔██║██║  ███╔╝
 ██╔══╝   ██╔██╗ ██╔══██║██║╚██╔╝██║██║ ███╔╝
 ███████╗██╔╝ ██╗██║  ██║██║ ╚═╝ ██║██║███████╗
 ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝╚══════╝`

// BannerCompact is the fallback for narrow terminals.
const BannerCompact = "E · X · A · M · I · Z"

// RenderBanner returns the banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 52 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 52 {
		return style.Render(BannerCompact)
	}
	return style.Render(BannerArt)
}
