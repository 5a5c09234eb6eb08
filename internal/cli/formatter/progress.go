package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clampRatio(pct)
	return fmt.Sprintf("[%s] %3.0f%%", progressStyle(pct).Render(progressBlocks(pct, width)), pct*100)
}

// RenderCompactBar renders only the colored blocks, without brackets or the
// percentage. Dimmed bars are used for projects that are no longer active.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct = clampRatio(pct)
	bar := progressBlocks(pct, width)
	if dim {
		return StyleDim.Render(bar)
	}
	return progressStyle(pct).Render(bar)
}

func clampRatio(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func progressBlocks(pct float64, width int) string {
	if width < 2 {
		width = 2
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func progressStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 0.33:
		return StyleRed
	case pct < 0.66:
		return StyleYellow
	default:
		return StyleGreen
	}
}
