// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for the browse screen
const (
	// Card dimensions. CardWidth is the outer width including border.
	CardWidth       = 34
	CardBorderWidth = 2
	CardPaddingH    = 1
	OverviewLines   = 3
	GridGutter      = 1

	// Screen regions
	HeaderHeight    = 3
	SearchBarHeight = 3
	StatusBarHeight = 1
	FooterHeight    = 2

	// Responsive breakpoints
	MinimumTerminalWidth  = 40
	MinimumTerminalHeight = 16
	CompactModeWidth      = 80

	// Grid bounds
	MaxGridColumns = 5

	// Detail overlay sizing
	OverlayWidthRatio  = 0.7
	OverlayHeightRatio = 0.8
	MinOverlayWidth    = 40
	MinOverlayHeight   = 10
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// GridHeight returns the vertical space left for the card grid
func (l LayoutConfig) GridHeight() int {
	return l.TerminalHeight - HeaderHeight - SearchBarHeight - StatusBarHeight - FooterHeight
}

// ColumnsForWidth returns how many cards fit side by side
func ColumnsForWidth(totalWidth int) int {
	cols := totalWidth / (CardWidth + GridGutter)
	if cols < 1 {
		return 1
	}
	if cols > MaxGridColumns {
		return MaxGridColumns
	}
	return cols
}

// CardContentWidth returns the text width inside a card border
func CardContentWidth() int {
	return CardWidth - CardBorderWidth - CardPaddingH*2
}

// GridRows returns how many rows a card count occupies
func GridRows(cardCount, columns int) int {
	if cardCount <= 0 || columns <= 0 {
		return 0
	}
	return (cardCount + columns - 1) / columns
}

// OverlaySize returns the detail overlay dimensions for a terminal size
func OverlaySize(termWidth, termHeight int) (width, height int) {
	width = int(float64(termWidth) * OverlayWidthRatio)
	if width < MinOverlayWidth {
		width = MinOverlayWidth
	}
	if width > termWidth {
		width = termWidth
	}
	height = int(float64(termHeight) * OverlayHeightRatio)
	if height < MinOverlayHeight {
		height = MinOverlayHeight
	}
	if height > termHeight {
		height = termHeight
	}
	return width, height
}
