package ui

import (
	"strings"

	"github.com/idilsaglam/persons/internal/view"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Warning, Info string
	CornerTL, CornerTR, CornerBL, CornerBR              string
	H, V                                                string
	SymOK, SymFail, SymWarn                             string
}

var current = classic()

func classic() Theme {
	return Theme{
		Title: bold, Muted: fgGray, Accent: fgBlue,
		Success: fgGreen, Error: fgRed, Warning: fgYellow, Info: fgCyan,
		CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
		H: "─", V: "│",
		SymOK: "✔", SymFail: "✖", SymWarn: "⚠",
	}
}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Warning: "\033[93m", Info: "\033[96m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymOK: "✔", SymFail: "✖", SymWarn: "⚠",
		}
	case "mono":
		disableColor = true
		current = Theme{
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymOK: "ok", SymFail: "x", SymWarn: "!",
		}
	default: // classic
		current = classic()
	}
}

// Expose what renderers need
func Current() Theme { return current }

// BadgeColor maps an age bucket onto the theme palette.
func BadgeColor(b view.Badge) string {
	switch b {
	case view.BadgeInfo:
		return current.Info
	case view.BadgeSuccess:
		return current.Success
	case view.BadgeWarning:
		return current.Warning
	default:
		return current.Error
	}
}
