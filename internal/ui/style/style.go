// Package style maps message severities to the glyph and color that mark
// them on a terminal.
package style

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

// Tone is the presentation of one severity.
type Tone struct {
	Glyph string
	Color lipgloss.Color
}

var (
	// Done marks a finished step.
	Done = Tone{Glyph: "✓", Color: lipgloss.Color("#22A06B")}
	// Failed marks an error.
	Failed = Tone{Glyph: "✗", Color: lipgloss.Color("#D93025")}
	// Notice marks a warning the build survived.
	Notice = Tone{Glyph: "!", Color: lipgloss.Color("#F59E0B")}
	// Plain is used for everything else and carries no glyph.
	Plain = Tone{Color: lipgloss.Color("#667085")}
)

// Label prefixes msg with the tone's glyph.
func (t Tone) Label(msg string) string {
	if t.Glyph == "" {
		return msg
	}
	return t.Glyph + " " + msg
}

// ForLevel picks the tone for a log level.
func ForLevel(level slog.Level) Tone {
	switch {
	case level >= slog.LevelError:
		return Failed
	case level >= slog.LevelWarn:
		return Notice
	default:
		return Plain
	}
}
