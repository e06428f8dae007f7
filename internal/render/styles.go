package render

import "github.com/charmbracelet/lipgloss"

var (
	colorFolder = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#f2f2f2"}
	colorAccent = lipgloss.Color("#8BC34A")
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6a737d", Dark: "#8b949e"}
	colorTag    = lipgloss.Color("#2196F3")
	colorMS     = lipgloss.Color("#FFC107")
)

// Styles holds the lipgloss styles used by the text renderer and the
// interactive browser.
type Styles struct {
	Folder     lipgloss.Style
	Count      lipgloss.Style
	Item       lipgloss.Style
	Tag        lipgloss.Style
	MarkScheme lipgloss.Style
	Link       lipgloss.Style
	Enumerator lipgloss.Style
	Empty      lipgloss.Style
	Selected   lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Folder:     lipgloss.NewStyle().Bold(true).Foreground(colorFolder),
		Count:      lipgloss.NewStyle().Foreground(colorMuted),
		Item:       lipgloss.NewStyle(),
		Tag:        lipgloss.NewStyle().Foreground(colorTag),
		MarkScheme: lipgloss.NewStyle().Bold(true).Foreground(colorMS),
		Link:       lipgloss.NewStyle().Foreground(colorMuted).Underline(true),
		Enumerator: lipgloss.NewStyle().Foreground(colorMuted).PaddingRight(1),
		Empty:      lipgloss.NewStyle().Italic(true).Foreground(colorMuted),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
	}
}

// PlainStyles returns styles that add no escape sequences.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Folder:     plain,
		Count:      plain,
		Item:       plain,
		Tag:        plain,
		MarkScheme: plain,
		Link:       plain,
		Enumerator: plain.PaddingRight(1),
		Empty:      plain,
		Selected:   plain,
	}
}
