package modal

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dimColor    = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	errorColor  = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}
	okColor     = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle()
	closeStyle = lipgloss.NewStyle().Foreground(dimColor)
	errorStyle = lipgloss.NewStyle().Foreground(errorColor)
	hintStyle  = lipgloss.NewStyle().Foreground(dimColor).Italic(true)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "252"}).
			Background(lipgloss.AdaptiveColor{Light: "252", Dark: "238"}).
			Padding(0, 2)

	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(accentColor).
				Bold(true).
				Padding(0, 2)
)

// ModalBorder returns the rounded border around the dialog.
func ModalBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accentColor).
		Padding(0, 1)
}

// alertBorder returns the border for a blocking alert, colored by kind.
func alertBorder(kind noticeKind) lipgloss.Style {
	c := okColor
	if kind == noticeError {
		c = errorColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(c).
		Padding(0, 1)
}

// toastStyle returns the status line style for a notice kind.
func toastStyle(kind noticeKind) lipgloss.Style {
	if kind == noticeError {
		return errorStyle
	}
	return lipgloss.NewStyle().Foreground(okColor)
}
