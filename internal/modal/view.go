package modal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/formmodal/internal/form"
	"github.com/smileynet/formmodal/internal/mouse"
)

// boxChrome is the columns consumed by the border and horizontal padding.
const boxChrome = 4

// screen is one rendered frame plus the hit regions measured from it.
type screen struct {
	body string
	hits *mouse.HitMap
}

// block is a rendered box with regions relative to its top-left cell.
type block struct {
	view    string
	regions []mouse.Region
}

// lines accumulates fixed-width rows for a box interior and remembers
// which rows each piece landed on.
type lines struct {
	width int
	rows  []string
}

// add wraps s to the box width and returns the first row and row count.
func (l *lines) add(s string) (row, n int) {
	rendered := lipgloss.NewStyle().Width(l.width).Render(s)
	parts := strings.Split(rendered, "\n")
	row = len(l.rows)
	l.rows = append(l.rows, parts...)
	return row, len(parts)
}

func (l *lines) String() string {
	return strings.Join(l.rows, "\n")
}

// boxWidth is the dialog's outer width, clamped to the terminal.
func (m Model) boxWidth() int {
	w := m.ui.Width
	if m.width > 0 && m.width < w {
		w = m.width
	}
	return w
}

// innerWidth is the text width inside the dialog border and padding.
func (m Model) innerWidth() int {
	return max(m.boxWidth()-boxChrome, 1)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return m.render().body
}

// render lays out the frame and measures hit regions from the same
// strings that are drawn.
func (m Model) render() screen {
	hits := mouse.NewHitMap()
	toast := m.viewToast()
	helpView := lipgloss.NewStyle().MaxWidth(m.width).Render(m.help.View(m.helpKeys()))
	mainHeight := m.height - lipgloss.Height(helpView)
	if toast != "" {
		mainHeight -= lipgloss.Height(toast)
	}
	mainHeight = max(mainHeight, 1)

	var b block
	switch {
	case m.notices.alerting():
		b = m.viewAlert()
	case m.open:
		b = m.viewDialog()
	default:
		b = m.viewTrigger()
	}

	bw, bh := lipgloss.Width(b.view), lipgloss.Height(b.view)
	x := max((m.width-bw)/2, 0)
	y := max((mainHeight-bh)/2, 0)
	if m.open || m.notices.alerting() {
		hits.Add(regionContent, mouse.Rect{X: x, Y: y, W: bw, H: bh}, nil)
	}
	for _, r := range b.regions {
		r.Rect.X += x
		r.Rect.Y += y
		hits.Add(r.ID, r.Rect, r.Data)
	}

	parts := []string{lipgloss.Place(m.width, mainHeight, lipgloss.Center, lipgloss.Center, b.view)}
	if toast != "" {
		parts = append(parts, toast)
	}
	parts = append(parts, helpView)
	return screen{
		body: lipgloss.JoinVertical(lipgloss.Left, parts...),
		hits: hits,
	}
}

// helpKeys returns the key map for the current state.
func (m Model) helpKeys() help.KeyMap {
	switch {
	case m.notices.alerting():
		return AlertKeyMap()
	case m.open:
		return OpenKeyMap()
	default:
		return ClosedKeyMap()
	}
}

// viewTrigger renders the "Open Form" control shown while closed.
func (m Model) viewTrigger() block {
	btn := buttonFocusedStyle.Render("Open Form")
	return block{
		view: btn,
		regions: []mouse.Region{{
			ID:   regionTrigger,
			Rect: mouse.Rect{W: lipgloss.Width(btn), H: lipgloss.Height(btn)},
		}},
	}
}

// viewDialog renders the open dialog. Interior row r sits at box row r+1
// and interior columns start at box column 2.
func (m Model) viewDialog() block {
	inner := m.innerWidth()
	l := &lines{width: inner}
	var regions []mouse.Region

	// The title is cut to leave room for a space and the close control,
	// so the title row never wraps.
	title := titleStyle.MaxWidth(max(inner-2, 1)).Render(m.ui.Title)
	gap := max(inner-lipgloss.Width(title)-1, 1)
	closeCol := lipgloss.Width(title) + gap
	l.add(title + strings.Repeat(" ", gap) + closeStyle.Render("×"))
	regions = append(regions, mouse.Region{
		ID:   regionClose,
		Rect: mouse.Rect{X: 2 + closeCol, Y: 1, W: 2, H: 1},
	})
	l.add("")

	for i, f := range form.Fields {
		row, n := l.add(labelStyle.Render(f.Label() + ":"))
		_, in := l.add(m.inputs[i].View())
		regions = append(regions, mouse.Region{
			ID:   regionField,
			Rect: mouse.Rect{X: 2, Y: 1 + row, W: inner, H: n + in},
			Data: i,
		})
		if msg, ok := m.errs[f]; ok {
			l.add(errorStyle.Render(msg))
		}
		if f == form.FieldUsername && m.required {
			l.add(hintStyle.Render(form.MsgRequired))
		}
	}
	l.add("")

	style := buttonStyle
	if m.focus == len(m.inputs) {
		style = buttonFocusedStyle
	}
	btn := style.Render("Submit")
	row, n := l.add(btn)
	regions = append(regions, mouse.Region{
		ID:   regionSubmit,
		Rect: mouse.Rect{X: 2, Y: 1 + row, W: lipgloss.Width(btn), H: n},
	})

	return block{
		view:    ModalBorder().Width(inner + 2).Render(l.String()),
		regions: regions,
	}
}

// viewAlert renders the head of the notification queue as a blocking box.
func (m Model) viewAlert() block {
	head := m.notices.head()
	inner := m.innerWidth()
	l := &lines{width: inner}

	l.add(head.text)
	l.add("")
	btn := buttonFocusedStyle.Render("OK")
	row, n := l.add(btn)
	if rest := len(m.notices.queue) - 1; rest > 0 {
		l.add(hintStyle.Render(fmt.Sprintf("%d more", rest)))
	}

	return block{
		view: alertBorder(head.kind).Width(inner + 2).Render(l.String()),
		regions: []mouse.Region{{
			ID:   regionAlertOK,
			Rect: mouse.Rect{X: 2, Y: 1 + row, W: lipgloss.Width(btn), H: n},
		}},
	}
}

// viewToast renders queued notices as status lines in toast mode.
func (m Model) viewToast() string {
	if !m.notices.toasting() {
		return ""
	}
	out := make([]string, len(m.notices.queue))
	for i, n := range m.notices.queue {
		out[i] = toastStyle(n.kind).Width(m.width).Render(n.text)
	}
	return strings.Join(out, "\n")
}
