package modal

import tea "github.com/charmbracelet/bubbletea"

// listener tracks terminal mouse reporting, the one global resource the
// dialog holds. It is enabled once per mount and disabled once per unmount;
// repeated attach or detach calls return nil.
type listener struct {
	enabled  bool
	attached bool
	attaches int
	detaches int
}

func (l *listener) attach() tea.Cmd {
	if !l.enabled || l.attached {
		return nil
	}
	l.attached = true
	l.attaches++
	return tea.EnableMouseCellMotion
}

func (l *listener) detach() tea.Cmd {
	if !l.attached {
		return nil
	}
	l.attached = false
	l.detaches++
	return tea.DisableMouse
}
