package modal

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smileynet/formmodal/internal/config"
	"github.com/smileynet/formmodal/internal/form"
	"github.com/smileynet/formmodal/internal/mouse"
)

// Model is the root Bubble Tea model for the form dialog.
type Model struct {
	ui       config.UI
	logger   *zap.Logger
	now      func() time.Time
	onSubmit SubmitHandler

	width  int
	height int

	open     bool
	data     form.Data
	errs     form.Errors
	required bool // username left empty on an otherwise valid submit

	inputs []textinput.Model // Indexed like form.Fields.
	focus  int               // len(inputs) means the submit button.

	listener listener
	notices  notices
	help     help.Model
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithConfig applies UI and notification settings.
func WithConfig(cfg config.Config) Option {
	return func(m *Model) {
		m.ui = cfg.UI
		m.notices.mode = cfg.Notify.Mode
	}
}

// WithLogger sets the structured logger. Field values are never logged.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock sets the time source used for date of birth checks.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// WithSubmitHandler registers a callback for accepted submissions.
func WithSubmitHandler(fn SubmitHandler) Option {
	return func(m *Model) {
		m.onSubmit = fn
	}
}

// NewModel creates a closed dialog with empty fields.
func NewModel(opts ...Option) Model {
	cfg := config.DefaultConfig()
	m := Model{
		ui:     cfg.UI,
		logger: zap.NewNop(),
		now:    time.Now,
		errs:   form.Errors{},
		notices: notices{
			mode: cfg.Notify.Mode,
		},
		help: help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.listener.enabled = m.ui.Mouse
	m.inputs = newInputs(m.innerWidth())
	return m
}

func newInputs(width int) []textinput.Model {
	inputs := make([]textinput.Model, len(form.Fields))
	for i, f := range form.Fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Width = max(width-3, 1)
		switch f {
		case form.FieldEmail:
			ti.Placeholder = "name@example.com"
		case form.FieldPhone:
			ti.Placeholder = "10 digits"
		case form.FieldDOB:
			ti.Placeholder = "YYYY-MM-DD"
		}
		inputs[i] = ti
	}
	return inputs
}

// IsOpen reports whether the dialog is shown.
func (m Model) IsOpen() bool {
	return m.open
}

// Data returns the current form record.
func (m Model) Data() form.Data {
	return m.data
}

// Errors returns the errors from the last rejected submit.
func (m Model) Errors() form.Errors {
	return m.errs
}

// Pending returns the queued notification texts in display order.
func (m Model) Pending() []string {
	return m.notices.texts()
}

// Listening reports whether terminal mouse reporting is enabled.
func (m Model) Listening() bool {
	return m.listener.attached
}

// Init mounts the dialog.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return mountMsg{} }
}

// Update handles incoming messages with state-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mountMsg:
		cmd := m.listener.attach()
		if cmd != nil {
			m.logger.Debug("click listener attached")
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		for i := range m.inputs {
			m.inputs[i].Width = max(m.innerWidth()-3, 1)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	// Cursor blink and other input-internal messages.
	if m.open && m.focus < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey routes a key press to the alert, closed or open handler.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notices.clearToast()

	if m.notices.alerting() {
		keys := AlertKeyMap()
		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()
		case key.Matches(msg, keys.Dismiss):
			m.notices.dismiss()
		}
		return m, nil
	}

	if !m.open {
		keys := ClosedKeyMap()
		switch {
		case key.Matches(msg, keys.Quit):
			return m.quit()
		case key.Matches(msg, keys.Open):
			return m.openDialog("key")
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil
	}

	keys := OpenKeyMap()
	switch {
	case key.Matches(msg, keys.Quit):
		return m.quit()
	case key.Matches(msg, keys.Close):
		m = m.close(ReasonDismiss)
		return m, nil
	case key.Matches(msg, keys.Submit):
		return m.submit()
	case key.Matches(msg, keys.Next):
		return m.setFocus((m.focus + 1) % (len(m.inputs) + 1))
	case key.Matches(msg, keys.Prev):
		return m.setFocus((m.focus + len(m.inputs)) % (len(m.inputs) + 1))
	}

	if m.focus >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m = m.fieldChanged(form.Fields[m.focus], m.inputs[m.focus].Value())
	return m, cmd
}

// handleMouse interprets left clicks against the rendered layout.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.listener.attached || !mouse.IsLeftClick(msg) || m.width == 0 {
		return m, nil
	}
	hit := m.render().hits.Test(msg.X, msg.Y)

	if m.notices.alerting() {
		if hit != nil && hit.ID == regionAlertOK {
			m.notices.dismiss()
		}
		return m, nil
	}
	m.notices.clearToast()

	if !m.open {
		if hit != nil && hit.ID == regionTrigger {
			return m.openDialog("click")
		}
		return m, nil
	}

	if hit == nil {
		if m.ui.CloseOnOutsideClick {
			m = m.close(ReasonOutsideClick)
		}
		return m, nil
	}
	switch hit.ID {
	case regionClose:
		m = m.close(ReasonDismiss)
	case regionField:
		if i, ok := hit.Data.(int); ok {
			return m.setFocus(i)
		}
	case regionSubmit:
		return m.submit()
	}
	return m, nil
}

// openDialog shows the dialog with focus on the first field.
func (m Model) openDialog(trigger string) (tea.Model, tea.Cmd) {
	m.open = true
	m.logger.Info("modal opened", zap.String("trigger", trigger))
	return m.setFocus(0)
}

// close hides the dialog and resets the record, errors, inputs and focus.
func (m Model) close(reason CloseReason) Model {
	wasOpen := m.open
	m.open = false
	m.data = form.Data{}
	m.errs = form.Errors{}
	m.required = false
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = 0
	if wasOpen {
		m.logger.Info("modal closed", zap.String("reason", string(reason)))
	}
	return m
}

// fieldChanged records value for f. The record is replaced, not mutated.
func (m Model) fieldChanged(f form.Field, value string) Model {
	if m.data.Get(f) == value {
		return m
	}
	m.data = m.data.With(f, value)
	if f == form.FieldUsername && value != "" {
		m.required = false
	}
	return m
}

// submit validates the record. Errors keep the dialog open and surface each
// message in email, phone, dob order; success acknowledges and closes.
func (m Model) submit() (tea.Model, tea.Cmd) {
	errs := form.Validate(m.data, m.now())
	if !errs.Empty() {
		m.errs = errs
		m.required = false
		m.notices.push(noticeError, errs.Ordered()...)
		m.logger.Info("submit rejected", zap.Strings("fields", fieldNames(errs.Fields())))
		return m, nil
	}

	m.errs = form.Errors{}
	if m.data.Username == "" {
		m.required = true
		m.logger.Info("submit blocked", zap.String("missing", string(form.FieldUsername)))
		return m.setFocus(0)
	}

	accepted := m.data
	m.notices.push(noticeSuccess, form.MsgSubmitted)
	m.logger.Info("submit accepted")
	if m.onSubmit != nil {
		m.onSubmit(accepted)
	}
	return m.close(ReasonSubmitted), nil
}

// setFocus moves focus to input i, or to the submit button when i equals
// the number of inputs.
func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.focus = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return m, cmd
}

// quit releases the listener and stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if cmd := m.listener.detach(); cmd != nil {
		m.logger.Debug("click listener detached")
		return m, tea.Sequence(cmd, tea.Quit)
	}
	return m, tea.Quit
}

func fieldNames(fields []form.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = string(f)
	}
	return out
}
