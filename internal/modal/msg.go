// Package modal implements the sign-up form dialog as a Bubble Tea model.
// The model owns modal visibility, the form record and its errors, the
// pending notifications, and the terminal mouse listener used to detect
// clicks outside the dialog.
package modal

import "github.com/smileynet/formmodal/internal/form"

// CloseReason records why the dialog closed.
type CloseReason string

const (
	ReasonDismiss      CloseReason = "dismiss"       // Close control or esc.
	ReasonOutsideClick CloseReason = "outside_click" // Click outside the content region.
	ReasonSubmitted    CloseReason = "submitted"     // Successful submission.
)

// SubmitHandler receives each accepted record. It runs synchronously
// inside Update.
type SubmitHandler func(form.Data)

// mountMsg is emitted once by Init so the listener is acquired inside
// Update, where model state can change.
type mountMsg struct{}

// Hit region identifiers.
const (
	regionContent = "content"
	regionClose   = "close"
	regionField   = "field"
	regionSubmit  = "submit"
	regionTrigger = "trigger"
	regionAlertOK = "alert-ok"
)
