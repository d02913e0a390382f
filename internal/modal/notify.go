package modal

import "github.com/smileynet/formmodal/internal/config"

type noticeKind int

const (
	noticeSuccess noticeKind = iota
	noticeError
)

type notice struct {
	text string
	kind noticeKind
}

// notices queues user acknowledgments. In alert mode the head blocks all
// other input until dismissed; in toast mode the whole queue is shown on a
// status line and dropped on the next key press.
type notices struct {
	mode  string
	queue []notice
}

func (n *notices) push(kind noticeKind, texts ...string) {
	for _, t := range texts {
		n.queue = append(n.queue, notice{text: t, kind: kind})
	}
}

func (n notices) alerting() bool {
	return n.mode != config.NotifyToast && len(n.queue) > 0
}

func (n notices) toasting() bool {
	return n.mode == config.NotifyToast && len(n.queue) > 0
}

func (n notices) head() notice {
	return n.queue[0]
}

func (n *notices) dismiss() {
	if len(n.queue) > 0 {
		n.queue = n.queue[1:]
	}
}

func (n *notices) clearToast() {
	if n.mode == config.NotifyToast {
		n.queue = nil
	}
}

func (n notices) texts() []string {
	out := make([]string, len(n.queue))
	for i, q := range n.queue {
		out[i] = q.text
	}
	return out
}
