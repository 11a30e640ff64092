package tui

import "sync"

// alertQueue collects session alerts raised from commands so Update can
// show them one at a time.
type alertQueue struct {
	mu      sync.Mutex
	pending []string
}

// Alert implements pdfannotate.Alerter.
func (q *alertQueue) Alert(message string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, message)
}

// pop returns the oldest pending alert.
func (q *alertQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return "", false
	}
	msg := q.pending[0]
	q.pending = q.pending[1:]
	return msg, true
}
