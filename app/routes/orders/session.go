package orders

import "sync"

// SessionTracker remembers which order ids each session created, so the
// entry page can offer "my recent orders" for quick corrections. Purely
// in-memory; it is gone on restart and that is fine.
type SessionTracker struct {
	mu  sync.Mutex
	ids map[string][]string
}

func NewSessionTracker() *SessionTracker {
	return &SessionTracker{ids: make(map[string][]string)}
}

func (t *SessionTracker) Add(sessionID string, orderIDs ...string) {
	if sessionID == "" {
		return
	}
	t.mu.Lock()
	t.ids[sessionID] = append(t.ids[sessionID], orderIDs...)
	t.mu.Unlock()
}

func (t *SessionTracker) IDs(sessionID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.ids[sessionID]...)
}

// Forget drops ids that no longer exist in the ledger (after deletes).
func (t *SessionTracker) Forget(sessionID string, orderIDs ...string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	drop := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		drop[id] = true
	}
	kept := t.ids[sessionID][:0]
	for _, id := range t.ids[sessionID] {
		if !drop[id] {
			kept = append(kept, id)
		}
	}
	t.ids[sessionID] = kept
}
