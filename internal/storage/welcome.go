package storage

import "sync"

// WelcomeSet remembers which users already received the welcome message, so
// a repeated /start does not send it again. Users are never removed.
type WelcomeSet struct {
	mu    sync.Mutex
	users map[int64]struct{}
}

// NewWelcomeSet creates an empty WelcomeSet.
func NewWelcomeSet() *WelcomeSet {
	return &WelcomeSet{
		users: make(map[int64]struct{}),
	}
}

// MarkWelcomed records the user and reports whether this is their first
// /start.
func (w *WelcomeSet) MarkWelcomed(userID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.users[userID]; ok {
		return false
	}
	w.users[userID] = struct{}{}
	return true
}
