package services

import "sync"

// SessionObserver is notified when a user session opens or closes.
// Components holding per-user transient state subscribe to drop that
// state when the session ends.
type SessionObserver interface {
	SessionOpened(userID uint)
	SessionClosed(userID uint)
}

// SessionNotifier fans session transitions out to registered observers.
// It implements SessionObserver itself, so callers publish through the
// same two methods observers receive.
type SessionNotifier struct {
	mu        sync.RWMutex
	observers []SessionObserver
}

func NewSessionNotifier() *SessionNotifier {
	return &SessionNotifier{}
}

func (notifier *SessionNotifier) Subscribe(observer SessionObserver) {
	if observer == nil {
		return
	}
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.observers = append(notifier.observers, observer)
}

func (notifier *SessionNotifier) SessionOpened(userID uint) {
	notifier.mu.RLock()
	defer notifier.mu.RUnlock()
	for _, observer := range notifier.observers {
		observer.SessionOpened(userID)
	}
}

func (notifier *SessionNotifier) SessionClosed(userID uint) {
	notifier.mu.RLock()
	defer notifier.mu.RUnlock()
	for _, observer := range notifier.observers {
		observer.SessionClosed(userID)
	}
}
