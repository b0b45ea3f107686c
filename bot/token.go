package bot

import (
	"sync"
	"time"
)

// Token is a one-shot cooperative cancellation signal. Every
// cancellable wait reports completion as a bool so callers branch
// instead of unwinding; nothing here ever panics or errors.
type Token struct {
	once sync.Once
	done chan struct{}
}

func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Cancel signals the token. Safe to call more than once.
func (t *Token) Cancel() {
	t.once.Do(func() { close(t.done) })
}

func (t *Token) Cancelled() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

func (t *Token) Done() <-chan struct{} {
	return t.done
}

// Sleep waits for d and reports true, or false the moment the token is
// cancelled.
func (t *Token) Sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-t.done:
		return false
	}
}
