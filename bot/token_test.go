package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenSleepCompletes(t *testing.T) {
	tok := NewToken()
	assert.True(t, tok.Sleep(time.Millisecond))
	assert.False(t, tok.Cancelled())
}

func TestTokenSleepCancelled(t *testing.T) {
	tok := NewToken()
	go func() {
		time.Sleep(5 * time.Millisecond)
		tok.Cancel()
	}()
	start := time.Now()
	assert.False(t, tok.Sleep(5*time.Second))
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, tok.Cancelled())
}

func TestTokenCancelIdempotent(t *testing.T) {
	tok := NewToken()
	tok.Cancel()
	tok.Cancel()
	assert.True(t, tok.Cancelled())
	assert.False(t, tok.Sleep(time.Hour))
}

func TestTokenDoneChannel(t *testing.T) {
	tok := NewToken()
	select {
	case <-tok.Done():
		t.Fatal("done before cancel")
	default:
	}
	tok.Cancel()
	select {
	case <-tok.Done():
	case <-time.After(time.Second):
		t.Fatal("done not closed after cancel")
	}
}
