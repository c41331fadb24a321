package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewMessageRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("a"))
	}
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterIsPerConnection(t *testing.T) {
	rl := NewMessageRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := NewMessageRateLimiter(1, 10*time.Millisecond)

	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
}

func TestRateLimiterDropClearsHistory(t *testing.T) {
	rl := NewMessageRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("a"))
	rl.Drop("a")
	assert.True(t, rl.Allow("a"))
}
