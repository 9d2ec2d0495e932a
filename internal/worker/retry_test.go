package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDelayExponentialWithClamp(t *testing.T) {
	p := RetryPolicy{InitialDelay: time.Second, MaxDelay: 10 * time.Second, BackoffFactor: 2}

	assert.Equal(t, time.Second, p.NextDelay(1))
	assert.Equal(t, 2*time.Second, p.NextDelay(2))
	assert.Equal(t, 4*time.Second, p.NextDelay(3))
	assert.Equal(t, 10*time.Second, p.NextDelay(5))
	assert.Equal(t, 10*time.Second, p.NextDelay(50))
}

func TestNextDelayDefaults(t *testing.T) {
	var p RetryPolicy
	assert.Equal(t, time.Second, p.NextDelay(0))
	assert.Equal(t, time.Second, p.NextDelay(-3))
	assert.Equal(t, 2*time.Second, p.NextDelay(2))
}

func TestExhausted(t *testing.T) {
	p := RetryPolicy{MaxRetries: 3}
	assert.False(t, p.Exhausted(3))
	assert.True(t, p.Exhausted(4))

	forever := RetryPolicy{}
	assert.False(t, forever.Exhausted(1000))
}

func TestWaitHonorsContext(t *testing.T) {
	p := RetryPolicy{InitialDelay: time.Minute}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := p.Wait(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitCompletes(t *testing.T) {
	p := RetryPolicy{InitialDelay: 5 * time.Millisecond}
	assert.NoError(t, p.Wait(context.Background(), 1))
}
