package server

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingCleaner struct {
	calls atomic.Int32
	err   error
}

func (c *countingCleaner) CleanupExpiredTokens(context.Context) (int64, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestRunTokenJanitorSweepsUntilCancelled(t *testing.T) {
	for _, failing := range []bool{false, true} {
		cleaner := &countingCleaner{}
		if failing {
			cleaner.err = errors.New("db down")
		}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			RunTokenJanitor(ctx, cleaner, 5*time.Millisecond, zerolog.Nop())
			close(done)
		}()

		assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 2 }, time.Second, time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("janitor did not stop after cancel")
		}
	}
}

func TestRunTokenJanitorDisabled(t *testing.T) {
	cleaner := &countingCleaner{}
	done := make(chan struct{})
	go func() {
		RunTokenJanitor(context.Background(), cleaner, 0, zerolog.Nop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled janitor should return immediately")
	}
	assert.Zero(t, cleaner.calls.Load())
}
