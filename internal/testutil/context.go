package testutil

import (
	"context"
	"testing"
	"time"
)

// ContextWithCancel создаёт context, который отменяется при завершении теста.
func ContextWithCancel(t testing.TB) (context.Context, context.CancelFunc) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx, cancel
}

// WaitErr waits for a loop's result on done and fails the test if nothing
// arrives within timeout.
func WaitErr(t testing.TB, done <-chan error, timeout time.Duration) error {
	t.Helper()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		t.Fatalf("no result within %v", timeout)
		return nil
	}
}
