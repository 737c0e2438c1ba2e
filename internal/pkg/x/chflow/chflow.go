// Package chflow provides helpers for channel operations that must not block
// forever: receives give up when their context ends and sends can be skipped.
package chflow

import "context"

// Receive waits for a value from ch or for ctx to end.
// ok is false when ctx ended first or ch was closed.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, false
	case data, ok := <-ch:
		return data, ok
	}
}

// TrySend delivers data on ch only if it can do so without blocking.
// It is used to coalesce triggers: a full buffered channel already holds a pending signal.
func TrySend[T any](ch chan<- T, data T) bool {
	select {
	case ch <- data:
		return true
	default:
		return false
	}
}
