// Package batch splits update payloads into size-bounded groups.
package batch

import (
	"iter"
	"slices"
)

// Divide returns a lazy sequence of consecutive chunks of items, each at
// most size long. The last chunk may be shorter. A size below 1 yields
// nothing. Ranging over the result again restarts from the first chunk.
func Divide[T any](items []T, size int) iter.Seq[[]T] {
	if size < 1 {
		return func(func([]T) bool) {}
	}
	return slices.Chunk(items, size)
}

// Count returns the number of chunks Divide would yield
func Count(total, size int) int {
	if size < 1 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
