package repository

import "context"

// BillSequenceRepository hands out bill counters per prefix
type BillSequenceRepository interface {
	// Allocate atomically increments the counter for prefix, creating it at 1
	// on first use, and returns the new value.
	Allocate(ctx context.Context, prefix string) (int64, error)
}
