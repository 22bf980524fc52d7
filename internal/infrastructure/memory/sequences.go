package memory

import (
	"context"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
)

type billSequenceRepository struct{ s *Store }

// BillSequences returns the store's bill counter
func (s *Store) BillSequences() repository.BillSequenceRepository {
	return &billSequenceRepository{s}
}

func (r *billSequenceRepository) Allocate(ctx context.Context, prefix string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sequences[prefix]++
	return r.s.sequences[prefix], nil
}
