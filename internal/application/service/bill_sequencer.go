package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
)

// BillSequencer hands out bill numbers of the form "{prefix}-{n}".
type BillSequencer struct {
	repo repository.BillSequenceRepository
}

func NewBillSequencer(repo repository.BillSequenceRepository) *BillSequencer {
	return &BillSequencer{repo: repo}
}

// NextBillNumber allocates the next counter value for prefix. A number is
// never handed out twice, even when the caller later fails to use it.
func (s *BillSequencer) NextBillNumber(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", apperror.NewInvalidArgument("bill prefix is required")
	}

	n, err := s.repo.Allocate(ctx, prefix)
	if err != nil {
		return "", apperror.NewSequenceUnavailable(prefix, err)
	}
	if n <= 0 {
		return "", apperror.NewSequenceUnavailable(prefix, fmt.Errorf("store returned counter %d", n))
	}
	return fmt.Sprintf("%s-%d", prefix, n), nil
}
