package repository

import (
	"context"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	domainRepo "github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type billSequenceRepository struct {
	db *gorm.DB
}

// NewBillSequenceRepository creates a postgres-backed bill sequence
func NewBillSequenceRepository(db *gorm.DB) domainRepo.BillSequenceRepository {
	return &billSequenceRepository{db: db}
}

// Allocate runs a single upsert so concurrent callers never observe the same value:
//
//	INSERT INTO bill_sequences (prefix, last_issued, updated_at) VALUES (?, 1, ?)
//	ON CONFLICT (prefix) DO UPDATE SET last_issued = bill_sequences.last_issued + 1, updated_at = ?
//	RETURNING last_issued
func (r *billSequenceRepository) Allocate(ctx context.Context, prefix string) (int64, error) {
	now := time.Now()
	seq := entity.BillSequence{Prefix: prefix, LastIssued: 1, UpdatedAt: now}

	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "prefix"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"last_issued": gorm.Expr("bill_sequences.last_issued + 1"),
					"updated_at":  now,
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "last_issued"}}},
		).
		Create(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq.LastIssued, nil
}
