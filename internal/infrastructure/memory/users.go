package memory

import (
	"context"
	"strings"
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/google/uuid"
)

type userRepository struct{ s *Store }

// Users returns the store's staff user repository
func (s *Store) Users() repository.UserRepository { return &userRepository{s} }

func (r *userRepository) Create(ctx context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperror.NewConflictError("email already registered")
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

type idempotencyRepository struct{ s *Store }

// Idempotency returns the store's idempotency key repository
func (s *Store) Idempotency() repository.IdempotencyRepository {
	return &idempotencyRepository{s}
}

func idempotencyKey(key string, userID uuid.UUID) string {
	return userID.String() + "/" + key
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ik, ok := r.s.idempotency[idempotencyKey(key, userID)]
	if !ok {
		return nil, nil
	}
	return &ik, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ik *entity.IdempotencyKey) error {
	if ik.ID == uuid.Nil {
		ik.ID = uuid.New()
	}
	if ik.CreatedAt.IsZero() {
		ik.CreatedAt = time.Now()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := idempotencyKey(ik.Key, ik.UserID)
	if _, exists := r.s.idempotency[k]; !exists {
		r.s.idempotency[k] = *ik
	}
	return nil
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, ik := range r.s.idempotency {
		if ik.IsExpired(now) {
			delete(r.s.idempotency, k)
		}
	}
	return nil
}
