package repository

import (
	"context"
	"time"

	"calc-hub/domain"
)

// CalculationRepository keeps the calculation history of signed-in users.
type CalculationRepository interface {
	Save(ctx context.Context, calc *domain.Calculation) error
	// ListByUser returns the newest calculations first. limit <= 0 means all.
	ListByUser(ctx context.Context, userID string, limit int) ([]domain.Calculation, error)
	GetByID(ctx context.Context, userID, id string) (domain.Calculation, error)
	Delete(ctx context.Context, userID, id string) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByLogin(ctx context.Context, login string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
}

// Store is one storage backend serving both repositories.
type Store interface {
	Calculations() CalculationRepository
	Users() UserRepository
	Ping(ctx context.Context) error
	Close() error
}
