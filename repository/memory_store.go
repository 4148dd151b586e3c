package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"calc-hub/domain"
)

// MemoryStore keeps history and users in process memory. Everything is lost
// on restart.
type MemoryStore struct {
	calculations *MemoryCalculationRepository
	users        *MemoryUserRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		calculations: NewMemoryCalculationRepository(),
		users:        NewMemoryUserRepository(),
	}
}

func (s *MemoryStore) Calculations() CalculationRepository { return s.calculations }
func (s *MemoryStore) Users() UserRepository               { return s.users }
func (s *MemoryStore) Ping(context.Context) error          { return nil }
func (s *MemoryStore) Close() error                        { return nil }

type MemoryCalculationRepository struct {
	mu   sync.RWMutex
	data map[string]domain.Calculation
}

func NewMemoryCalculationRepository() *MemoryCalculationRepository {
	return &MemoryCalculationRepository{
		data: make(map[string]domain.Calculation),
	}
}

func (r *MemoryCalculationRepository) Save(_ context.Context, calc *domain.Calculation) error {
	if calc.ID == "" {
		calc.ID = uuid.New().String()
	}
	if calc.CreatedAt.IsZero() {
		calc.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[calc.ID] = *calc
	return nil
}

func (r *MemoryCalculationRepository) ListByUser(_ context.Context, userID string, limit int) ([]domain.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Calculation{}
	for _, c := range r.data {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryCalculationRepository) GetByID(_ context.Context, userID, id string) (domain.Calculation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.data[id]
	if !ok || c.UserID != userID {
		return domain.Calculation{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *MemoryCalculationRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.data[id]
	if !ok || c.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.data, id)
	return nil
}

func (r *MemoryCalculationRepository) PurgeOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, c := range r.data {
		if c.CreatedAt.Before(cutoff) {
			delete(r.data, id)
			n++
		}
	}
	return n, nil
}

type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byLogin map[string]string
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    make(map[string]domain.User),
		byLogin: make(map[string]string),
	}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byLogin[user.Login]; exists {
		return domain.ErrUserExists
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.byID[user.ID] = *user
	r.byLogin[user.Login] = user.ID
	return nil
}

func (r *MemoryUserRepository) GetByLogin(_ context.Context, login string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[login]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}
