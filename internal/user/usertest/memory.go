package usertest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/warehouse-inventory/internal/user/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

// MemoryRepository is an in-process domain.UserRepository for tests
type MemoryRepository struct {
	mu    sync.Mutex
	users map[string]domain.User
	seq   int
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]domain.User)}
}

// Seed stores users as given, assigning ids where missing
func (r *MemoryRepository) Seed(users ...domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		u := u
		if err := r.Create(context.Background(), &u); err != nil {
			panic(err)
		}
		out = append(out, u)
	}
	return out
}

func (r *MemoryRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperror.Conflict("User with email %s already exists", user.Email)
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	// strictly increasing timestamps keep created_at ordering stable
	r.seq++
	now := time.Date(2026, 1, 1, 0, 0, r.seq, 0, time.UTC)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("User not found")
	}
	return &user, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, apperror.NotFound("User not found")
}

func (r *MemoryRepository) FindAll(ctx context.Context, filter domain.UserFilter) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []domain.User
	for _, user := range r.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		matched = append(matched, user)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []domain.User{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *MemoryRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperror.NotFound("User not found")
	}
	for id, existing := range r.users {
		if id != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return apperror.Conflict("User with email %s already exists", user.Email)
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return apperror.NotFound("User not found")
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *MemoryRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, user := range r.users {
		if user.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *MemoryRepository) CountActive(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for _, user := range r.users {
		if user.IsActive {
			n++
		}
	}
	return n, nil
}
