package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/omkar-28/authd/internal/common"
	"github.com/omkar-28/authd/internal/server/models"
)

// MemoryRepository keeps users in a map. Values are copied in and out so
// callers never share a record with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]*models.User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrAlreadyExists
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = cloneUser(user)

	return user, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryRepository) GetByVerificationToken(ctx context.Context, code string, now time.Time) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.HasVerificationToken(code, now) })
}

func (r *MemoryRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.HasResetToken(token, now) })
}

func (r *MemoryRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return common.ErrorNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return common.ErrAlreadyExists
		}
	}

	r.users[user.ID] = cloneUser(user)
	return nil
}

// Len returns the number of stored users.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

func (r *MemoryRepository) find(match func(u *models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrorNotFound
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.VerificationExpiredAt = cloneTime(u.VerificationExpiredAt)
	c.ResetPasswordExpiredAt = cloneTime(u.ResetPasswordExpiredAt)
	c.LastLogin = cloneTime(u.LastLogin)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
