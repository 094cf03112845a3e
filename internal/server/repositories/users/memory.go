package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
)

// MemoryRepository keeps users in process memory. Data is lost on restart.
type MemoryRepository struct {
	mu     sync.RWMutex
	users  []*models.User
	nextID int64
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.find(func(u *models.User) bool { return u.Email == user.Email }) != nil {
		return nil, common.ErrConflict
	}

	now := r.now()
	stored := &models.User{
		ID:             r.nextID,
		Email:          user.Email,
		Phone:          user.Phone,
		PasswordDigest: user.PasswordDigest,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.nextID++
	r.users = append(r.users, stored)

	return clone(stored), nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*models.User, error) {
	return r.lookup(func(u *models.User) bool { return u.ID == id })
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.lookup(func(u *models.User) bool { return u.Email == email })
}

func (r *MemoryRepository) GetByToken(_ context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrNotFound
	}
	return r.lookup(func(u *models.User) bool { return u.Token != nil && *u.Token == token })
}

func (r *MemoryRepository) SetToken(_ context.Context, id int64, token *string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u := r.find(func(u *models.User) bool { return u.ID == id })
	if u == nil {
		return nil, common.ErrNotFound
	}

	if token != nil {
		t := *token
		u.Token = &t
	} else {
		u.Token = nil
	}
	u.UpdatedAt = r.now()

	return clone(u), nil
}

func (r *MemoryRepository) lookup(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u := r.find(match)
	if u == nil {
		return nil, common.ErrNotFound
	}
	return clone(u), nil
}

// find must be called with mu held.
func (r *MemoryRepository) find(match func(*models.User) bool) *models.User {
	for _, u := range r.users {
		if match(u) {
			return u
		}
	}
	return nil
}

func clone(u *models.User) *models.User {
	c := *u
	return &c
}
