// Package memory holds the volatile reference implementation of the
// credential store. It is the default backend; a durable store plugs in
// behind the same port.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/99minutos/auth-service/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// Create inserts the user if the username is absent. The existence check and
// the insert happen under one lock, so concurrent creates for the same
// username yield exactly one success.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}

	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	r.users[stored.Username] = stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := stored
	return &out, nil
}
