package memstore

import (
	"sync"

	"microblog/internal/domain/entity"
	"microblog/internal/domain/repository"
)

// UserRepository holds all users in process memory. The collection is a
// plain slice scanned linearly; the mutex makes Create an atomic
// insert-if-absent so duplicate usernames cannot slip in between a
// check and an append.
type UserRepository struct {
	mu    sync.RWMutex
	users []*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return repository.ErrUsernameTaken
		}
	}
	r.users = append(r.users, u)
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Count reports how many users currently match the username. Used by tests
// to assert the uniqueness invariant.
func (r *UserRepository) Count(username string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, u := range r.users {
		if u.Username == username {
			n++
		}
	}
	return n
}

var _ repository.UserRepository = (*UserRepository)(nil)
