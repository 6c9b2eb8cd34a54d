package repository

import "microblog/internal/domain/entity"

// UserRepository defines the interface for identity store operations.
// Create must be atomic with the username-uniqueness check so that two
// concurrent registrations cannot both claim the same name.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
