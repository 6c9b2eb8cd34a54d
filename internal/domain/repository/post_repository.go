package repository

import "microblog/internal/domain/entity"

// PostRepository defines the interface for the post store.
type PostRepository interface {
	Add(p *entity.Post) error
	// List returns a copy of all posts in insertion order.
	List() []*entity.Post
	GetByID(id string) (*entity.Post, error)
	IncrementLikes(id string) error
	// DeleteOwned removes the post only when owner matches the post's
	// author; it reports whether a post was actually removed.
	DeleteOwned(id, owner string) bool
	ListByAuthor(username string) []*entity.Post
}
