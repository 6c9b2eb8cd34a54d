package memstore

import (
	"sync"

	"microblog/internal/domain/entity"
	"microblog/internal/domain/repository"
)

// PostRepository holds all posts in process memory, in insertion order.
type PostRepository struct {
	mu    sync.RWMutex
	posts []*entity.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{}
}

func (r *PostRepository) Add(p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, p)
	return nil
}

func (r *PostRepository) List() []*entity.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Post, len(r.posts))
	copy(out, r.posts)
	return out
}

func (r *PostRepository) GetByID(id string) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PostRepository) IncrementLikes(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.ID == id {
			p.Likes++
			return nil
		}
	}
	return repository.ErrNotFound
}

// DeleteOwned removes the post only when owner matches the post's author.
// A mismatch or an unknown id is a silent no-op; the bool tells the caller
// whether anything was removed.
func (r *PostRepository) DeleteOwned(id, owner string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == id {
			if p.Username != owner {
				return false
			}
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return true
		}
	}
	return false
}

func (r *PostRepository) ListByAuthor(username string) []*entity.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Post, 0)
	for _, p := range r.posts {
		if p.Username == username {
			out = append(out, p)
		}
	}
	return out
}

var _ repository.PostRepository = (*PostRepository)(nil)
