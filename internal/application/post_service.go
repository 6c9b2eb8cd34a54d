package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"microblog/internal/domain/entity"
	repo "microblog/internal/domain/repository"
)

var ErrPostNotFound = errors.New("post not found")

// timestampLayout matches the human-readable date shown in the feed.
const timestampLayout = "2 January 2006"

// PostService owns the shared feed: creation, likes, owner-gated
// deletion, and the per-author view.
type PostService struct {
	Posts  repo.PostRepository
	Logger *logrus.Logger
}

func NewPostService(posts repo.PostRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Logger: logger}
}

// Create appends a post authored by the given user. The author's
// username is copied verbatim onto the post.
func (s *PostService) Create(title, content string, author *entity.User) (*entity.Post, error) {
	p := &entity.Post{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Username:  author.Username,
		Timestamp: time.Now().Format(timestampLayout),
		Likes:     0,
	}
	if err := s.Posts.Add(p); err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"post_id": p.ID, "username": p.Username}).Info("post created")
	}
	return p, nil
}

// Feed returns all posts most recent first. The underlying store is
// left untouched; callers get their own slice.
func (s *PostService) Feed() []*entity.Post {
	posts := s.Posts.List()
	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}
	return posts
}

// Like increments the post's like counter by one. Likes are not
// de-duplicated per viewer.
func (s *PostService) Like(id string) error {
	if err := s.Posts.IncrementLikes(id); err != nil {
		return ErrPostNotFound
	}
	return nil
}

// Delete removes the post only when owner authored it. A non-owner
// attempt is silently skipped.
func (s *PostService) Delete(id, owner string) bool {
	deleted := s.Posts.DeleteOwned(id, owner)
	if !deleted && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"post_id": id, "username": owner}).Debug("delete skipped")
	}
	return deleted
}

// ByAuthor filters the feed to one author's posts, preserving store order.
func (s *PostService) ByAuthor(username string) []*entity.Post {
	return s.Posts.ListByAuthor(username)
}
