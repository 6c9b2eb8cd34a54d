package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog/internal/domain/entity"
	"microblog/internal/domain/repository"
)

func newPost(id, username string) *entity.Post {
	return &entity.Post{ID: id, Title: "t-" + id, Content: "c-" + id, Username: username, Timestamp: "1 January 2024"}
}

func seedPosts(t *testing.T, repo *PostRepository, posts ...*entity.Post) {
	t.Helper()
	for _, p := range posts {
		require.NoError(t, repo.Add(p))
	}
}

func TestPostListPreservesInsertionOrder(t *testing.T) {
	repo := NewPostRepository()
	seedPosts(t, repo, newPost("p1", "alice"), newPost("p2", "bob"), newPost("p3", "alice"))

	list := repo.List()
	require.Len(t, list, 3)
	assert.Equal(t, "p1", list[0].ID)
	assert.Equal(t, "p2", list[1].ID)
	assert.Equal(t, "p3", list[2].ID)
}

func TestPostListIsACopy(t *testing.T) {
	repo := NewPostRepository()
	seedPosts(t, repo, newPost("p1", "alice"), newPost("p2", "bob"))

	list := repo.List()
	list[0], list[1] = list[1], list[0]

	again := repo.List()
	assert.Equal(t, "p1", again[0].ID, "mutating a returned slice must not touch the store")
}

func TestPostIncrementLikes(t *testing.T) {
	repo := NewPostRepository()
	seedPosts(t, repo, newPost("p1", "alice"))

	require.NoError(t, repo.IncrementLikes("p1"))
	require.NoError(t, repo.IncrementLikes("p1"))

	p, err := repo.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.Likes)
}

func TestPostIncrementLikesMissLeavesStoreUnchanged(t *testing.T) {
	repo := NewPostRepository()
	seedPosts(t, repo, newPost("p1", "alice"))

	err := repo.IncrementLikes("p404")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	p, err := repo.GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Likes)
}

func TestPostDeleteOwned(t *testing.T) {
	repo := NewPostRepository()
	seedPosts(t, repo, newPost("p1", "alice"), newPost("p2", "bob"))

	assert.True(t, repo.DeleteOwned("p1", "alice"))
	assert.Len(t, repo.List(), 1)

	_, err := repo.GetByID("p1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostDeleteByNonOwnerIsNoOp(t *testing.T) {
	repo := NewPostRepository()
	seedPosts(t, repo, newPost("p1", "alice"))
	before := repo.List()

	assert.False(t, repo.DeleteOwned("p1", "bob"))

	after := repo.List()
	assert.Equal(t, before, after)
}

func TestPostDeleteUnknownIDIsNoOp(t *testing.T) {
	repo := NewPostRepository()
	seedPosts(t, repo, newPost("p1", "alice"))

	assert.False(t, repo.DeleteOwned("p404", "alice"))
	assert.Len(t, repo.List(), 1)
}

func TestPostListByAuthor(t *testing.T) {
	repo := NewPostRepository()
	seedPosts(t, repo, newPost("p1", "alice"), newPost("p2", "bob"), newPost("p3", "alice"))

	mine := repo.ListByAuthor("alice")
	require.Len(t, mine, 2)
	assert.Equal(t, "p1", mine[0].ID)
	assert.Equal(t, "p3", mine[1].ID)

	assert.Empty(t, repo.ListByAuthor("carol"))
}
