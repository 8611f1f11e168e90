package repositories

import (
	"testing"

	"inkwell/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewBadgerPostRepository(db)
	repo := NewBadgerCommentRepository(db)

	post := testPost("a-post-with-comments")
	require.NoError(t, postRepo.Create(post))

	approved := models.NewComment(post.ID, "Ada", "a@x.com", "Great post")
	approved.IsApproved = true
	pending := models.NewComment(post.ID, "Bob", "b@x.com", "First!")

	require.NoError(t, repo.Create(approved))
	require.NoError(t, repo.Create(pending))

	t.Run("create assigns id and keeps approval flag", func(t *testing.T) {
		assert.NotEmpty(t, pending.ID)
		got, err := repo.GetByID(pending.ID)
		assert.NoError(t, err)
		assert.False(t, got.IsApproved)
		assert.Equal(t, post.ID, got.Post.Ref)
	})

	t.Run("create rejects comment without post reference", func(t *testing.T) {
		err := repo.Create(&models.Comment{Name: "Eve", Comment: "dangling"})
		assert.Error(t, err)
	})

	t.Run("list by post returns all", func(t *testing.T) {
		comments, err := repo.ListByPost(post.ID)
		assert.NoError(t, err)
		assert.Len(t, comments, 2)
	})

	t.Run("approved list filters pending comments", func(t *testing.T) {
		comments, err := repo.ListApprovedByPost(post.ID)
		assert.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "Ada", comments[0].Name)
	})

	t.Run("approved list is empty for post without approvals", func(t *testing.T) {
		other := testPost("quiet-post")
		require.NoError(t, postRepo.Create(other))
		require.NoError(t, repo.Create(models.NewComment(other.ID, "Cam", "c@x.com", "hi")))

		comments, err := repo.ListApprovedByPost(other.ID)
		assert.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("update flips approval", func(t *testing.T) {
		pending.IsApproved = true
		require.NoError(t, repo.Update(pending))

		comments, err := repo.ListApprovedByPost(post.ID)
		assert.NoError(t, err)
		assert.Len(t, comments, 2)
	})

	t.Run("update unknown comment", func(t *testing.T) {
		ghost := models.NewComment(post.ID, "Ghost", "g@x.com", "boo")
		ghost.ID = "never-created"
		assert.Equal(t, ErrNotFound, repo.Update(ghost))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(pending.ID))
		_, err := repo.GetByID(pending.ID)
		assert.Equal(t, ErrNotFound, err)

		assert.Equal(t, ErrNotFound, repo.Delete(pending.ID))
	})
}
