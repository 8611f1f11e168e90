package services

import (
	"testing"

	"inkwell/app/models"
	"inkwell/app/repositories"
	"inkwell/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService(t *testing.T) (*PostService, *CommentService, *mock.PostRepository, *mock.CommentRepository) {
	t.Helper()
	postRepo := mock.NewPostRepository()
	commentRepo := mock.NewCommentRepository()
	return NewPostService(postRepo, commentRepo), NewCommentService(commentRepo, postRepo), postRepo, commentRepo
}

func TestPostService(t *testing.T) {
	service, comments, _, _ := newTestPostService(t)

	post := &models.Post{
		Title:       "Static pages, dynamic comments",
		Description: "A moderation walkthrough",
		Slug:        models.Slug{Current: "static-pages-dynamic-comments"},
		Author:      models.Author{Name: "Ada"},
	}
	require.NoError(t, service.CreatePost(post))

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		assert.NotEmpty(t, post.ID)
		assert.False(t, post.CreatedAt.IsZero())
	})

	t.Run("create rejects invalid post", func(t *testing.T) {
		err := service.CreatePost(&models.Post{Title: "x"})
		assert.Error(t, err)
	})

	t.Run("get by slug joins only approved comments", func(t *testing.T) {
		pending, err := comments.SubmitComment(post.ID, "Bob", "b@x.com", "First!")
		require.NoError(t, err)
		approved, err := comments.SubmitComment(post.ID, "Ada", "a@x.com", "Great post")
		require.NoError(t, err)
		_, err = comments.ApproveComment(approved.ID)
		require.NoError(t, err)

		got, err := service.GetPostBySlug("static-pages-dynamic-comments")
		require.NoError(t, err)
		require.Len(t, got.Comments, 1)
		assert.Equal(t, approved.ID, got.Comments[0].ID)
		assert.NotEqual(t, pending.ID, got.Comments[0].ID)
	})

	t.Run("unknown slug yields not found", func(t *testing.T) {
		_, err := service.GetPostBySlug("no-such-slug")
		assert.Equal(t, repositories.ErrNotFound, err)
	})

	t.Run("repeated fetch returns identical content", func(t *testing.T) {
		first, err := service.GetPostBySlug("static-pages-dynamic-comments")
		require.NoError(t, err)
		second, err := service.GetPostBySlug("static-pages-dynamic-comments")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Title, second.Title)
		assert.Len(t, second.Comments, len(first.Comments))
	})

	t.Run("list refs", func(t *testing.T) {
		refs, err := service.ListPostRefs()
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, post.ID, refs[0].ID)
		assert.Equal(t, "static-pages-dynamic-comments", refs[0].Slug.Current)
	})

	t.Run("delete removes comments too", func(t *testing.T) {
		svc, commentSvc, _, commentRepo := newTestPostService(t)
		p := &models.Post{
			Title:  "Doomed post",
			Slug:   models.Slug{Current: "doomed"},
			Author: models.Author{Name: "Ada"},
		}
		require.NoError(t, svc.CreatePost(p))
		_, err := commentSvc.SubmitComment(p.ID, "Bob", "b@x.com", "gone soon")
		require.NoError(t, err)

		require.NoError(t, svc.DeletePost(p.ID))

		_, err = svc.GetPost(p.ID)
		assert.Equal(t, repositories.ErrNotFound, err)
		left, err := commentRepo.ListByPost(p.ID)
		assert.NoError(t, err)
		assert.Empty(t, left)
	})
}
