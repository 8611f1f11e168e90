package repositories

import "inkwell/app/models"

// PostRepository is the read/write surface of the content store for posts.
// The comment workflow only ever reads through it.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	ListRefs() ([]*models.PostRef, error)
	Update(post *models.Post) error
	Delete(id string) error
}

// CommentRepository is the content store surface for comment documents.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id string) (*models.Comment, error)
	ListByPost(postID string) ([]*models.Comment, error)
	ListApprovedByPost(postID string) ([]*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id string) error
}
