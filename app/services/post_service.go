package services

import (
	"fmt"
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo    repositories.PostRepository
	commentRepo repositories.CommentRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// CreatePost creates a new blog post with validation
func (s *PostService) CreatePost(post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %v", err)
	}

	return s.postRepo.Create(post)
}

// GetPostBySlug retrieves a post by slug with only its approved comments
// attached. Pending comments never pass through here, so nothing downstream
// can leak them.
func (s *PostService) GetPostBySlug(slug string) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListApprovedByPost(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	post.Comments = comments

	return post, nil
}

// GetPost retrieves a post by ID with its approved comments
func (s *PostService) GetPost(id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListApprovedByPost(post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %v", err)
	}
	post.Comments = comments

	return post, nil
}

// ListPostRefs enumerates the id and slug of every known post
func (s *PostService) ListPostRefs() ([]*models.PostRef, error) {
	return s.postRepo.ListRefs()
}

// UpdatePost updates an existing post with validation
func (s *PostService) UpdatePost(post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %v", err)
	}

	existing, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return err
	}
	post.CreatedAt = existing.CreatedAt

	return s.postRepo.Update(post)
}

// DeletePost deletes a post and every comment referencing it
func (s *PostService) DeletePost(id string) error {
	comments, err := s.commentRepo.ListByPost(id)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		if err := s.commentRepo.Delete(comment.ID); err != nil {
			return err
		}
	}

	return s.postRepo.Delete(id)
}
