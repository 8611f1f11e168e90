package services

import (
	"errors"
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// ErrUnknownPost is returned when a submission references a post the store
// does not hold. It keeps the invariant that every comment points at an
// existing post.
var ErrUnknownPost = errors.New("unknown post")

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// SubmitComment persists a moderation-pending comment for the given post.
// Name, email and body are stored verbatim; the service never trims,
// sanitizes or length-checks them. Duplicate submissions simply create
// duplicate documents.
func (s *CommentService) SubmitComment(postID, name, email, body string) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrUnknownPost
		}
		return nil, err
	}

	comment := models.NewComment(postID, name, email, body)
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ApproveComment flips a comment's approval flag. This is the moderation
// action; nothing else in the system ever sets IsApproved.
func (s *CommentService) ApproveComment(id string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if comment.IsApproved {
		return comment, nil
	}

	comment.IsApproved = true
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, fmt.Errorf("failed to approve comment: %v", err)
	}
	return comment, nil
}

// GetComment retrieves a comment by ID
func (s *CommentService) GetComment(id string) (*models.Comment, error) {
	return s.commentRepo.GetByID(id)
}

// ListApprovedComments retrieves the moderated comment list for a post
func (s *CommentService) ListApprovedComments(postID string) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrUnknownPost
		}
		return nil, err
	}
	return s.commentRepo.ListApprovedByPost(postID)
}

// DeleteComment deletes a comment
func (s *CommentService) DeleteComment(id string) error {
	if _, err := s.commentRepo.GetByID(id); err != nil {
		return err
	}
	return s.commentRepo.Delete(id)
}
