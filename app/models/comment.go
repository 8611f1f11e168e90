package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReferenceType is the document type tag carried by every Reference.
const ReferenceType = "reference"

// NewComment builds an unapproved comment document referencing postID. The
// text fields are taken verbatim; moderation is the only path to IsApproved.
func NewComment(postID, name, email, body string) *Comment {
	return &Comment{
		Name:    name,
		Email:   email,
		Comment: body,
		Post:    Reference{Type: ReferenceType, Ref: postID},
	}
}

// Validate checks the structural invariants of a comment document. Text
// fields are deliberately not constrained here: the store accepts them
// verbatim and required-field checks live in the submission form.
func (c *Comment) Validate() error {
	if c.Post.Ref == "" {
		return errors.New("comment must reference a post")
	}
	if c.Post.Type != ReferenceType {
		return errors.New("comment post field must be a reference")
	}
	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (c *Comment) BeforeCreate() {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
}

// SetPost points the comment at the given post.
func (c *Comment) SetPost(post *Post) error {
	if post == nil {
		return errors.New("post cannot be nil")
	}
	c.Post = Reference{Type: ReferenceType, Ref: post.ID}
	return nil
}
