package models

import (
	"encoding/json"
	"time"
)

// Block is one rich-content unit of a post body. The comment workflow never
// looks inside a block; the renderer decides what to do with it.
type Block = json.RawMessage

// Slug is a unique human-readable post identifier.
type Slug struct {
	Current string `json:"current" validate:"required"`
}

// Author is the byline attached to a post.
type Author struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

// Image is a reference to a hosted image asset.
type Image struct {
	URL string `json:"url"`
}

// Reference points a document at exactly one other document.
type Reference struct {
	Type string `json:"_type"`
	Ref  string `json:"_ref"`
}

// Post is a blog post document. Owned by the content store; the comment
// workflow only ever reads it.
type Post struct {
	ID          string     `json:"_id" validate:"required"`
	CreatedAt   time.Time  `json:"_createdAt" validate:"required"`
	Title       string     `json:"title" validate:"required,min=3,max=200"`
	Description string     `json:"description"`
	Body        []Block    `json:"body"`
	Author      Author     `json:"author"`
	MainImage   Image      `json:"mainImage"`
	Slug        Slug       `json:"slug" validate:"required"`
	Comments    []*Comment `json:"comments,omitempty" validate:"-"`
}

// PostRef is the slim projection used for path enumeration: just enough to
// build a URL per post.
type PostRef struct {
	ID   string `json:"_id"`
	Slug Slug   `json:"slug"`
}

// Comment is a reader comment document. It references exactly one post and
// stays invisible until a moderator sets IsApproved.
type Comment struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Comment    string    `json:"comment"`
	Post       Reference `json:"post"`
	IsApproved bool      `json:"isApproved,omitempty"`
	CreatedAt  time.Time `json:"_createdAt"`
}
