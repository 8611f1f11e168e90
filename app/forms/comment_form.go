package forms

import (
	"github.com/go-playground/validator/v10"
)

// State is the submission form's lifecycle position. A fresh form is idle;
// refreshing the page always yields a fresh form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "idle"
	}
}

// Inline messages shown next to a missing required field.
const (
	NameRequiredMessage    = "The Name Field is required"
	EmailRequiredMessage   = "The Email Field is required"
	CommentRequiredMessage = "The Comment Field is required"
)

var validate = validator.New()

// FieldErrors maps a field name to its inline validation message.
type FieldErrors map[string]string

// CommentForm holds the typed state of the comment submission form. PostID
// is the hidden field, always populated from the current post and never
// user-editable.
type CommentForm struct {
	PostID  string `validate:"required"`
	Name    string `validate:"required"`
	Email   string `validate:"required"`
	Comment string `validate:"required"`

	State  State
	Errors FieldErrors
}

// NewCommentForm returns an idle form bound to the given post.
func NewCommentForm(postID string) *CommentForm {
	return &CommentForm{PostID: postID, Errors: FieldErrors{}}
}

// Validate runs the required-field checks and records inline messages. It
// returns true when the form may proceed to submission.
func (f *CommentForm) Validate() bool {
	f.Errors = FieldErrors{}

	err := validate.Struct(f)
	if err == nil {
		return true
	}

	for _, fieldErr := range err.(validator.ValidationErrors) {
		switch fieldErr.Field() {
		case "Name":
			f.Errors["name"] = NameRequiredMessage
		case "Email":
			f.Errors["email"] = EmailRequiredMessage
		case "Comment":
			f.Errors["comment"] = CommentRequiredMessage
		case "PostID":
			f.Errors["postId"] = "missing post identifier"
		}
	}
	return false
}

// SubmitLabel is the text carried by the submit control in each state.
func (f *CommentForm) SubmitLabel() string {
	if f.State == StateSubmitting {
		return "...Sending"
	}
	return "Send"
}

// Disabled reports whether the submit control should reject input.
func (f *CommentForm) Disabled() bool {
	return f.State == StateSubmitting
}

// IsSubmitted reports whether the acknowledgment replaces the form.
func (f *CommentForm) IsSubmitted() bool {
	return f.State == StateSubmitted
}
