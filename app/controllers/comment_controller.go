package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"inkwell/app/models"
	"inkwell/app/render"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// commentSubmission is the JSON body accepted by POST /api/createComment.
type commentSubmission struct {
	ID      string `json:"_id"`
	Comment string `json:"comment"`
	Email   string `json:"email"`
	Name    string `json:"name"`
}

// CommentController handles the comment submission and moderation API
type CommentController struct {
	commentService *services.CommentService
	postService    *services.PostService
	pageCache      *render.PageCache

	// moderationHash is the bcrypt hash the approve endpoint checks admin
	// tokens against; empty disables moderation over HTTP.
	moderationHash string
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService, postService *services.PostService, pageCache *render.PageCache, moderationHash string) *CommentController {
	return &CommentController{
		commentService: commentService,
		postService:    postService,
		pageCache:      pageCache,
		moderationHash: moderationHash,
	}
}

// Create handles POST /api/createComment. The created comment is always
// moderation-pending; its text fields are stored verbatim. Every outcome
// sends exactly one response.
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var sub commentSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		log.Warn().Err(err).Msg("malformed comment submission")
		cc.sendMessage(w, http.StatusBadRequest, "Could not submit comment", KindInvalidPayload)
		return
	}

	_, err := cc.commentService.SubmitComment(sub.ID, sub.Name, sub.Email, sub.Comment)
	if err != nil {
		kind := KindStoreUnavailable
		if err == services.ErrUnknownPost {
			kind = KindUnknownPost
		}
		log.Error().Err(err).Str("post_id", sub.ID).Msg("could not persist comment")
		cc.sendMessage(w, http.StatusInternalServerError, "Could not submit comment", kind)
		return
	}

	cc.sendMessage(w, http.StatusOK, "Comment submitted", "")
}

// Approve handles POST /api/comments/{id}/approve, the moderation action
// that makes a comment visible. Guarded by the admin token.
func (cc *CommentController) Approve(w http.ResponseWriter, r *http.Request) {
	if !cc.authorized(r) {
		cc.sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	comment, err := cc.commentService.ApproveComment(id)
	if err == repositories.ErrNotFound {
		cc.sendError(w, "Comment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("comment_id", id).Msg("approval failed")
		cc.sendError(w, "Failed to approve comment", http.StatusInternalServerError)
		return
	}

	// The post's page now renders one more comment; drop the cached copy.
	if post, err := cc.postService.GetPost(comment.Post.Ref); err == nil {
		cc.pageCache.Invalidate(post.Slug.Current)
	}

	cc.sendJSON(w, comment)
}

// ListApproved handles GET /api/posts/{id}/comments: the moderated comment
// list, the only comment read the API exposes.
func (cc *CommentController) ListApproved(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	comments, err := cc.commentService.ListApprovedComments(postID)
	if err == services.ErrUnknownPost {
		cc.sendError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		cc.sendError(w, "Failed to fetch comments", http.StatusInternalServerError)
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	cc.sendJSON(w, comments)
}

func (cc *CommentController) authorized(r *http.Request) bool {
	if cc.moderationHash == "" {
		return false
	}

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(cc.moderationHash), []byte(token)) == nil
}

// Helper methods for consistent response handling

func (cc *CommentController) sendMessage(w http.ResponseWriter, status int, message string, kind ErrorKind) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := messageResponse{Message: message}
	if kind != "" {
		resp.Error = &apiError{Kind: kind}
	}
	json.NewEncoder(w).Encode(resp)
}

func (cc *CommentController) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (cc *CommentController) sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
