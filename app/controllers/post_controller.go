package controllers

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"path/filepath"

	"inkwell/app/forms"
	"inkwell/app/models"
	"inkwell/app/render"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

// PostController renders post pages and serves the post read API
type PostController struct {
	postService    *services.PostService
	commentService *services.CommentService
	pageCache      *render.PageCache
	templates      map[string]*template.Template
}

// showPageData is what the post page template renders: the post, its body
// as HTML, the approved comments, and the submission form in whatever state
// the request left it.
type showPageData struct {
	Post     *models.Post
	Body     template.HTML
	Comments []*models.Comment
	Form     *forms.CommentForm
}

// NewPostController creates a new PostController. basePath locates the
// app/views directory, "" for the working directory.
func NewPostController(postService *services.PostService, commentService *services.CommentService, pageCache *render.PageCache, basePath string) *PostController {
	return &PostController{
		postService:    postService,
		commentService: commentService,
		pageCache:      pageCache,
		templates:      loadPostTemplates(basePath),
	}
}

// loadPostTemplates loads and parses all post-related templates
func loadPostTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	templates["index"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/index.html"),
	))
	templates["show"] = template.Must(template.ParseFiles(
		filepath.Join(basePath, "app/views/layout.html"),
		filepath.Join(basePath, "app/views/posts/show.html"),
		filepath.Join(basePath, "app/views/shared/comments.html"),
	))
	return templates
}

// Index lists every post with a link to its page
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	refs, err := pc.postService.ListPostRefs()
	if err != nil {
		http.Error(w, "Failed to list posts", http.StatusInternalServerError)
		return
	}

	data := struct {
		Refs []*models.PostRef
	}{Refs: refs}

	if err := pc.templates["index"].ExecuteTemplate(w, "layout", data); err != nil {
		log.Error().Err(err).Msg("template error")
	}
}

// Show renders a post page by slug. Pages are served from the render cache
// within the revalidation window; a cache miss renders on demand, so a slug
// published after startup still resolves on its first request. An unknown
// slug is a 404, not an error.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	if html, ok := pc.pageCache.Get(slug); ok {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
		return
	}

	post, err := pc.postService.GetPostBySlug(slug)
	if err == repositories.ErrNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch post", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := pc.renderShow(&buf, post, forms.NewCommentForm(post.ID)); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("template error")
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	pc.pageCache.Put(slug, buf.Bytes())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// CreateComment handles the post page's form submission. Validation errors
// re-render the page with inline messages; success renders the static
// acknowledgment in place of the form. Neither outcome is cached: the page
// with a form result is personal to this request.
func (pc *PostController) CreateComment(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := pc.postService.GetPostBySlug(slug)
	if err == repositories.ErrNotFound {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "Failed to fetch post", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	// The hidden post field comes from the fetched post, never from user
	// input.
	form := forms.NewCommentForm(post.ID)
	form.Name = r.FormValue("name")
	form.Email = r.FormValue("email")
	form.Comment = r.FormValue("comment")

	if !form.Validate() {
		w.WriteHeader(http.StatusUnprocessableEntity)
		pc.writeShow(w, post, form, slug)
		return
	}

	if _, err := pc.commentService.SubmitComment(post.ID, form.Name, form.Email, form.Comment); err != nil {
		// The form stays editable; the failure shows up only in the logs.
		log.Error().Err(err).Str("slug", slug).Msg("could not persist comment")
		form.State = forms.StateIdle
		w.WriteHeader(http.StatusInternalServerError)
		pc.writeShow(w, post, form, slug)
		return
	}

	form.State = forms.StateSubmitted
	pc.writeShow(w, post, form, slug)
}

func (pc *PostController) writeShow(w http.ResponseWriter, post *models.Post, form *forms.CommentForm, slug string) {
	var buf bytes.Buffer
	if err := pc.renderShow(&buf, post, form); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("template error")
		return
	}
	w.Write(buf.Bytes())
}

// RenderPost renders a post page with a fresh form, used by the prerender
// command to write static pages.
func (pc *PostController) RenderPost(post *models.Post) ([]byte, error) {
	var buf bytes.Buffer
	if err := pc.renderShow(&buf, post, forms.NewCommentForm(post.ID)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pc *PostController) renderShow(buf *bytes.Buffer, post *models.Post, form *forms.CommentForm) error {
	data := showPageData{
		Post:     post,
		Body:     render.Body(post.Body),
		Comments: post.Comments,
		Form:     form,
	}
	return pc.templates["show"].ExecuteTemplate(buf, "layout", data)
}

// API handlers

// IndexAPI handles GET /api/posts: id and slug of every post, the
// enumeration used for path generation.
func (pc *PostController) IndexAPI(w http.ResponseWriter, r *http.Request) {
	refs, err := pc.postService.ListPostRefs()
	if err != nil {
		pc.sendError(w, "Failed to list posts", http.StatusInternalServerError)
		return
	}
	if refs == nil {
		refs = []*models.PostRef{}
	}
	pc.sendJSON(w, refs)
}

// ShowAPI handles GET /api/posts/{slug}: the post document with its
// approved comments joined in.
func (pc *PostController) ShowAPI(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	post, err := pc.postService.GetPostBySlug(slug)
	if err == repositories.ErrNotFound {
		pc.sendError(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		pc.sendError(w, "Failed to fetch post", http.StatusInternalServerError)
		return
	}
	pc.sendJSON(w, post)
}

func (pc *PostController) sendJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (pc *PostController) sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
