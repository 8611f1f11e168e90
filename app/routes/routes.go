package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/render"
	"inkwell/app/repositories"
	"inkwell/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Setup wires the content store, services, controllers and middleware into
// the full route table. basePath locates app/views, "" for the working
// directory.
func Setup(db *badger.DB, cfg *config.Config, pageCache *render.PageCache, basePath string) *mux.Router {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)

	postService := services.NewPostService(postRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)

	postController := controllers.NewPostController(postService, commentService, pageCache, basePath)
	commentController := controllers.NewCommentController(commentService, postService, pageCache, cfg.Moderation.TokenHash)

	router := mux.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"error": "Not found"})
			return
		}
		http.NotFound(w, r)
	})

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	api.HandleFunc("/createComment", commentController.Create).Methods("POST")
	api.HandleFunc("/comments/{id}/approve", commentController.Approve).Methods("POST")
	api.HandleFunc("/posts", postController.IndexAPI).Methods("GET")
	api.HandleFunc("/posts/{id}/comments", commentController.ListApproved).Methods("GET")
	api.HandleFunc("/posts/{slug}", postController.ShowAPI).Methods("GET")

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/{slug}", postController.Show).Methods("GET")
	posts.HandleFunc("/{slug}/comments", postController.CreateComment).Methods("POST")

	return router
}
