package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"inkwell/app/config"
	"inkwell/app/forms"
	"inkwell/app/models"
	"inkwell/app/render"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testContext struct {
	cache *render.PageCache
	db    *badger.DB
}

func setupRouter(t *testing.T) (*mux.Router, *testContext) {
	t.Helper()

	db := setupTestDB(t)
	basePath := setupTestViews(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Moderation.TokenHash = string(hash)

	cache := render.NewPageCache(cfg.Revalidate())
	router := Setup(db, cfg, cache, basePath)

	return router, &testContext{cache: cache, db: db}
}

func get(router *mux.Router, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPostPage(t *testing.T) {
	router, tc := setupRouter(t)
	post := seedPost(t, tc.db, "first-post")
	seedComment(t, tc.db, post, "Ada", "Great post", true)
	seedComment(t, tc.db, post, "Bob", "First!", false)

	t.Run("renders approved comments only", func(t *testing.T) {
		w := get(router, "/posts/first-post")
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, "Seeded post")
		assert.Contains(t, body, "<strong>bold</strong>")
		assert.Contains(t, body, "Ada: Great post")
		assert.NotContains(t, body, "First!")
	})

	t.Run("unknown slug is a 404", func(t *testing.T) {
		w := get(router, "/posts/no-such-post")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("second fetch is served from cache", func(t *testing.T) {
		first := get(router, "/posts/first-post").Body.String()

		// a new approved comment stays invisible until revalidation
		seedComment(t, tc.db, post, "Cam", "Me too", true)
		second := get(router, "/posts/first-post").Body.String()
		assert.Equal(t, first, second)

		// moderation invalidates explicitly, a fresh render catches up
		tc.cache.Invalidate("first-post")
		third := get(router, "/posts/first-post").Body.String()
		assert.Contains(t, third, "Cam: Me too")
	})

	t.Run("post published after startup renders on demand", func(t *testing.T) {
		seedPost(t, tc.db, "late-arrival")
		w := get(router, "/posts/late-arrival")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("index lists slugs", func(t *testing.T) {
		w := get(router, "/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "first-post")
	})
}

func TestCommentFormFlow(t *testing.T) {
	router, tc := setupRouter(t)
	seedPost(t, tc.db, "form-post")

	postForm := func(values url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/posts/form-post/comments",
			strings.NewReader(values.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("missing fields show inline errors", func(t *testing.T) {
		w := postForm(url.Values{"name": {"Ada"}})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, forms.EmailRequiredMessage)
		assert.Contains(t, body, forms.CommentRequiredMessage)
		assert.NotContains(t, body, forms.NameRequiredMessage)
		assert.NotContains(t, body, "Thank you for your feedback")
	})

	t.Run("valid submission renders acknowledgment", func(t *testing.T) {
		w := postForm(url.Values{
			"name":    {"Ada"},
			"email":   {"a@x.com"},
			"comment": {"Great post"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Thank you for your feedback")
	})

	t.Run("pending comment invisible on the page", func(t *testing.T) {
		tc.cache.Invalidate("form-post")
		w := get(router, "/posts/form-post")
		assert.NotContains(t, w.Body.String(), "Great post")
	})

	t.Run("form against unknown slug is a 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/posts/missing/comments",
			strings.NewReader("name=Ada"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAPIRoutes(t *testing.T) {
	router, tc := setupRouter(t)
	post := seedPost(t, tc.db, "api-post")
	seedComment(t, tc.db, post, "Ada", "Great post", true)
	pending := seedComment(t, tc.db, post, "Bob", "First!", false)

	t.Run("createComment end to end", func(t *testing.T) {
		payload := `{"_id":"` + post.ID + `","name":"Cam","email":"c@x.com","comment":"hello"}`
		req := httptest.NewRequest(http.MethodPost, "/api/createComment", strings.NewReader(payload))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Comment submitted"}`, w.Body.String())
	})

	t.Run("post by slug joins approved comments", func(t *testing.T) {
		w := get(router, "/api/posts/api-post")
		require.Equal(t, http.StatusOK, w.Code)

		var got models.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, post.ID, got.ID)
		require.Len(t, got.Comments, 1)
		assert.Equal(t, "Ada", got.Comments[0].Name)
	})

	t.Run("unknown slug is 404 JSON", func(t *testing.T) {
		w := get(router, "/api/posts/none")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Post not found")
	})

	t.Run("path enumeration", func(t *testing.T) {
		w := get(router, "/api/posts")
		require.Equal(t, http.StatusOK, w.Code)

		var refs []*models.PostRef
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &refs))
		require.Len(t, refs, 1)
		assert.Equal(t, "api-post", refs[0].Slug.Current)
	})

	t.Run("moderation flips visibility and drops cached page", func(t *testing.T) {
		// warm the page cache first
		webBefore := get(router, "/posts/api-post").Body.String()
		assert.NotContains(t, webBefore, "First!")

		req := httptest.NewRequest(http.MethodPost, "/api/comments/"+pending.ID+"/approve", nil)
		req.Header.Set("Authorization", "Bearer letmein")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		webAfter := get(router, "/posts/api-post").Body.String()
		assert.Contains(t, webAfter, "Bob: First!")
	})

	t.Run("unknown api route is JSON 404", func(t *testing.T) {
		w := get(router, "/api/unknown")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
	})
}
