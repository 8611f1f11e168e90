package routes

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"inkwell/app/models"
	"inkwell/app/render"
	"inkwell/app/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// setupTestViews writes a minimal view set under a temp dir and returns it
// as the controllers' base path.
func setupTestViews(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "app", "views")

	dirs := []string{
		filepath.Join(viewsDir, "posts"),
		filepath.Join(viewsDir, "shared"),
	}
	for _, dir := range dirs {
		require.NoError(t, os.MkdirAll(dir, 0755))
	}

	templates := map[string]string{
		filepath.Join(viewsDir, "layout.html"): `{{define "layout"}}<html><body>{{template "content" .}}</body></html>{{end}}`,
		filepath.Join(viewsDir, "posts/index.html"): `{{define "content"}}<ul>{{range .Refs}}<li>{{.Slug.Current}}</li>{{end}}</ul>{{end}}`,
		filepath.Join(viewsDir, "posts/show.html"): `{{define "content"}}<h1>{{.Post.Title}}</h1>{{.Body}}` +
			`{{if .Form.IsSubmitted}}<div>Thank you for your feedback</div>{{else}}` +
			`<form>{{with .Form.Errors.name}}<span>{{.}}</span>{{end}}` +
			`{{with .Form.Errors.email}}<span>{{.}}</span>{{end}}` +
			`{{with .Form.Errors.comment}}<span>{{.}}</span>{{end}}` +
			`<input type="submit" value="{{.Form.SubmitLabel}}"></form>{{end}}` +
			`{{template "comments" .}}{{end}}`,
		filepath.Join(viewsDir, "shared/comments.html"): `{{define "comments"}}{{range .Comments}}<p>{{.Name}}: {{.Comment}}</p>{{end}}{{end}}`,
	}
	for path, content := range templates {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	return tmpDir
}

func setupTestDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedPost(t *testing.T, db *badger.DB, slug string) *models.Post {
	t.Helper()

	block, err := render.MarkdownBlock("Some **bold** prose.")
	require.NoError(t, err)

	post := &models.Post{
		CreatedAt:   time.Now(),
		Title:       "Seeded post",
		Description: "For route tests",
		Body:        []models.Block{block},
		Author:      models.Author{Name: "Ada"},
		Slug:        models.Slug{Current: slug},
	}
	require.NoError(t, repositories.NewBadgerPostRepository(db).Create(post))
	return post
}

func seedComment(t *testing.T, db *badger.DB, post *models.Post, name, body string, approved bool) *models.Comment {
	t.Helper()

	comment := models.NewComment(post.ID, name, name+"@x.com", body)
	comment.IsApproved = approved
	require.NoError(t, repositories.NewBadgerCommentRepository(db).Create(comment))
	return comment
}
