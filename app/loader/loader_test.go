package loader

import (
	"os"
	"path/filepath"
	"testing"

	"inkwell/app/render"
	"inkwell/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePost = `+++
title = "Understanding moderation queues"
description = "Why your comment does not show up immediately"
author_name = "Ada"
date = 2024-05-01T10:00:00Z
+++

# Moderation

Comments wait for approval.
`

func TestParse(t *testing.T) {
	post, err := Parse(samplePost, "understanding-moderation-queues")
	require.NoError(t, err)

	assert.Equal(t, "Understanding moderation queues", post.Title)
	assert.Equal(t, "Ada", post.Author.Name)
	assert.Equal(t, "understanding-moderation-queues", post.Slug.Current)
	assert.NotEmpty(t, post.ID)
	require.Len(t, post.Body, 1)

	html := string(render.Body(post.Body))
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Comments wait for approval.")
}

func TestParseExplicitSlugWins(t *testing.T) {
	content := `+++
title = "Some title"
slug = "explicit-slug"
author_name = "Ada"
+++
body
`
	post, err := Parse(content, "file-name-slug")
	require.NoError(t, err)
	assert.Equal(t, "explicit-slug", post.Slug.Current)
	assert.False(t, post.CreatedAt.IsZero())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no front matter", "# Just markdown"},
		{"unterminated front matter", "+++\ntitle = \"x\"\n"},
		{"invalid toml", "+++\ntitle = = =\n+++\nbody"},
		{"fails validation", "+++\ndescription = \"no title\"\n+++\nbody"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content, "slug")
			assert.Error(t, err)
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first-post.md"), []byte(samplePost), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.md"), []byte("no front matter"), 0644))

	posts := mock.NewPostRepository()
	reloads := 0
	l := New(dir, posts)
	l.OnReload = func() { reloads++ }

	require.NoError(t, l.Load())

	refs, err := posts.ListRefs()
	require.NoError(t, err)
	require.Len(t, refs, 1, "broken file is skipped, good one lands")
	assert.Equal(t, "first-post", refs[0].Slug.Current)
	assert.Equal(t, 1, reloads)
}

func TestReloadKeepsDocumentIdentity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "understanding-moderation-queues.md")
	require.NoError(t, os.WriteFile(path, []byte(samplePost), 0644))

	posts := mock.NewPostRepository()
	l := New(dir, posts)
	require.NoError(t, l.Load())

	before, err := posts.GetBySlug("understanding-moderation-queues")
	require.NoError(t, err)

	require.NoError(t, l.Load())

	after, err := posts.GetBySlug("understanding-moderation-queues")
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID, "re-import must not orphan comment references")
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
}
