package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"inkwell/app/models"
	"inkwell/app/render"
	"inkwell/app/repositories"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

const frontMatterDelimiter = "+++"

// frontMatter is the TOML header of a post file.
type frontMatter struct {
	Title       string    `toml:"title"`
	Description string    `toml:"description"`
	Slug        string    `toml:"slug"`
	Date        time.Time `toml:"date"`
	AuthorName  string    `toml:"author_name"`
	AuthorImage string    `toml:"author_image"`
	MainImage   string    `toml:"main_image"`
}

// Loader imports post documents into the content store from a directory of
// markdown files with TOML front matter. It stands in for the authoring side
// of a CMS: comments never pass through here.
type Loader struct {
	root  string
	posts repositories.PostRepository

	// OnReload runs after every successful import, e.g. to drop cached pages.
	OnReload func()
}

// New creates a loader over the given content root.
func New(root string, posts repositories.PostRepository) *Loader {
	return &Loader{root: root, posts: posts}
}

// Load imports every post file under the content root. Files that fail to
// parse are logged and skipped so one bad document cannot take down startup.
func (l *Loader) Load() error {
	pattern := filepath.Join(l.root, "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	loaded := 0
	for _, file := range files {
		if err := l.loadFile(file); err != nil {
			log.Error().Err(err).Str("file", file).Msg("failed to load post")
			continue
		}
		loaded++
	}
	log.Info().Int("posts", loaded).Str("root", l.root).Msg("content loaded")

	if l.OnReload != nil {
		l.OnReload()
	}
	return nil
}

func (l *Loader) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	post, err := Parse(string(data), slugFromPath(path))
	if err != nil {
		return err
	}

	// Upsert keyed on slug so re-imports keep the document identity and
	// every comment referencing it.
	existing, err := l.posts.GetBySlug(post.Slug.Current)
	switch err {
	case nil:
		post.ID = existing.ID
		post.CreatedAt = existing.CreatedAt
		return l.posts.Update(post)
	case repositories.ErrNotFound:
		return l.posts.Create(post)
	default:
		return err
	}
}

// Watch re-imports the content root whenever a file under it changes. It
// blocks until the watcher fails or stop is closed.
func (l *Loader) Watch(stop <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to build content watcher: %v", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.root); err != nil {
		return fmt.Errorf("failed to watch content directory: %v", err)
	}

	for {
		select {
		case <-stop:
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".md") {
				continue
			}
			if err := l.Load(); err != nil {
				log.Error().Err(err).Msg("content reload failed")
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("content watcher error")
		}
	}
}

// Parse turns a post file's text into a post document. fallbackSlug is used
// when the front matter does not name one.
func Parse(content, fallbackSlug string) (*models.Post, error) {
	rest, found := strings.CutPrefix(strings.TrimLeft(content, "\r\n"), frontMatterDelimiter)
	if !found {
		return nil, fmt.Errorf("missing front matter delimiter %q", frontMatterDelimiter)
	}

	head, body, found := strings.Cut(rest, frontMatterDelimiter)
	if !found {
		return nil, fmt.Errorf("unterminated front matter")
	}

	var fm frontMatter
	if err := toml.Unmarshal([]byte(head), &fm); err != nil {
		return nil, fmt.Errorf("invalid front matter: %v", err)
	}

	if fm.Slug == "" {
		fm.Slug = fallbackSlug
	}
	if fm.Date.IsZero() {
		fm.Date = time.Now()
	}

	block, err := render.MarkdownBlock(strings.TrimSpace(body))
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		CreatedAt:   fm.Date,
		Title:       fm.Title,
		Description: fm.Description,
		Body:        []models.Block{block},
		Author:      models.Author{Name: fm.AuthorName, Image: fm.AuthorImage},
		MainImage:   models.Image{URL: fm.MainImage},
		Slug:        models.Slug{Current: fm.Slug},
	}
	post.BeforeCreate()

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post document: %v", err)
	}
	return post, nil
}

func slugFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
