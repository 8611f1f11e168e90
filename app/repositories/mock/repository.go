package mock

import (
	"errors"
	"sync"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

type PostRepository struct {
	posts map[string]*models.Post
	slugs map[string]string
	mutex sync.RWMutex

	// FailNext forces the next write to fail, for store-failure paths
	FailNext bool
}

type CommentRepository struct {
	comments map[string]*models.Comment
	mutex    sync.RWMutex

	FailNext bool
}

var errStoreDown = errors.New("store unavailable")

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]*models.Post),
		slugs: make(map[string]string),
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[string]*models.Comment),
	}
}

// PostRepository implementation

func (m *PostRepository) Create(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.FailNext {
		m.FailNext = false
		return errStoreDown
	}

	post.BeforeCreate()
	m.posts[post.ID] = post
	m.slugs[post.Slug.Current] = post.ID
	return nil
}

func (m *PostRepository) GetByID(id string) (*models.Post, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return post, nil
}

func (m *PostRepository) GetBySlug(slug string) (*models.Post, error) {
	m.mutex.RLock()
	id, exists := m.slugs[slug]
	m.mutex.RUnlock()

	if !exists {
		return nil, repositories.ErrNotFound
	}
	return m.GetByID(id)
}

func (m *PostRepository) ListRefs() ([]*models.PostRef, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var refs []*models.PostRef
	for _, post := range m.posts {
		refs = append(refs, &models.PostRef{ID: post.ID, Slug: post.Slug})
	}
	return refs, nil
}

func (m *PostRepository) Update(post *models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	existing, exists := m.posts[post.ID]
	if !exists {
		return repositories.ErrNotFound
	}
	delete(m.slugs, existing.Slug.Current)
	m.posts[post.ID] = post
	m.slugs[post.Slug.Current] = post.ID
	return nil
}

func (m *PostRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	post, exists := m.posts[id]
	if !exists {
		return repositories.ErrNotFound
	}
	delete(m.slugs, post.Slug.Current)
	delete(m.posts, id)
	return nil
}

// CommentRepository implementation

func (m *CommentRepository) Create(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.FailNext {
		m.FailNext = false
		return errStoreDown
	}

	if err := comment.Validate(); err != nil {
		return err
	}
	comment.BeforeCreate()
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) GetByID(id string) (*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return comment, nil
}

func (m *CommentRepository) ListByPost(postID string) ([]*models.Comment, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var comments []*models.Comment
	for _, comment := range m.comments {
		if comment.Post.Ref == postID {
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func (m *CommentRepository) ListApprovedByPost(postID string) ([]*models.Comment, error) {
	all, err := m.ListByPost(postID)
	if err != nil {
		return nil, err
	}

	var approved []*models.Comment
	for _, comment := range all {
		if comment.IsApproved {
			approved = append(approved, comment)
		}
	}
	return approved, nil
}

func (m *CommentRepository) Update(comment *models.Comment) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[comment.ID]; !exists {
		return repositories.ErrNotFound
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *CommentRepository) Delete(id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}
