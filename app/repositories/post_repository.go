package repositories

import (
	"strings"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// Create creates a new post and indexes its slug
func (r *BadgerPostRepository) Create(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		post.BeforeCreate()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}

		if err := txn.Set(postKey(post.ID), data); err != nil {
			return err
		}
		return txn.Set(slugKey(post.Slug.Current), []byte(post.ID))
	})
}

// GetByID retrieves a post by ID
func (r *BadgerPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		})
	})

	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a post through the slug index
func (r *BadgerPostRepository) GetBySlug(slug string) (*models.Post, error) {
	var id string

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(slugKey(slug))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			id = string(val)
			return nil
		})
	})

	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

// ListRefs retrieves the id and slug of every post, for path enumeration
func (r *BadgerPostRepository) ListRefs() ([]*models.PostRef, error) {
	var refs []*models.PostRef

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(PostKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var post models.Post
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			refs = append(refs, &models.PostRef{ID: post.ID, Slug: post.Slug})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}

// Update updates an existing post, moving its slug index entry if needed
func (r *BadgerPostRepository) Update(post *models.Post) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(post.ID))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var existing models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &existing)
		}); err != nil {
			return err
		}

		if existing.Slug.Current != post.Slug.Current {
			if err := txn.Delete(slugKey(existing.Slug.Current)); err != nil {
				return err
			}
			if err := txn.Set(slugKey(post.Slug.Current), []byte(post.ID)); err != nil {
				return err
			}
		}

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(post.ID), data)
	})
}

// Delete deletes a post and its slug index entry
func (r *BadgerPostRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(postKey(id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var post models.Post
		if err := item.Value(func(val []byte) error {
			return unmarshalEntity(val, &post)
		}); err != nil {
			return err
		}

		if strings.TrimSpace(post.Slug.Current) != "" {
			if err := txn.Delete(slugKey(post.Slug.Current)); err != nil {
				return err
			}
		}
		return txn.Delete(postKey(id))
	})
}
