package repositories

import (
	"fmt"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerCommentRepository implements CommentRepository using BadgerDB
type BadgerCommentRepository struct {
	db *badger.DB
}

// NewBadgerCommentRepository creates a new BadgerCommentRepository
func NewBadgerCommentRepository(db *badger.DB) *BadgerCommentRepository {
	return &BadgerCommentRepository{db: db}
}

// Create creates a new comment document
func (r *BadgerCommentRepository) Create(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		comment.BeforeCreate()

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}

		return txn.Set(commentKey(comment.Post.Ref, comment.ID), data)
	})
}

// GetByID retrieves a comment by ID
func (r *BadgerCommentRepository) GetByID(id string) (*models.Comment, error) {
	var comment models.Comment
	var found bool

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				if err := unmarshalEntity(val, &comment); err != nil {
					return err
				}
				if comment.ID == id {
					found = true
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %v", err)
			}
			if found {
				break
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &comment, nil
}

// ListByPost retrieves every comment referencing a post, approved or not
func (r *BadgerCommentRepository) ListByPost(postID string) ([]*models.Comment, error) {
	return r.listByPost(postID, false)
}

// ListApprovedByPost retrieves only the comments cleared by moderation. This
// is the query the render path uses; unapproved documents never leave it.
func (r *BadgerCommentRepository) ListApprovedByPost(postID string) ([]*models.Comment, error) {
	return r.listByPost(postID, true)
}

func (r *BadgerCommentRepository) listByPost(postID string, approvedOnly bool) ([]*models.Comment, error) {
	var comments []*models.Comment

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(fmt.Sprintf("%s%s:", CommentKeyPrefix, postID))
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %v", err)
			}

			if approvedOnly && !comment.IsApproved {
				continue
			}
			comments = append(comments, &comment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Update updates an existing comment in place
func (r *BadgerCommentRepository) Update(comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		key := commentKey(comment.Post.Ref, comment.ID)

		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		data, err := marshalEntity(comment)
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Delete deletes a comment by ID
func (r *BadgerCommentRepository) Delete(id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var key []byte
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(CommentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var comment models.Comment
			err := item.Value(func(val []byte) error {
				return unmarshalEntity(val, &comment)
			})
			if err != nil {
				return fmt.Errorf("failed to unmarshal comment: %v", err)
			}
			if comment.ID == id {
				key = item.KeyCopy(nil)
				break
			}
		}

		if key == nil {
			return ErrNotFound
		}

		return txn.Delete(key)
	})
}
