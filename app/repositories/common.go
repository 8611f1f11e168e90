package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("record not found")
)

const (
	// Key prefixes for different document types
	PostKeyPrefix    = "post:"
	CommentKeyPrefix = "comment:"

	// Slug index entries map a slug to its post's document key
	SlugKeyPrefix = "slug:"
)

func postKey(id string) []byte {
	return []byte(PostKeyPrefix + id)
}

func slugKey(slug string) []byte {
	return []byte(SlugKeyPrefix + slug)
}

// commentKey carries the post ID so comments for one post share a prefix.
func commentKey(postID, id string) []byte {
	return []byte(fmt.Sprintf("%s%s:%s", CommentKeyPrefix, postID, id))
}

// marshalEntity marshals an entity to JSON
func marshalEntity(entity interface{}) ([]byte, error) {
	data, err := json.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entity: %v", err)
	}
	return data, nil
}

// unmarshalEntity unmarshals JSON data into an entity
func unmarshalEntity(data []byte, entity interface{}) error {
	if err := json.Unmarshal(data, entity); err != nil {
		return fmt.Errorf("failed to unmarshal entity: %v", err)
	}
	return nil
}
