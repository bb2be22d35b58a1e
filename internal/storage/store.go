// Package storage persists generated photos and their thumbnails in an
// object store and owns the path convention that ties the two together.
package storage

import "context"

// Object is one blob to persist, with the headers it should be served with.
type Object struct {
	Key          string
	Data         []byte
	ContentType  string
	CacheControl string
}

// ObjectStore abstracts the backing object store. Objects written through it
// are publicly retrievable at PublicURL(key).
type ObjectStore interface {
	Put(ctx context.Context, obj Object) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
