package storage

import "io"

// Storage is the object store source images are uploaded to.
type Storage interface {
	Upload(key string, src io.Reader) error
	Delete(key string) error
	// PublicURL returns the externally reachable URL for a stored key.
	PublicURL(key string) string
}
