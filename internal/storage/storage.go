package storage

import "context"

// ObjectInfo represents metadata for a remote file/object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// ObjectStorage captures the minimal S3-compatible operations the pipeline needs.
type ObjectStorage interface {
	// Exists reports whether the object is present. Only a not-found
	// condition maps to (false, nil); any other failure is returned to
	// the caller.
	Exists(ctx context.Context, key string) (bool, error)
	// Upload stores the local file under key.
	Upload(ctx context.Context, key string, localPath string) error
	// List returns the objects under prefix, in listing order. An empty
	// prefix match is an empty slice, not an error.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Get reads the full object body into memory.
	Get(ctx context.Context, key string) ([]byte, error)
}
