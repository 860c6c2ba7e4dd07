package repository

import (
	"context"
	"errors"
)

var (
	// ErrObjectNotFound is an expected state ("no data yet"), not a failure.
	ErrObjectNotFound = errors.New("object not found")
	// ErrPreconditionFailed means the object changed since it was read.
	ErrPreconditionFailed = errors.New("object generation mismatch")
)

type Object struct {
	Key         string
	Data        []byte
	ContentType string
	Generation  int64
}

// PutOptions.IfGeneration: nil writes unconditionally, a pointer to 0 requires
// the object to not exist yet, any other value must equal the stored generation.
type PutOptions struct {
	IfGeneration *int64
}

type ObjectStore interface {
	Get(ctx context.Context, key string) (*Object, error)
	Put(ctx context.Context, key string, data []byte, contentType string, opts PutOptions) (int64, error)
	PublicURL(key string) string
}

func Generation(g int64) *int64 {
	return &g
}
