// Package dao defines a minimal generic keyed-store contract used by
// components that need to retain records, such as the audit recorder.
package dao

import "context"

// Service is a generic keyed store for entities of type T.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context) ([]*T, error)
}
