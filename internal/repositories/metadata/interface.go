// Package metadata is a small key-value store for client bookkeeping, such
// as the last_update_time stamp the sync collaborator reads.
package metadata

import (
	"context"
)

// Repository describes the key-value operations. A missing key reads as
// the empty string, not an error.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
