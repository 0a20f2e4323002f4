package contract

import "context"

// ITagCache caches the distinct ingredient/type tag lists served to the
// filter UI. A nil cache is valid; callers fall through to the store.
type ITagCache interface {
	GetList(ctx context.Context, key string) ([]string, bool, error)
	SetList(ctx context.Context, key string, values []string) error
	Invalidate(ctx context.Context, keys ...string) error
}
