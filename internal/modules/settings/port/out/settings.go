package out

import "context"

// SettingsStore is a durable key/value table. Get reports ErrNotFound for
// unset keys; callers decide the fallback.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) (map[string]string, error)
}
