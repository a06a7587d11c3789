package ports

import "context"

// SecretStore holds credentials such as the Clockify API key, addressed by
// a slash separated key.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
