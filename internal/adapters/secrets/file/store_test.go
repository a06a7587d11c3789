package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKeyRef = "clockify/api_key"

func TestStoreRejectsKeysOutsideRoot(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	tests := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "blank", key: " \t", wantErr: "secret key is empty"},
		{name: "absolute", key: "/etc/passwd", wantErr: "invalid secret key"},
		{name: "parent", key: "..", wantErr: "invalid secret key"},
		{name: "traversal", key: "clockify/../../escape", wantErr: "invalid secret key"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := store.Put(context.Background(), tt.key, "value")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestStoreRoundTripUsesPrivateFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), apiKeyRef, "key-123"))

	got, err := store.Get(context.Background(), apiKeyRef)
	require.NoError(t, err)
	assert.Equal(t, "key-123", got)

	info, err := os.Stat(filepath.Join(root, "clockify", "api_key"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretMode), info.Mode().Perm())
}

func TestStoreOverwriteTightensPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "clockify", "api_key")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	store := NewStore(root)
	require.NoError(t, store.Put(context.Background(), apiKeyRef, "new"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretMode), info.Mode().Perm())
}

func TestStoreGetMissingReportsNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Get(context.Background(), apiKeyRef)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	require.NoError(t, store.Put(context.Background(), apiKeyRef, "key"))
	require.NoError(t, store.Delete(context.Background(), apiKeyRef))
	require.NoError(t, store.Delete(context.Background(), apiKeyRef))

	_, err := store.Get(context.Background(), apiKeyRef)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore(t.TempDir()).Put(ctx, apiKeyRef, "key")
	assert.ErrorIs(t, err, context.Canceled)
}
