package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/clockify-timesheet/internal/adapters/secrets/file"
	passstore "github.com/bnema/clockify-timesheet/internal/adapters/secrets/pass"
	"github.com/bnema/clockify-timesheet/internal/ports"
)

var errNoBackends = errors.New("secret store chain has no backends")

// Store tries its backends in order. Reads and writes stop at the first
// backend that succeeds; deletes reach every backend so a key never lingers
// in a fallback.
type Store struct {
	backends []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore(backends ...ports.SecretStore) (*Store, error) {
	filtered := make([]ports.SecretStore, 0, len(backends))
	for _, backend := range backends {
		if backend != nil {
			filtered = append(filtered, backend)
		}
	}
	if len(filtered) == 0 {
		return nil, errNoBackends
	}

	return &Store{backends: filtered}, nil
}

// NewPassWithFileFallback prefers pass(1) entries under passPrefix and falls
// back to plain files in fileRoot.
func NewPassWithFileFallback(passPrefix string, fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(passPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for i, backend := range s.backends {
		value, err := backend.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if isContextErr(err) {
			return "", err
		}
		errs = append(errs, fmt.Errorf("backend %d: %w", i, err))
	}

	return "", fmt.Errorf("get secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for i, backend := range s.backends {
		err := backend.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if isContextErr(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d: %w", i, err))
	}

	return fmt.Errorf("put secret %q: %w", key, errors.Join(errs...))
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	deleted := false
	for i, backend := range s.backends {
		err := backend.Delete(ctx, key)
		if err == nil {
			deleted = true
			continue
		}
		if isContextErr(err) {
			return err
		}
		if errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		errs = append(errs, fmt.Errorf("backend %d: %w", i, err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("delete secret %q: %w", key, errors.Join(errs...))
	}
	if !deleted {
		return fmt.Errorf("delete secret %q: no backend available", key)
	}

	return nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
