package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/bnema/clockify-timesheet/internal/ports"
)

var ErrMissingAPIKey = errors.New("clockify api key is not configured")

// CredentialService manages the Clockify API key in the secret store.
type CredentialService struct {
	store ports.SecretStore
}

func NewCredentialService(store ports.SecretStore) *CredentialService {
	return &CredentialService{store: store}
}

func (s *CredentialService) SetAPIKey(ctx context.Context, ref string, apiKey string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errors.New("api key secret ref is empty")
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("api key is empty")
	}

	if err := s.store.Put(ctx, ref, apiKey); err != nil {
		return fmt.Errorf("store api key: %w", err)
	}

	return nil
}

func (s *CredentialService) RemoveAPIKey(ctx context.Context, ref string) error {
	if err := s.store.Delete(ctx, ref); err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}

	return nil
}

// ResolveAPIKey prefers an explicitly configured key and falls back to the
// secret store.
func (s *CredentialService) ResolveAPIKey(ctx context.Context, explicit string, ref string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if strings.TrimSpace(ref) == "" {
		return "", ErrMissingAPIKey
	}

	value, err := s.store.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", fmt.Errorf("%w: run `cts auth set --api-key <key>`", ErrMissingAPIKey)
		}
		return "", fmt.Errorf("load api key %q: %w", ref, err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrMissingAPIKey
	}

	return value, nil
}
