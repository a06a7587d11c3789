package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/bnema/clockify-timesheet/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKeyRef = "clockify/api_key"

func TestCredentialServiceSetAPIKeyTrimsAndStores(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(store)

	store.EXPECT().Put(mockAnyContext(), apiKeyRef, "key-123").Return(nil).Once()

	require.NoError(t, service.SetAPIKey(context.Background(), apiKeyRef, "  key-123\n"))
}

func TestCredentialServiceSetAPIKeyRejectsEmptyValues(t *testing.T) {
	t.Parallel()

	service := NewCredentialService(mocks.NewMockSecretStore(t))

	assert.ErrorContains(t, service.SetAPIKey(context.Background(), apiKeyRef, " "), "api key is empty")
	assert.ErrorContains(t, service.SetAPIKey(context.Background(), "", "key"), "secret ref is empty")
}

func TestCredentialServiceResolvePrefersExplicitKey(t *testing.T) {
	t.Parallel()

	service := NewCredentialService(mocks.NewMockSecretStore(t))

	key, err := service.ResolveAPIKey(context.Background(), "from-env", apiKeyRef)
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestCredentialServiceResolveFallsBackToStore(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(store)
	store.EXPECT().Get(mockAnyContext(), apiKeyRef).Return("from-store\n", nil).Once()

	key, err := service.ResolveAPIKey(context.Background(), "", apiKeyRef)
	require.NoError(t, err)
	assert.Equal(t, "from-store", key)
}

func TestCredentialServiceResolveReportsMissingKey(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(store)
	store.EXPECT().Get(mockAnyContext(), apiKeyRef).Return("", fmt.Errorf("file secret: %w", domain.ErrSecretNotFound)).Once()

	_, err := service.ResolveAPIKey(context.Background(), "", apiKeyRef)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.ErrorContains(t, err, "cts auth set")

	_, err = service.ResolveAPIKey(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestCredentialServiceResolveWrapsStoreFailures(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(store)
	storeErr := errors.New("gpg agent locked")
	store.EXPECT().Get(mockAnyContext(), apiKeyRef).Return("", storeErr).Once()

	_, err := service.ResolveAPIKey(context.Background(), "", apiKeyRef)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, ErrMissingAPIKey)
}

func TestCredentialServiceRemoveAPIKey(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockSecretStore(t)
	service := NewCredentialService(store)
	store.EXPECT().Delete(mockAnyContext(), apiKeyRef).Return(nil).Once()

	require.NoError(t, service.RemoveAPIKey(context.Background(), apiKeyRef))
}
