package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bnema/clockify-timesheet/internal/adapters/clockify"
	sheetrender "github.com/bnema/clockify-timesheet/internal/adapters/render/sheet"
	chainstore "github.com/bnema/clockify-timesheet/internal/adapters/secrets/chain"
	filestore "github.com/bnema/clockify-timesheet/internal/adapters/secrets/file"
	passstore "github.com/bnema/clockify-timesheet/internal/adapters/secrets/pass"
	"github.com/bnema/clockify-timesheet/internal/application"
	"github.com/bnema/clockify-timesheet/internal/config"
	"github.com/bnema/clockify-timesheet/internal/domain"
	"github.com/bnema/clockify-timesheet/internal/ports"
	"github.com/bnema/clockify-timesheet/internal/version"
	"github.com/spf13/viper"
)

type app struct {
	cfg           config.Config
	credentials   *application.CredentialService
	sheetRenderer func(application.Sheet, sheetrender.RenderOptions) (string, error)
	httpClient    *http.Client
	clock         ports.Clock
}

func wireApp(configPath string) (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg, err := config.Load(viper.New(), config.LoadOptions{Home: homeDir, Path: configPath})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	secretStore, err := newSecretStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire secret store: %w", err)
	}

	return &app{
		cfg:           cfg,
		credentials:   application.NewCredentialService(secretStore),
		sheetRenderer: sheetrender.Render,
		httpClient:    http.DefaultClient,
		clock:         ports.SystemClock{},
	}, nil
}

func newSecretStore(cfg config.Config) (ports.SecretStore, error) {
	prefix := envOrDefault("CTS_PASS_PREFIX", passstore.DefaultPrefix)

	switch cfg.SecretsBackend {
	case config.SecretsBackendFile:
		return filestore.NewStore(cfg.SecretsDir), nil
	case config.SecretsBackendPass:
		return passstore.NewStore(prefix), nil
	default:
		return chainstore.NewPassWithFileFallback(prefix, cfg.SecretsDir)
	}
}

// exportService builds the fetch pipeline for one command run. Sink may be
// nil for previews.
func (a *app) exportService(ctx context.Context, sink ports.Sink) (*application.ExportService, error) {
	if err := a.cfg.ValidateForFetch(); err != nil {
		return nil, err
	}

	apiKey, err := a.credentials.ResolveAPIKey(ctx, a.cfg.Clockify.APIKey, a.cfg.Clockify.APIKeyRef)
	if err != nil {
		return nil, err
	}

	source := &clockify.Client{
		BaseURL:        a.cfg.Clockify.BaseURL,
		APIKey:         apiKey,
		WorkspaceID:    a.cfg.Clockify.WorkspaceID,
		UserID:         a.cfg.Clockify.UserID,
		ProjectID:      a.cfg.Clockify.ProjectID,
		Location:       a.cfg.Export.Location,
		PageSize:       a.cfg.Clockify.PageSize,
		MaxPages:       a.cfg.Clockify.MaxPages,
		UserAgent:      "cts/" + version.Version,
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.Clockify.RequestTimeout,
	}

	consolidator := domain.Consolidator{
		SplitAtDayBoundary: a.cfg.Export.SplitDays,
		Location:           a.cfg.Export.Location,
	}

	return application.NewExportService(source, sink, consolidator, a.clock), nil
}

func (a *app) location() *time.Location {
	if a.cfg.Export.Location == nil {
		return time.Local
	}
	return a.cfg.Export.Location
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
