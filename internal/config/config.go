// Package config loads cts settings from ~/.clockify-timesheet/config.toml
// and CTS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"
	"unicode/utf8"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".clockify-timesheet"
	envPrefix  = "CTS"

	DefaultBaseURL   = "https://api.clockify.me/api/v1"
	DefaultAPIKeyRef = "clockify/api_key"

	keyVersion        = "version"
	keyBaseURL        = "clockify.base_url"
	keyWorkspaceID    = "clockify.workspace_id"
	keyUserID         = "clockify.user_id"
	keyProjectID      = "clockify.project_id"
	keyAPIKey         = "clockify.api_key"
	keyAPIKeyRef      = "clockify.api_key_ref"
	keyPageSize       = "clockify.page_size"
	keyMaxPages       = "clockify.max_pages"
	keyRequestTimeout = "clockify.request_timeout"
	keyDelimiter      = "export.delimiter"
	keySplitDays      = "export.split_days"
	keyTimezone       = "export.timezone"
	keyOutputDir      = "export.output_dir"
	keySecretsDir     = "secrets.dir"
	keySecretsBackend = "secrets.backend"
)

const (
	SecretsBackendAuto = "auto"
	SecretsBackendPass = "pass"
	SecretsBackendFile = "file"
)

var ErrIncomplete = errors.New("configuration incomplete")

type Config struct {
	// Path is the config file in use, or the default location when none
	// exists yet.
	Path     string
	Clockify Clockify
	Export   Export
	// SecretsDir is the file fallback for the secret store.
	SecretsDir string
	// SecretsBackend is one of auto, pass or file.
	SecretsBackend string
}

type Clockify struct {
	BaseURL        string
	WorkspaceID    string
	UserID         string
	ProjectID      string
	APIKey         string
	APIKeyRef      string
	PageSize       int
	MaxPages       int
	RequestTimeout time.Duration
}

type Export struct {
	Delimiter rune
	SplitDays bool
	Location  *time.Location
	OutputDir string
}

type LoadOptions struct {
	Home string
	// Path overrides the config file lookup.
	Path string
}

func DefaultPath(home string) string {
	return filepath.Join(home, configDir, configName+"."+configType)
}

func Load(v *viper.Viper, opts LoadOptions) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if opts.Home == "" {
		return Config{}, errors.New("home directory is empty")
	}

	v.SetConfigType(configType)
	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(filepath.Join(opts.Home, configDir))
	}

	v.SetDefault(keyBaseURL, DefaultBaseURL)
	v.SetDefault(keyAPIKeyRef, DefaultAPIKeyRef)
	v.SetDefault(keyPageSize, 200)
	v.SetDefault(keyMaxPages, 100)
	v.SetDefault(keyRequestTimeout, "30s")
	v.SetDefault(keyDelimiter, ",")
	v.SetDefault(keySplitDays, true)
	v.SetDefault(keyTimezone, "Local")
	v.SetDefault(keySecretsDir, filepath.Join(opts.Home, configDir, "secrets"))
	v.SetDefault(keySecretsBackend, SecretsBackendAuto)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := validateVersion(v.GetInt(keyVersion)); err != nil {
		return Config{}, err
	}

	path := v.ConfigFileUsed()
	if path == "" {
		path = DefaultPath(opts.Home)
	}

	timeout, err := time.ParseDuration(v.GetString(keyRequestTimeout))
	if err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", keyRequestTimeout, err)
	}

	delimiter, err := parseDelimiter(v.GetString(keyDelimiter))
	if err != nil {
		return Config{}, err
	}

	location, err := loadLocation(v.GetString(keyTimezone))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Path: path,
		Clockify: Clockify{
			BaseURL:        strings.TrimRight(v.GetString(keyBaseURL), "/"),
			WorkspaceID:    strings.TrimSpace(v.GetString(keyWorkspaceID)),
			UserID:         strings.TrimSpace(v.GetString(keyUserID)),
			ProjectID:      strings.TrimSpace(v.GetString(keyProjectID)),
			APIKey:         strings.TrimSpace(v.GetString(keyAPIKey)),
			APIKeyRef:      strings.TrimSpace(v.GetString(keyAPIKeyRef)),
			PageSize:       v.GetInt(keyPageSize),
			MaxPages:       v.GetInt(keyMaxPages),
			RequestTimeout: timeout,
		},
		Export: Export{
			Delimiter: delimiter,
			SplitDays: v.GetBool(keySplitDays),
			Location:  location,
			OutputDir: v.GetString(keyOutputDir),
		},
		SecretsDir:     v.GetString(keySecretsDir),
		SecretsBackend: strings.ToLower(strings.TrimSpace(v.GetString(keySecretsBackend))),
	}

	if cfg.Clockify.PageSize <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d", keyPageSize, cfg.Clockify.PageSize)
	}
	if cfg.Clockify.MaxPages <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %d", keyMaxPages, cfg.Clockify.MaxPages)
	}
	switch cfg.SecretsBackend {
	case SecretsBackendAuto, SecretsBackendPass, SecretsBackendFile:
	default:
		return Config{}, fmt.Errorf("unsupported %s %q (want auto, pass or file)", keySecretsBackend, cfg.SecretsBackend)
	}

	return cfg, nil
}

// ValidateForFetch reports the settings still missing before entries can be
// fetched.
func (c Config) ValidateForFetch() error {
	var missing []string
	if c.Clockify.BaseURL == "" {
		missing = append(missing, keyBaseURL)
	}
	if c.Clockify.WorkspaceID == "" {
		missing = append(missing, keyWorkspaceID)
	}
	if c.Clockify.UserID == "" {
		missing = append(missing, keyUserID)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: set %s (cts config set KEY VALUE)", ErrIncomplete, strings.Join(missing, ", "))
	}
	return nil
}

func parseDelimiter(raw string) (rune, error) {
	switch strings.ToLower(raw) {
	case "tab", `\t`:
		return '\t', nil
	}

	r, size := utf8.DecodeRuneInString(raw)
	if size == 0 || size != len(raw) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("%s must be a single character, got %q", keyDelimiter, raw)
	}
	return r, nil
}

func loadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	}

	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load %s %q: %w", keyTimezone, name, err)
	}
	return location, nil
}
