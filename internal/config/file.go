package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	fileMode        = 0o600
	dirMode         = 0o700
	tempFilePattern = ".config-*.toml.tmp"
)

// Set writes a single key into the TOML file at path, creating the file when
// needed. Unknown keys are rejected. The API key itself is never written
// here; it belongs in the secret store.
func Set(path string, key string, value string) error {
	kind, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(SettableKeys(), ", "))
	}

	typed, err := convert(kind, key, value)
	if err != nil {
		return err
	}

	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	section, field, _ := strings.Cut(key, ".")
	table, ok := doc[section].(map[string]any)
	if !ok {
		table = map[string]any{}
	}
	table[field] = typed
	doc[section] = table
	doc[keyVersion] = currentSchemaVersion

	return writeDocument(path, doc)
}

func SettableKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for key := range settableKeys {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Render returns the effective configuration as TOML, with the API key
// redacted.
func (c Config) Render() (string, error) {
	apiKey := ""
	if c.Clockify.APIKey != "" {
		apiKey = "<redacted>"
	}

	delimiter := string(c.Export.Delimiter)
	if c.Export.Delimiter == '\t' {
		delimiter = "tab"
	}

	timezone := "Local"
	if c.Export.Location != nil {
		timezone = c.Export.Location.String()
	}

	data, err := toml.Marshal(fileSchema{
		Version: currentSchemaVersion,
		Clockify: clockifySchema{
			BaseURL:        c.Clockify.BaseURL,
			WorkspaceID:    c.Clockify.WorkspaceID,
			UserID:         c.Clockify.UserID,
			ProjectID:      c.Clockify.ProjectID,
			APIKey:         apiKey,
			APIKeyRef:      c.Clockify.APIKeyRef,
			PageSize:       c.Clockify.PageSize,
			MaxPages:       c.Clockify.MaxPages,
			RequestTimeout: c.Clockify.RequestTimeout.String(),
		},
		Export: exportSchema{
			Delimiter: delimiter,
			SplitDays: c.Export.SplitDays,
			Timezone:  timezone,
			OutputDir: c.Export.OutputDir,
		},
		Secrets: secretsSchema{Dir: c.SecretsDir, Backend: c.SecretsBackend},
	})
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}

	return string(data), nil
}

func convert(kind valueKind, key string, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", key, value)
		}
		return int64(n), nil
	case kindBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", key, value)
		}
		return b, nil
	case kindDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return nil, fmt.Errorf("%s: %q is not a duration", key, value)
		}
		return value, nil
	default:
		if key == keyDelimiter {
			if _, err := parseDelimiter(value); err != nil {
				return nil, err
			}
		}
		if key == keyTimezone {
			if _, err := loadLocation(value); err != nil {
				return nil, err
			}
		}
		return value, nil
	}
}

func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	doc := map[string]any{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode config file: %w", err)
	}

	if raw, ok := doc[keyVersion]; ok {
		version, ok := raw.(int64)
		if !ok {
			return nil, fmt.Errorf("config version must be an integer, got %T", raw)
		}
		if err := validateVersion(int(version)); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func writeDocument(path string, doc map[string]any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config file: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tempFile.Chmod(fileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp config file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}

	cleanup = false
	return nil
}
