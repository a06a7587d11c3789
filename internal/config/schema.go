package config

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int            `toml:"version"`
	Clockify clockifySchema `toml:"clockify"`
	Export   exportSchema   `toml:"export"`
	Secrets  secretsSchema  `toml:"secrets"`
}

type clockifySchema struct {
	BaseURL        string `toml:"base_url"`
	WorkspaceID    string `toml:"workspace_id"`
	UserID         string `toml:"user_id"`
	ProjectID      string `toml:"project_id,omitempty"`
	APIKey         string `toml:"api_key,omitempty"`
	APIKeyRef      string `toml:"api_key_ref"`
	PageSize       int    `toml:"page_size"`
	MaxPages       int    `toml:"max_pages"`
	RequestTimeout string `toml:"request_timeout"`
}

type exportSchema struct {
	Delimiter string `toml:"delimiter"`
	SplitDays bool   `toml:"split_days"`
	Timezone  string `toml:"timezone"`
	OutputDir string `toml:"output_dir,omitempty"`
}

type secretsSchema struct {
	Dir     string `toml:"dir"`
	Backend string `toml:"backend"`
}

func validateVersion(version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", version, currentSchemaVersion)
	}
	return nil
}

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindBool
	kindDuration
)

// settableKeys lists every key `config set` accepts.
var settableKeys = map[string]valueKind{
	keyBaseURL:        kindString,
	keyWorkspaceID:    kindString,
	keyUserID:         kindString,
	keyProjectID:      kindString,
	keyAPIKeyRef:      kindString,
	keyPageSize:       kindInt,
	keyMaxPages:       kindInt,
	keyRequestTimeout: kindDuration,
	keyDelimiter:      kindString,
	keySplitDays:      kindBool,
	keyTimezone:       kindString,
	keyOutputDir:      kindString,
	keySecretsDir:     kindString,
	keySecretsBackend: kindString,
}
