package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/camspiers/dayzmanager/pkg/dayz"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

const DefaultFileName = "dayzmanager.yaml"

// Config is the desired state of one server installation. It is built once
// from the configuration file and passed into every component; nothing reads
// configuration ambiently.
type Config struct {
	// Root is the install root: the directory containing the configuration
	// file. Every managed path lives beneath it. Not read from yaml.
	Root string `yaml:"-"`

	Steam     Steam          `yaml:"steam"`
	Server    Server         `yaml:"server"`
	Workshop  []ContentItem  `yaml:"workshop"`
	Resources []ResourceSpec `yaml:"resources"`
	Missions  []MissionSpec  `yaml:"missions"`
	Backup    Backup         `yaml:"backup"`
}

type Steam struct {
	User string `yaml:"user"`
}

type Server struct {
	Port    int      `yaml:"port"`
	Wrapper string   `yaml:"wrapper"`
	Args    []string `yaml:"args"`
}

// ContentItem is a Steam Workshop package materialized locally as a
// symlinked mod directory.
type ContentItem struct {
	Name   string `yaml:"name"`
	AppID  int    `yaml:"app_id"`
	ItemID int    `yaml:"item_id"`
}

type ResourceSpec struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type MissionSpec struct {
	Source        string   `yaml:"source"`
	Exclude       []string `yaml:"exclude"`
	UpdateExclude []string `yaml:"update_exclude"`
}

// Destination returns the mission's directory name under the runtime
// mission directory.
func (m MissionSpec) Destination() string {
	return filepath.Base(m.Source)
}

type Backup struct {
	Compression   string `yaml:"compression"`
	RetentionDays int    `yaml:"retention_days"`
}

const (
	ResourceKindGit = "git"

	CompressionGzip = "gzip"
	CompressionLZ4  = "lz4"

	defaultRetentionDays = 30
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to read configuration file %s", path)
	}

	cfg := &Config{}
	err = yaml.UnmarshalWithOptions(b, cfg, yaml.Strict())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to parse configuration file %s", path)
	}

	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to resolve install root")
	}
	cfg.Root = root

	cfg.applyDefaults()

	err = cfg.validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = dayz.DefaultServerPort
	}
	if c.Backup.Compression == "" {
		c.Backup.Compression = CompressionGzip
	}
	if c.Backup.RetentionDays == 0 {
		c.Backup.RetentionDays = defaultRetentionDays
	}
	for i := range c.Workshop {
		if c.Workshop[i].AppID == 0 {
			c.Workshop[i].AppID = dayz.WorkshopAppID
		}
	}
}

//nolint:gocognit
func (c *Config) validate() error {
	// Setup and update always authenticate: the server files and the
	// workshop content both come from Steam.
	if c.Steam.User == "" {
		return &ValidationError{Field: "steam.user", Message: "is required"}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ValidationError{Field: "server.port", Message: "must be between 1 and 65535"}
	}

	for i, item := range c.Workshop {
		if item.Name == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("workshop[%d].name", i),
				Message: "is required",
			}
		}
		if item.ItemID == 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("workshop[%d].item_id", i),
				Message: "is required",
			}
		}
	}

	for i, res := range c.Resources {
		if res.Kind != ResourceKindGit {
			return &ValidationError{
				Field:   fmt.Sprintf("resources[%d].kind", i),
				Message: fmt.Sprintf("unsupported kind %q, only %q is supported", res.Kind, ResourceKindGit),
			}
		}
		if res.Name == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("resources[%d].name", i),
				Message: "is required",
			}
		}
		if res.URL == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("resources[%d].url", i),
				Message: "is required",
			}
		}
	}

	for i, m := range c.Missions {
		if m.Source == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("missions[%d].source", i),
				Message: "is required",
			}
		}
		if filepath.IsAbs(m.Source) {
			return &ValidationError{
				Field:   fmt.Sprintf("missions[%d].source", i),
				Message: "must be relative to the install root",
			}
		}
	}

	if c.Backup.Compression != CompressionGzip && c.Backup.Compression != CompressionLZ4 {
		return &ValidationError{
			Field:   "backup.compression",
			Message: fmt.Sprintf("unsupported compression %q", c.Backup.Compression),
		}
	}

	return nil
}
