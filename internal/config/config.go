package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/schemabook/pkg/schemabook"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// SheetNames overrides the built-in sheet-name heuristic with exact names.
type SheetNames struct {
	Objects       string `yaml:"objects,omitempty"`
	Fields        string `yaml:"fields,omitempty"`
	Relationships string `yaml:"relationships,omitempty"`
}

// ProjectConfig is the schemabook.yaml file layout.
type ProjectConfig struct {
	Workbook             string     `yaml:"workbook,omitempty"`
	OutputDir            string     `yaml:"output_dir,omitempty"`
	Sheets               SheetNames `yaml:"sheets,omitempty"`
	TypeFallback         string     `yaml:"type_fallback,omitempty"`
	InjectStandardFields *bool      `yaml:"inject_standard_fields,omitempty"`
	Prune                bool       `yaml:"prune,omitempty"`
}

const ConfigFileName = "schemabook.yaml"

// EnvFileName is the optional dotenv file read next to the config file.
const EnvFileName = ".env"

// Environment variables recognized as overrides. They take precedence over
// schemabook.yaml values and may come from the process environment or from
// the project .env file.
const (
	EnvWorkbook     = "SCHEMABOOK_WORKBOOK"
	EnvOutputDir    = "SCHEMABOOK_OUTPUT_DIR"
	EnvTypeFallback = "SCHEMABOOK_TYPE_FALLBACK"
	EnvPrune        = "SCHEMABOOK_PRUNE"
)

// Load reads schemabook.yaml from dir. Returns ErrConfigNotFound when the
// file does not exist so callers can fall back to defaults.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", schemabook.ErrInvalidConfig, configPath, err)
	}
	return &cfg, nil
}

// LoadOrDefault loads schemabook.yaml from dir, applies .env and process
// environment overrides, fills defaults, and validates. A missing config
// file is not an error; a malformed one is.
func LoadOrDefault(dir string) (*ProjectConfig, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrConfigNotFound) {
		cfg = &ProjectConfig{}
	} else if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(dir); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies SCHEMABOOK_* overrides. Precedence: process environment,
// then the optional .env file next to the config, then schemabook.yaml.
// A missing .env file is fine.
func (c *ProjectConfig) applyEnv(dir string) error {
	var envFile map[string]string
	envPath := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		envFile, err = godotenv.Read(envPath)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", schemabook.ErrInvalidConfig, envPath, err)
		}
	}

	get := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return envFile[key]
	}

	if v := get(EnvWorkbook); v != "" {
		c.Workbook = v
	}
	if v := get(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := get(EnvTypeFallback); v != "" {
		c.TypeFallback = v
	}
	if v := get(EnvPrune); v != "" {
		prune, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s must be a boolean, got %q", schemabook.ErrInvalidConfig, EnvPrune, v)
		}
		c.Prune = prune
	}
	return nil
}

// ApplyDefaults fills unset values.
func (c *ProjectConfig) ApplyDefaults() {
	if c.Workbook == "" {
		c.Workbook = schemabook.DefaultWorkbookName
	}
	if c.OutputDir == "" {
		c.OutputDir = schemabook.DefaultOutputDir
	}
	if c.TypeFallback == "" {
		c.TypeFallback = string(schemabook.DefaultTypeFallback)
	}
	if c.InjectStandardFields == nil {
		inject := true
		c.InjectStandardFields = &inject
	}
}

// Validate checks that configured values are usable.
// Errors wrap schemabook.ErrInvalidConfig.
func (c *ProjectConfig) Validate() error {
	if _, ok := schemabook.ParseFieldType(c.TypeFallback); !ok {
		return fmt.Errorf("%w: type_fallback %q is not a recognized field type",
			schemabook.ErrInvalidConfig, c.TypeFallback)
	}
	return nil
}

// Fallback returns the configured type fallback as a FieldType.
// Call Validate first; an unparseable value falls back to the default.
func (c *ProjectConfig) Fallback() schemabook.FieldType {
	if t, ok := schemabook.ParseFieldType(c.TypeFallback); ok {
		return t
	}
	return schemabook.DefaultTypeFallback
}
