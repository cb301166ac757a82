package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk notebook configuration (quire.yaml or quire.toml).
type Config struct {
	Adapter   string    `yaml:"adapter" toml:"adapter"`
	Format    string    `yaml:"format" toml:"format"`
	SystemDir string    `yaml:"system_dir" toml:"system_dir"`
	ReadOnly  bool      `yaml:"read_only" toml:"read_only"`
	Log       LogConfig `yaml:"log" toml:"log"`
	S3        S3Config  `yaml:"s3" toml:"s3"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint" toml:"endpoint"`
	Region          string `yaml:"region" toml:"region"`
	Bucket          string `yaml:"bucket" toml:"bucket"`
	Prefix          string `yaml:"prefix" toml:"prefix"`
	AccessKeyID     string `yaml:"access_key_id" toml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" toml:"secret_access_key"`
	UsePathStyle    bool   `yaml:"use_path_style" toml:"use_path_style"`
}

// LoadConfig reads a config file, expanding ${VAR} references first.
// The syntax is chosen by extension: .toml, otherwise YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	expanded := expandEnvVars(string(data))

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	default:
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}"))
	})
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if c.Adapter != "" && !slices.Contains(Adapters, c.Adapter) {
		return fmt.Errorf("adapter %q is not one of %s", c.Adapter, strings.Join(Adapters, ", "))
	}
	switch strings.ToLower(c.Format) {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("format %q is not json or yaml", c.Format)
	}
	if c.SystemDir != "" && strings.ContainsAny(c.SystemDir, `/\`) {
		return fmt.Errorf("system_dir %q must be a plain directory name", c.SystemDir)
	}
	if c.Adapter == "s3" && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required for the s3 adapter")
	}
	return nil
}

// Options converts the file settings into options. Empty fields keep defaults.
func (c *Config) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.Format != "" {
		opts = append(opts, WithFormat(c.Format))
	}
	if c.SystemDir != "" {
		opts = append(opts, WithSystemDir(c.SystemDir))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.S3 != (S3Config{}) {
		opts = append(opts, WithS3(S3Options(c.S3)))
	}
	return opts
}

// WriteDefaultConfig writes a starter quire.yaml into dir unless a config exists.
func WriteDefaultConfig(dir string, cfg Config) (string, error) {
	if path, ok := FindConfig(dir); ok {
		return path, nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	path := filepath.Join(dir, ConfigFiles[0])
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	return path, nil
}
