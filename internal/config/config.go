package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/epmk/buildgate/internal/audit"
	"github.com/epmk/buildgate/internal/harness"
)

// Config is the top-level configuration structure.
type Config struct {
	Gate        string         `yaml:"gate"`
	ProjectRoot string         `yaml:"project_root"`
	StrictAudit bool           `yaml:"strict_audit"`
	LogLevel    string         `yaml:"log_level"`
	Audit       AuditConfig    `yaml:"audit"`
	Harness     harness.Config `yaml:"harness"`
}

// AuditConfig configures the compliance scan.
type AuditConfig struct {
	Rules           []audit.Rule `yaml:"rules"`
	IncludePatterns []string     `yaml:"include_patterns"`
	ExcludePatterns []string     `yaml:"exclude_patterns"`
	MaxFileSize     string       `yaml:"max_file_size"`
}

// Scanner builds the audit scanner for the given tree root.
func (a *AuditConfig) Scanner(root string) (*audit.Scanner, error) {
	maxSize, err := parseSize(a.MaxFileSize)
	if err != nil {
		return nil, fmt.Errorf("parsing max_file_size: %w", err)
	}
	return &audit.Scanner{
		Root:            root,
		Rules:           a.Rules,
		IncludePatterns: a.IncludePatterns,
		ExcludePatterns: a.ExcludePatterns,
		MaxFileSize:     maxSize,
	}, nil
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	if c.Gate == "" {
		return fmt.Errorf("gate is required")
	}
	if c.ProjectRoot == "" {
		return fmt.Errorf("project_root is required")
	}
	for _, r := range c.Audit.Rules {
		if r.ID == "" || r.Pattern == "" {
			return fmt.Errorf("audit rule must have id and pattern")
		}
	}
	return nil
}

// Load resolves config from project → user → defaults.
func Load() (*Config, error) {
	cfg := defaults()

	// user-level config
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".buildgate", "config.yaml")
		if err := mergeFile(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	// project-level config (highest priority)
	projectPath := filepath.Join(".buildgate", "config.yaml")
	if err := mergeFile(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, dst)
}

func defaults() *Config {
	return &Config{
		Gate:        "release",
		ProjectRoot: ".",
		LogLevel:    "info",
		Audit: AuditConfig{
			Rules:           audit.DefaultRules(),
			IncludePatterns: []string{"*.rs"},
			ExcludePatterns: []string{"target/", "vendor/", ".git/", ".buildgate/"},
			MaxFileSize:     "512KB",
		},
		Harness: harness.Default(),
	}
}

func parseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	var multiplier int64 = 1
	if strings.HasSuffix(s, "KB") {
		multiplier = 1024
		s = s[:len(s)-2]
	} else if strings.HasSuffix(s, "MB") {
		multiplier = 1024 * 1024
		s = s[:len(s)-2]
	}
	var n int64
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * multiplier, nil
}
