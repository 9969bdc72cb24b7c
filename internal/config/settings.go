package config

import (
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lite-lake/infra-bamctl/internal/domain"
	"github.com/lite-lake/infra-bamctl/internal/domain/service"
)

const (
	DefaultView    = "external"
	DefaultTimeout = 10 * time.Second

	EnvHost          = "BAM_HOST"
	EnvUser          = "BAM_USER"
	EnvPassword      = "BAM_PASSWORD"
	EnvConfig        = "BAM_CONFIG"
	EnvView          = "BAM_VIEW"
	EnvVerifyTLS     = "BAM_VERIFY_TLS"
	EnvChangeComment = "BAM_CHANGE_COMMENT"
	EnvBlocks        = "BAM_BLOCKS"
	EnvConfigFile    = "BAMCTL_CONFIG_FILE"
)

// Settings is the immutable per-process configuration. It is assembled once
// at startup (file < env < flags) and passed explicitly to every component.
type Settings struct {
	Host          string
	User          string
	Password      string
	Config        string
	View          string
	VerifyTLS     bool
	ChangeComment string
	Blocks        []string
	Timeout       time.Duration
}

func Defaults() Settings {
	return Settings{
		View:      DefaultView,
		VerifyTLS: true,
		Timeout:   DefaultTimeout,
	}
}

// fileSettings is the optional YAML config file shape. Every field is a
// pointer so absence is distinguishable from an explicit zero value.
type fileSettings struct {
	Host          *string  `yaml:"host"`
	User          *string  `yaml:"user"`
	Password      *string  `yaml:"password"`
	Config        *string  `yaml:"config"`
	View          *string  `yaml:"view"`
	VerifyTLS     *bool    `yaml:"verify_tls"`
	ChangeComment *string  `yaml:"change_comment"`
	Blocks        []string `yaml:"blocks"`
}

// ConfigFilePath returns the config file location: $BAMCTL_CONFIG_FILE if
// set, otherwise ~/.config/bamctl/config.yaml.
func ConfigFilePath() string {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bamctl", "config.yaml")
}

// LoadFile merges an optional YAML config file into s. A missing file is
// not an error.
func (s Settings) LoadFile(path string) (Settings, error) {
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, domain.WrapOp("read config file", err)
	}
	var f fileSettings
	if err := yaml.Unmarshal(data, &f); err != nil {
		return s, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if f.Host != nil {
		s.Host = *f.Host
	}
	if f.User != nil {
		s.User = *f.User
	}
	if f.Password != nil {
		s.Password = *f.Password
	}
	if f.Config != nil {
		s.Config = *f.Config
	}
	if f.View != nil && *f.View != "" {
		s.View = *f.View
	}
	if f.VerifyTLS != nil {
		s.VerifyTLS = *f.VerifyTLS
	}
	if f.ChangeComment != nil {
		s.ChangeComment = *f.ChangeComment
	}
	if len(f.Blocks) > 0 {
		s.Blocks = f.Blocks
	}
	return s, nil
}

// FromEnv overlays BAM_* environment variables onto s.
func (s Settings) FromEnv() Settings {
	if v := strings.TrimSpace(os.Getenv(EnvHost)); v != "" {
		s.Host = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUser)); v != "" {
		s.User = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		s.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvConfig)); v != "" {
		s.Config = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvView)); v != "" {
		s.View = v
	}
	if v := os.Getenv(EnvVerifyTLS); v != "" {
		if b, err := ParseBool(v); err == nil {
			s.VerifyTLS = b
		}
	}
	if v := os.Getenv(EnvChangeComment); v != "" {
		s.ChangeComment = v
	}
	if v := os.Getenv(EnvBlocks); v != "" {
		s.Blocks = strings.Fields(v)
	}
	return s
}

// Overrides carries CLI flag values. A zero value means the flag was not
// given and the lower-precedence layers win.
type Overrides struct {
	Host     string
	User     string
	Password string
	Config   string
	View     string
	Insecure bool
}

func (s Settings) WithOverrides(o Overrides) Settings {
	if o.Host != "" {
		s.Host = o.Host
	}
	if o.User != "" {
		s.User = o.User
	}
	if o.Password != "" {
		s.Password = o.Password
	}
	if o.Config != "" {
		s.Config = o.Config
	}
	if o.View != "" {
		s.View = o.View
	}
	if o.Insecure {
		s.VerifyTLS = false
	}
	return s
}

// Validate checks everything knowable before the first network call.
func (s Settings) Validate() error {
	if s.Host == "" {
		return fmt.Errorf("%w: host (set %s or --host)", domain.ErrRequired, EnvHost)
	}
	if s.User == "" {
		return fmt.Errorf("%w: user (set %s or --user)", domain.ErrRequired, EnvUser)
	}
	if s.Password == "" {
		return fmt.Errorf("%w: password (set %s or --password)", domain.ErrRequired, EnvPassword)
	}
	if s.Config == "" {
		return fmt.Errorf("%w: configuration name (set %s or --config)", domain.ErrRequired, EnvConfig)
	}
	if _, err := s.ParentBlocks(); err != nil {
		return err
	}
	return nil
}

// ParentBlocks parses the configured candidate parent blocks in input order.
func (s Settings) ParentBlocks() ([]netip.Prefix, error) {
	return service.ParseBlockList(strings.Join(s.Blocks, " "))
}

// ParseBool accepts the usual human spellings of a boolean.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "t", "yes", "y", "1":
		return true, nil
	case "false", "f", "no", "n", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected boolean value (true/false), got %q", value)
}
