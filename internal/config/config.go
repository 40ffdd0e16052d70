package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ghrepo/internal/github"
	"ghrepo/internal/logging"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable read by the CLI,
// e.g. GHREPO_GITHUB_USERNAME.
const EnvPrefix = "GHREPO"

// ConfigName is the base name of the optional configuration file.
const ConfigName = "ghrepo"

// redactedValue replaces secrets in rendered configuration.
const redactedValue = "[REDACTED]"

// Config holds the complete application configuration.
type Config struct {
	GitHub    GitHubConfig    `mapstructure:"github" json:"github" yaml:"github"`
	Workspace WorkspaceConfig `mapstructure:"workspace" json:"workspace" yaml:"workspace"`
	Log       LogConfig       `mapstructure:"log" json:"log" yaml:"log"`
}

// GitHubConfig holds API connection settings and credentials.
type GitHubConfig struct {
	APIURL         string        `mapstructure:"api_url" json:"api_url" yaml:"api_url"`
	Username       string        `mapstructure:"username" json:"username" yaml:"username"`
	Password       string        `mapstructure:"password" json:"password" yaml:"password"`
	CommitterName  string        `mapstructure:"committer_name" json:"committer_name" yaml:"committer_name"`
	CommitterEmail string        `mapstructure:"committer_email" json:"committer_email" yaml:"committer_email"`
	Timeout        time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
}

// SetDefaults registers the default value of every configuration key.
// Every key needs a default so that environment variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("github.api_url", github.DefaultAPIURL)
	v.SetDefault("github.username", "")
	v.SetDefault("github.password", "")
	v.SetDefault("github.committer_name", "")
	v.SetDefault("github.committer_email", "")
	v.SetDefault("github.timeout", "0s")

	v.SetDefault("workspace.dir", "")
	v.SetDefault("workspace.default_branch", DefaultBranch)
	v.SetDefault("workspace.remote_protocol", ProtocolSSH)
	v.SetDefault("workspace.remote_url_template", "")
	v.SetDefault("workspace.editor", DefaultEditor)
	v.SetDefault("workspace.open_editor", true)
	v.SetDefault("workspace.command_timeout", DefaultCommandTimeout)

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from cfgFile (or the default search path when empty)
// and the environment, then decodes and validates it.
//
// Search path: ./ghrepo.yaml, then <user config dir>/ghrepo/ghrepo.yaml.
// A missing default file is not an error; a missing explicit file is.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, ConfigName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return New(v)
}

// New creates a new Config instance from Viper.
func New(v *viper.Viper) (*Config, error) {
	var config Config

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
// Credentials are not required here; they are checked when a client is built.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.GitHub.APIURL, "http://") && !strings.HasPrefix(c.GitHub.APIURL, "https://") {
		return fmt.Errorf("github.api_url must have http:// or https:// scheme, got %q", c.GitHub.APIURL)
	}

	if c.GitHub.Timeout < 0 {
		return errors.New("github.timeout cannot be negative")
	}

	if err := c.Workspace.Validate(); err != nil {
		return err
	}

	return logging.ValidateConfig(logging.Config{Level: c.Log.Level, Format: c.Log.Format})
}

// ClientConfig returns the API client configuration.
func (g GitHubConfig) ClientConfig() *github.Config {
	return &github.Config{
		APIURL:         g.APIURL,
		Username:       g.Username,
		Password:       g.Password,
		CommitterName:  g.CommitterName,
		CommitterEmail: g.CommitterEmail,
		Timeout:        g.Timeout,
	}
}

// Redacted returns a copy of the configuration with secrets masked.
func (c Config) Redacted() Config {
	if c.GitHub.Password != "" {
		c.GitHub.Password = redactedValue
	}
	return c
}

// ToYAML renders the redacted configuration as YAML.
func (c Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c.Redacted())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
