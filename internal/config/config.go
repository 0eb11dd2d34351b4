// Package config resolves the configuration directory, settings file and file paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"todo/internal/taskfile"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// SettingsFile is the optional YAML settings file in the config directory.
	SettingsFile = "config.yaml"

	// EnvFile is the optional dotenv file in the config directory.
	EnvFile = ".env"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Environment variables that override settings.
const (
	EnvTasksFile  = "TODO_FILE"
	EnvLogLevel   = "TODO_LOG_LEVEL"
	EnvRemoteList = "TODO_REMOTE_LIST"
)

// Settings is the content of config.yaml.
type Settings struct {
	TasksFile  string `yaml:"tasksFile"`
	LogLevel   string `yaml:"logLevel"`
	RemoteList string `yaml:"remoteList"`
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// TasksFile is the path of the persisted task list.
	TasksFile string

	// LogLevel is the configured log level name.
	LogLevel string

	// RemoteList is the Google Tasks list used by push and pull.
	// Empty means the account's default list.
	RemoteList string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a Config for configDir, or the default directory when empty.
// Values come from, in increasing precedence: defaults, config.yaml, .env, the process environment.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{
		Dir:       dir,
		TasksFile: taskfile.DefaultName,
	}

	settings, err := readSettings(filepath.Join(dir, SettingsFile))
	if err != nil {
		return nil, err
	}
	cfg.apply(settings)

	dotenv, err := readDotenv(filepath.Join(dir, EnvFile))
	if err != nil {
		return nil, err
	}
	cfg.applyEnv(func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	})

	return cfg, nil
}

func readSettings(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read %s: %w", SettingsFile, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("invalid %s: %w", SettingsFile, err)
	}
	return s, nil
}

// readDotenv parses the dotenv file without touching the process environment.
func readDotenv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("invalid %s: %w", EnvFile, err)
	}
	return values, nil
}

func (c *Config) apply(s Settings) {
	if s.TasksFile != "" {
		c.TasksFile = c.resolve(s.TasksFile)
	}
	if s.LogLevel != "" {
		c.LogLevel = s.LogLevel
	}
	if s.RemoteList != "" {
		c.RemoteList = s.RemoteList
	}
}

func (c *Config) applyEnv(lookup func(string) string) {
	if v := lookup(EnvTasksFile); v != "" {
		c.TasksFile = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := lookup(EnvRemoteList); v != "" {
		c.RemoteList = v
	}
}

// resolve makes a settings-relative path relative to the config directory.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory with mode 0700 if it doesn't exist.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
