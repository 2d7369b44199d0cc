// Package config loads todo settings from config.yaml, TODO_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/daylog/todo/internal/session"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys understood in config.yaml and as TODO_<KEY> environment variables.
const (
	KeyListsDir    = "lists-dir"
	KeyColor       = "color"
	KeyLockTimeout = "lock-timeout"
	KeyDateFormat  = "date-format"
)

// Color modes for KeyColor.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	// EnvConfigPath names an explicit config file.
	EnvConfigPath = "TODO_CONFIG"

	defaultLockTimeout = 5 * time.Second
	configFileName     = "config.yaml"
)

// KnownKeys lists every supported key in display order.
var KnownKeys = []string{KeyListsDir, KeyColor, KeyLockTimeout, KeyDateFormat}

var v *viper.Viper

func init() {
	v = newViper()
}

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetConfigType("yaml")
	nv.SetEnvPrefix("TODO")
	nv.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	nv.AutomaticEnv()

	nv.SetDefault(KeyListsDir, "")
	nv.SetDefault(KeyColor, ColorAuto)
	nv.SetDefault(KeyLockTimeout, defaultLockTimeout.String())
	nv.SetDefault(KeyDateFormat, "")
	return nv
}

// Initialize (re)loads configuration. A missing config file is not an
// error; a malformed one is.
func Initialize() error {
	v = newViper()

	path, ok := findConfigFile()
	if !ok {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// BindFlag makes a command-line flag override key when the flag is set.
func BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag for config key %q", key)
	}
	return v.BindPFlag(key, flag)
}

// ConfigFileUsed returns the config file that was read, or "".
func ConfigFileUsed() string {
	return v.ConfigFileUsed()
}

// ListsDir returns the configured lists directory ("" means the default).
func ListsDir() string {
	return v.GetString(KeyListsDir)
}

// ColorMode returns auto, always or never.
func ColorMode() string {
	mode := strings.ToLower(strings.TrimSpace(v.GetString(KeyColor)))
	switch mode {
	case ColorAlways, "true", "on", "yes":
		return ColorAlways
	case ColorNever, "false", "off", "no":
		return ColorNever
	default:
		return ColorAuto
	}
}

// LockTimeout returns how long rewrites wait for the list lock. Invalid
// values fall back to the default.
func LockTimeout() time.Duration {
	raw := v.GetString(KeyLockTimeout)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return defaultLockTimeout
	}
	return d
}

// DateFormat returns the header date layout ("" means the renderer default).
func DateFormat() string {
	return v.GetString(KeyDateFormat)
}

// Get returns the effective value of key as a string.
func Get(key string) string {
	return v.GetString(key)
}

// IsKnownKey reports whether key is a supported setting.
func IsKnownKey(key string) bool {
	for _, k := range KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Settings returns the effective value of every known key, sorted by key.
func Settings() []Setting {
	out := make([]Setting, 0, len(KnownKeys))
	for _, k := range KnownKeys {
		out = append(out, Setting{Key: k, Value: v.GetString(k), Source: source(k)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Setting is one effective configuration value and where it came from.
type Setting struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func source(key string) string {
	envName := "TODO_" + strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(key))
	if _, ok := os.LookupEnv(envName); ok {
		return "env " + envName
	}
	if v.InConfig(key) {
		return "file"
	}
	return "default"
}

// UserConfigPath returns $XDG_CONFIG_HOME/todo/config.yaml, falling back to
// ~/.config/todo/config.yaml.
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "todo", configFileName), nil
	}
	home := os.Getenv("HOME")
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return "", err
		}
	}
	return filepath.Join(home, ".config", "todo", configFileName), nil
}

// WritePath returns the file `todo config set` edits: the file already in
// use, else $TODO_CONFIG, else UserConfigPath.
func WritePath() (string, error) {
	if used := ConfigFileUsed(); used != "" {
		return used, nil
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	return UserConfigPath()
}

// findConfigFile checks $TODO_CONFIG, the user config dir, then the default
// lists directory.
func findConfigFile() (string, bool) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
		return "", false
	}

	var candidates []string
	if p, err := UserConfigPath(); err == nil {
		candidates = append(candidates, p)
	}
	if dir, err := session.DefaultDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, configFileName))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
