package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Template is written by `todo init` when no config file exists yet.
const Template = `# todo configuration
#
# Every key can also be set with a TODO_<KEY> environment variable
# (dashes become underscores), e.g. TODO_LISTS_DIR.

# Directory holding one <YYYY-MM-DD>.txt file per day.
# lists-dir: ~/.todo_lists

# auto | always | never
color: auto

# How long add/remove/complete wait for another todo process.
lock-timeout: 5s

# Go time layout for the list header.
# date-format: "January 02, 2006, Monday"
`

// ValidateValue checks a value before it is written to config.yaml.
func ValidateValue(key, value string) error {
	switch key {
	case KeyColor:
		switch strings.ToLower(value) {
		case ColorAuto, ColorAlways, ColorNever:
			return nil
		}
		return fmt.Errorf("color: %q is invalid (valid values: auto, always, never)", value)
	case KeyLockTimeout:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("lock-timeout: %q is not a duration (e.g. 5s, 500ms)", value)
		}
		return nil
	case KeyListsDir, KeyDateFormat:
		return nil
	}
	return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(KnownKeys, ", "))
}

// SetYamlConfig sets key to value in the YAML file at path, creating the
// file and its directory if needed. Comments and other keys are preserved.
func SetYamlConfig(path, key, value string) error {
	if err := ValidateValue(key, value); err != nil {
		return err
	}

	content, err := os.ReadFile(path) // #nosec G304 - path from WritePath
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated, err := updateYamlKey(content, key, value)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, updated, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteTemplate creates path with Template unless it already exists.
// It reports whether a file was written.
func WriteTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0o600); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// updateYamlKey sets a top-level scalar in a YAML document, appending the
// key if it is absent.
func updateYamlKey(content []byte, key, value string) ([]byte, error) {
	var doc yaml.Node
	if len(bytes.TrimSpace(content)) > 0 {
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, err
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode}
	}
	if len(doc.Content) == 0 {
		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"})
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level is not a mapping")
	}

	valueNode := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	found := false
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == key {
			// Keep any line comment attached to the old value.
			valueNode.LineComment = root.Content[i+1].LineComment
			root.Content[i+1] = valueNode
			found = true
			break
		}
	}
	if !found {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			valueNode,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
