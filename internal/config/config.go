// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config loads and persists nitrokit.yaml. Values are layered as
// defaults < config file < NITROKIT_* environment < command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	appName        = "nitrokit"
	configFileName = "nitrokit.yaml"
)

// GetConfigPath returns the full path of the user's nitrokit.yaml.
// os.UserConfigDir honours XDG_CONFIG_HOME.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(configDir, appName, configFileName), nil
}

// Defaults returns the flat viper default map for Config.
func Defaults() map[string]any {
	return map[string]any{
		"project_name":                "nitrokit",
		"git_remote":                  "origin",
		"release_format":              "markdown",
		"language":                    "en",
		"update_check":                true,
		"database.type":               "sqlite",
		"database.dsn":                "",
		"quality.enabled_checks":      []string{"lint", "format", "security", "test"},
		"quality.skip_dependencies":   false,
		"quality.max_parallel_jobs":   4,
		"quality.timeout_seconds":     300,
		"translation.messages_dir":    "messages",
		"translation.source_file":     "source.json",
		"translation.batch_size":      10,
		"release.output_dir":          ".",
		"release.default_branch":      "main",
		"release.create_github":       false,
		"release.run_framework_tasks": true,
	}
}

func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, explicitPath *string) (T, error) {
	var c T
	v := viper.New()

	// 1. Defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. File search
	v.SetConfigName(appName)
	v.SetConfigType("yaml")
	if explicitPath != nil {
		v.SetConfigFile(*explicitPath)
	}
	if userConfigPath, err := GetConfigPath(); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return c, err
		}
		notFound = err
	}

	// 3. Environment
	v.AutomaticEnv()
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Flags
	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	// Defaults are still applied when no file exists; the caller decides
	// whether to write one.
	return c, notFound
}

// WriteConfigFile persists c to the user config path.
func WriteConfigFile[T any](c *T) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return WriteConfigFileTo(c, path)
}

// WriteConfigFileTo persists c as YAML at path.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may end up holding tokens.
	return os.WriteFile(path, data, 0600)
}

// LoadDotEnv reads KEY=VALUE pairs from path into the process environment.
// Variables already set are left untouched. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return gotenv.Load(path)
}
