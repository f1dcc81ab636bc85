// Package config provides YAML configuration loading for the colwire tool
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToolConfig holds settings for the colwire command line tool
type ToolConfig struct {
	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level       string `yaml:"level"`
	Encoding    string `yaml:"encoding"`
	Development bool   `yaml:"development"`
}

// Default returns the default tool configuration
func Default() *ToolConfig {
	return &ToolConfig{
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load loads a configuration from a YAML file
func Load(filePath string, config interface{}) error {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: File path is controlled by caller and validated
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Substitute environment variables
	content := string(data)
	content = substituteEnvVars(content)

	if err := yaml.Unmarshal([]byte(content), config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
// ${VAR_NAME:-default} falls back to default when the variable is unset.
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		defaultValue := ""
		hasDefault := false
		if idx := strings.Index(varName, ":-"); idx != -1 {
			defaultValue = varName[idx+2:]
			varName = varName[:idx]
			hasDefault = true
		}

		envValue, ok := os.LookupEnv(varName)
		if !ok && hasDefault {
			envValue = defaultValue
		}
		content = content[:start] + envValue + content[end+1:]
	}
	return content
}
