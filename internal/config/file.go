package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ConfigFileEnvVar names the optional YAML file consulted when an environment variable is unset.
const ConfigFileEnvVar = "SESSION_CONFIG_FILE"

var (
	fileValues     map[string]string
	fileValuesLock sync.RWMutex
)

// LoadFile reads a flat YAML mapping of setting names to values, e.g.
//
//	API_BASE_URL: https://api.example.com
//	STORE_DRIVER: sqlite
//
// Environment variables still take precedence over the file.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config.LoadFile read %s: %w", path, err)
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("config.LoadFile parse %s: %w", path, err)
	}

	fileValuesLock.Lock()
	fileValues = values
	fileValuesLock.Unlock()
	return nil
}

// LoadFromEnv loads the file named by SESSION_CONFIG_FILE, if any.
func LoadFromEnv() error {
	path := os.Getenv(ConfigFileEnvVar)
	if path == "" {
		return nil
	}
	return LoadFile(path)
}

// ResetFile forgets any values loaded from a config file.
func ResetFile() {
	fileValuesLock.Lock()
	fileValues = nil
	fileValuesLock.Unlock()
}

func fileValue(name string) (string, bool) {
	fileValuesLock.RLock()
	defer fileValuesLock.RUnlock()
	v, ok := fileValues[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
