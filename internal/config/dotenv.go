package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// DotEnvPath is the optional env file read next to the config.
const DotEnvPath = ".env"

// ReadDotEnv parses KEY=VALUE lines from path. Empty lines and # comments are skipped
// and surrounding quotes are removed from values. A missing file yields an empty map.
// The process environment is left untouched.
func ReadDotEnv(path string) (map[string]string, error) {
	vars := map[string]string{}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return vars, nil
	}
	if err != nil {
		return vars, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		if !ok || key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		vars[key] = value
	}
	if err := scanner.Err(); err != nil {
		return vars, fmt.Errorf("config: read %s: %w", path, err)
	}
	return vars, nil
}

// EnvLookup returns a lookup for ApplyEnv that consults the process environment first
// and falls back to vars.
func EnvLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}
}
