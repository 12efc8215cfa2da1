package cascade

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// source supplies key/value data to the loader.
type source interface {
	// name is a human-readable label used in error messages.
	name() string

	providence() Providence

	// toMap returns a normalized map: keys are lower-cased and contain no "." (dotted keys are expanded into nested map[string]any values). Leaf values are string, int, float64,
	// bool, nil, or slices of those (or of nested maps).
	toMap() (map[string]any, error)
}

// sourceMap adapts a Go map of defaults.
type sourceMap struct {
	m map[string]any
}

// sourceJSONFile reads one JSON file at load time. Empty or whitespace-only files contribute no values.
type sourceJSONFile struct {
	path string
}

// sourceEnv reads environment variables.
type sourceEnv struct {
	keyToEnv map[string]string // ex: {"server.port": "SERVER_PORT"}
}

func (s *sourceMap) name() string           { return "Defaults" }
func (s *sourceMap) providence() Providence { return Providence{SourceType: "default"} }

func (s *sourceMap) toMap() (map[string]any, error) {
	out := map[string]any{}
	if err := mergeMap(out, s.m, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *sourceJSONFile) name() string { return "JSON File: " + s.path }

func (s *sourceJSONFile) providence() Providence {
	return Providence{SourceType: "json_file", SourceIdentifier: ExpandPath(s.path)}
}

func (s *sourceJSONFile) toMap() (map[string]any, error) {
	data, err := os.ReadFile(ExpandPath(s.path))
	if err != nil {
		return nil, fmt.Errorf("read json file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return map[string]any{}, nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	out := map[string]any{}
	if err := mergeMap(out, obj, ""); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *sourceEnv) name() string           { return "ENV" }
func (s *sourceEnv) providence() Providence { return Providence{SourceType: "env"} }

// toMap reads each mapped variable. Missing and empty variables set no key: an empty variable would otherwise silently override a value from a file.
func (s *sourceEnv) toMap() (map[string]any, error) {
	out := map[string]any{}
	for key, envVar := range s.keyToEnv {
		if envVar == "" {
			continue
		}
		val := os.Getenv(envVar)
		if val == "" {
			continue
		}
		if err := mergeValue(out, strings.Split(key, "."), val, key); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// mergeMap merges src into dest, lower-casing keys and expanding dotted keys. baseKey prefixes error paths.
func mergeMap(dest map[string]any, src map[string]any, baseKey string) error {
	for k, v := range src {
		full := strings.ToLower(k)
		if baseKey != "" {
			full = baseKey + "." + full
		}
		if err := mergeValue(dest, strings.Split(strings.ToLower(k), "."), v, full); err != nil {
			return err
		}
	}
	return nil
}

// mergeValue sets value at the nested position parts in obj. Objects are deep-merged; setting a leaf twice, or a leaf where an object is, is a key conflict.
func mergeValue(obj map[string]any, parts []string, value any, fullKey string) error {
	part := strings.ToLower(parts[0])
	if part == "" {
		return fmt.Errorf("invalid key %q", fullKey)
	}
	existing, exists := obj[part]

	if len(parts) > 1 {
		if !exists {
			existing = map[string]any{}
			obj[part] = existing
		}
		child, ok := existing.(map[string]any)
		if !ok {
			return fmt.Errorf("key conflict at '%s': '%s' is not an object", fullKey, part)
		}
		return mergeValue(child, parts[1:], value, fullKey)
	}

	if mv, ok := value.(map[string]any); ok {
		if !exists {
			existing = map[string]any{}
			obj[part] = existing
		}
		dest, ok := existing.(map[string]any)
		if !ok {
			return fmt.Errorf("key conflict: key '%s' was already set", fullKey)
		}
		return mergeMap(dest, mv, fullKey)
	}

	if exists {
		return fmt.Errorf("key conflict: key '%s' was already set", fullKey)
	}
	if err := validateValue(value); err != nil {
		return fmt.Errorf("invalid value for key '%s': %w", fullKey, err)
	}
	obj[part] = value
	return nil
}

// validateValue accepts nil, string, int, float64, bool, and slices of those or of objects.
func validateValue(v any) error {
	switch vv := v.(type) {
	case nil, string, int, float64, bool, []string, []int, []float64, []bool:
		return nil
	case []any:
		for i, e := range vv {
			if _, ok := e.(map[string]any); ok {
				continue
			}
			if err := validateValue(e); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	default:
		return fmt.Errorf("type %T is not allowed", v)
	}
}
