package cascade

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// Loader builds a prioritized cascade of configuration sources and applies them to a destination struct. Sources are ordered from low to high priority.
type Loader struct {
	sources []source
}

// Providence identifies a source that contributed values.
type Providence struct {
	SourceType       string // "default", "json_file", or "env"
	SourceIdentifier string // ex: "/path/to/file.json". "" for defaults and env.
}

// String returns the source type, followed by its identifier if it has one.
func (p Providence) String() string {
	if p.SourceIdentifier == "" {
		return p.SourceType
	}
	return p.SourceType + " " + p.SourceIdentifier
}

// LoadReport lists the sources that were actually read, from low to high priority. Missing files are not listed.
type LoadReport struct {
	Sources []Providence
}

// New returns a new Loader. It is equivalent to &Loader{} and exists to support fluent chaining.
func New() *Loader {
	return &Loader{}
}

// WithDefaults registers m as a source of default values. Keys may use dot-notation. A nil map contributes no values.
func (c *Loader) WithDefaults(m map[string]any) *Loader {
	c.sources = append(c.sources, &sourceMap{m: m})
	return c
}

// WithJSONFile registers a JSON file as a source. path is expanded with ExpandPath and read at load time, so a missing file is only noticed (and skipped) then.
func (c *Loader) WithJSONFile(path string) *Loader {
	c.sources = append(c.sources, &sourceJSONFile{path: path})
	return c
}

// WithNearestJSONFile searches upward from startingAbsolutePath (or, if empty, the working directory) for the first non-empty file named fileName and registers it. fileName must
// be relative and may include directories (ex: ".app/config.json"); WithNearestJSONFile panics if it is absolute. If startingAbsolutePath is a file, its directory is used. If no
// file is found, the loader is unchanged.
func (c *Loader) WithNearestJSONFile(fileName string, startingAbsolutePath string) *Loader {
	if filepath.IsAbs(fileName) {
		panic("cascade: fileName shouldn't be absolute")
	}

	start := startingAbsolutePath
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return c
		}
		start = wd
	}
	if fi, err := os.Stat(start); err == nil && !fi.IsDir() {
		start = filepath.Dir(start)
	}

	for dir := start; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, fileName)
		if data, err := os.ReadFile(candidate); err == nil && strings.TrimSpace(string(data)) != "" {
			c.sources = append(c.sources, &sourceJSONFile{path: candidate})
			return c
		}
		if filepath.Dir(dir) == dir {
			return c
		}
	}
}

// WithEnv registers an environment-variable source. m maps a configuration key (dots denote nesting) to an environment variable name.
func (c *Loader) WithEnv(m map[string]string) *Loader {
	c.sources = append(c.sources, &sourceEnv{keyToEnv: m})
	return c
}

// StrictlyLoad loads c's sources into dest, a non-nil pointer to a struct, from low to high priority. See StrictlyLoadWithReport.
func (c *Loader) StrictlyLoad(dest any) error {
	_, err := c.StrictlyLoadWithReport(dest)
	return err
}

// StrictlyLoadWithReport loads c's sources into dest, a non-nil pointer to a struct, from low to high priority, with later sources overwriting earlier values. It reports which
// sources were read.
//
// A readable source that can't be parsed, or a value that can't be coerced to its field, is an error that names the source. Missing or unreadable files are skipped. After all
// sources are applied, every field tagged cascade:",required" must have been set.
func (c *Loader) StrictlyLoadWithReport(dest any) (LoadReport, error) {
	var report LoadReport

	destVal := reflect.ValueOf(dest)
	if dest == nil || destVal.Kind() != reflect.Pointer || destVal.IsNil() || destVal.Elem().Kind() != reflect.Struct {
		return report, fmt.Errorf("dest must be a non-nil pointer to struct")
	}
	structVal := destVal.Elem()

	present := map[string]bool{}
	for _, src := range c.sources {
		m, err := src.toMap()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
				continue
			}
			return report, fmt.Errorf("%s: %w", src.name(), err)
		}
		if err := applyMap(structVal, m, "", present); err != nil {
			return report, fmt.Errorf("%s: %w", src.name(), err)
		}
		report.Sources = append(report.Sources, src.providence())
	}

	if err := validateRequired(structVal, "", present); err != nil {
		return report, err
	}
	return report, nil
}

// fieldKey returns the lower-cased key for f, or "-" if f is excluded.
func fieldKey(f reflect.StructField) string {
	if name, _, _ := strings.Cut(f.Tag.Get("cascade"), ","); strings.TrimSpace(name) != "" {
		return strings.ToLower(strings.TrimSpace(name))
	}
	if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
		return strings.ToLower(name)
	}
	return strings.ToLower(f.Name)
}

func isRequired(f reflect.StructField) bool {
	_, opts, _ := strings.Cut(f.Tag.Get("cascade"), ",")
	for _, opt := range strings.Split(opts, ",") {
		if strings.TrimSpace(opt) == "required" {
			return true
		}
	}
	return false
}

// applyMap writes the normalized map m into structVal, recording the dot-paths it sets in present.
func applyMap(structVal reflect.Value, m map[string]any, basePath string, present map[string]bool) error {
	structType := structVal.Type()
	fields := map[string]int{}
	for i := 0; i < structType.NumField(); i++ {
		f := structType.Field(i)
		if !f.IsExported() {
			continue
		}
		key := fieldKey(f)
		if key == "-" {
			continue
		}
		if prev, ok := fields[key]; ok {
			return fmt.Errorf("struct fields %s and %s both use key %q", structType.Field(prev).Name, f.Name, key)
		}
		fields[key] = i
	}

	for key, raw := range m {
		idx, ok := fields[strings.ToLower(key)]
		if !ok || raw == nil {
			continue
		}
		path := joinPath(basePath, strings.ToLower(key))
		if err := setField(structVal.Field(idx), raw, path, present); err != nil {
			return err
		}
	}
	return nil
}

// setField assigns raw to fv, allocating pointers, recursing into structs, and coercing scalars and slices.
func setField(fv reflect.Value, raw any, path string, present map[string]bool) error {
	if fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return setField(fv.Elem(), raw, path, present)
	}

	switch fv.Kind() {
	case reflect.Struct:
		obj, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("%s: expected object for struct field", path)
		}
		return applyMap(fv, obj, path, present)

	case reflect.Slice:
		rv := reflect.ValueOf(raw)
		if rv.Kind() != reflect.Slice {
			return fmt.Errorf("%s: cannot coerce %T to %s", path, raw, fv.Type())
		}
		out := reflect.MakeSlice(fv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elemPath := fmt.Sprintf("%s[%d]", path, i)
			if err := setField(out.Index(i), rv.Index(i).Interface(), elemPath, present); err != nil {
				return err
			}
		}
		fv.Set(out)

	default:
		v, err := coerceScalar(raw, fv.Kind(), path)
		if err != nil {
			return err
		}
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(v.(string))
		case reflect.Bool:
			fv.SetBool(v.(bool))
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			fv.SetInt(v.(int64))
		case reflect.Float32, reflect.Float64:
			fv.SetFloat(v.(float64))
		}
	}
	present[path] = true
	return nil
}

// coerceScalar converts raw (string, int, float64, or bool) to the Go value for targetKind: string, bool, int64, or float64. Strings are trimmed before parsing.
func coerceScalar(raw any, targetKind reflect.Kind, path string) (any, error) {
	switch targetKind {
	case reflect.String:
		switch v := raw.(type) {
		case string:
			return v, nil
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		case int:
			return strconv.Itoa(v), nil
		case bool:
			return strconv.FormatBool(v), nil
		}
	case reflect.Bool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("%s: cannot parse bool from %q", path, v)
			}
			return parsed, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v := raw.(type) {
		case int:
			return int64(v), nil
		case float64:
			return int64(v), nil
		case string:
			parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: cannot parse int from %q", path, v)
			}
			return parsed, nil
		}
	case reflect.Float32, reflect.Float64:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("%s: cannot parse float from %q", path, v)
			}
			return parsed, nil
		}
	default:
		return nil, fmt.Errorf("%s: unsupported field kind %s", path, targetKind)
	}
	return nil, fmt.Errorf("%s: cannot coerce %T to %s", path, raw, targetKind)
}

// validateRequired returns an error naming the first required field (recursing into nested structs) that no source set.
func validateRequired(structVal reflect.Value, basePath string, present map[string]bool) error {
	structType := structVal.Type()
	for i := 0; i < structType.NumField(); i++ {
		f := structType.Field(i)
		key := fieldKey(f)
		if !f.IsExported() || key == "-" {
			continue
		}
		path := joinPath(basePath, key)
		if isRequired(f) && !present[path] {
			return fmt.Errorf("missing required key: %s", path)
		}

		fv := structVal.Field(i)
		if fv.Kind() == reflect.Pointer && !fv.IsNil() {
			fv = fv.Elem()
		}
		if fv.Kind() == reflect.Struct {
			if err := validateRequired(fv, path, present); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
