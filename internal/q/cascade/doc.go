// Package cascade loads layered configuration into Go structs from multiple sources with predictable precedence.
//
// A Loader builds a prioritized cascade of sources and writes into a destination struct. Register sources from lowest to highest priority using the With* methods, then call StrictlyLoad.
// The zero value of Loader is ready to use; New exists for fluent chaining (ex: New().WithDefaults(...).WithJSONFile(...).WithEnv(...).StrictlyLoad(&cfg)).
//
// Sources
//   - Defaults from a map[string]any whose keys may use dot-notation to denote nesting.
//   - JSON files read at load time. WithJSONFile registers a specific path. WithNearestJSONFile searches upward from a starting path for the first non-empty file with a given relative
//     name.
//   - Environment variables mapped to configuration keys via WithEnv. Missing and empty variables are ignored.
//
// Keys and coercion: keys are case-insensitive and dot-separated for nesting. A field's key is its cascade tag name, else its json tag name, else its field name. Unknown keys are ignored.
// Values are coerced when reasonable (strings to numbers/bools, numbers to strings, floats to ints truncated toward zero, and element-wise for slices).
//
// Errors: fields tagged cascade:",required" must be set by some source. StrictlyLoad fails fast when a readable source can't be parsed or a value can't be coerced; missing files,
// empty files, and unknown keys are not errors.
//
//	type Config struct {
//	    Host string `cascade:",required"`
//	    Port int
//	}
//
//	var cfg Config
//	err := New().
//	    WithDefaults(map[string]any{"host": "localhost", "port": 8080}).
//	    WithNearestJSONFile(".app/config.json", "").
//	    WithEnv(map[string]string{"host": "APP_HOST", "port": "APP_PORT"}).
//	    StrictlyLoad(&cfg)
package cascade
