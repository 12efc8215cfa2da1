package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/codalotl/splitdiff/internal/q/cascade"
)

// Color modes.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var colorModes = []string{colorAuto, colorAlways, colorNever}

// Config is splitdiff's configuration loaded from a cascade of sources. Command-line flags override it.
//
// NOTE: internal/q/cascade matches keys case-insensitively against json tag names, so the json tags are both the config file keys and the `splitdiff config` output.
type Config struct {
	IgnoreWhitespace bool `json:"ignorewhitespace"`

	// Collapse folds long unchanged runs.
	Collapse bool `json:"collapse"`

	// Color is one of "auto", "always", "never". auto colors only when stdout is a terminal and NO_COLOR is unset.
	Color string `json:"color"`

	// Width is the output width in columns. 0 detects it from the terminal.
	Width int `json:"width"`

	TabWidth int `json:"tabwidth"`
}

// configFileName is the config file, relative to the home directory (user config) or to any ancestor of the working directory (project config).
var configFileName = filepath.Join(".splitdiff", "config.json")

// loadConfig loads Config from defaults < ~/.splitdiff/config.json < nearest .splitdiff/config.json (searching upward from startDir, or the working directory if "") < env.
func loadConfig(startDir string) (Config, cascade.LoadReport, error) {
	loader := cascade.New().
		WithDefaults(map[string]any{
			"collapse": false,
			"color":    colorAuto,
			"width":    0,
			"tabwidth": 4,
		}).
		WithJSONFile(cascade.ExpandPath(filepath.Join("~", configFileName))).
		WithNearestJSONFile(configFileName, startDir).
		WithEnv(map[string]string{
			"ignorewhitespace": "SPLITDIFF_IGNORE_WHITESPACE",
			"collapse":         "SPLITDIFF_COLLAPSE",
			"color":            "SPLITDIFF_COLOR",
			"width":            "SPLITDIFF_WIDTH",
			"tabwidth":         "SPLITDIFF_TAB_WIDTH",
		})

	var cfg Config
	report, err := loader.StrictlyLoadWithReport(&cfg)
	if err != nil {
		return Config{}, report, fmt.Errorf("load configuration: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, report, err
	}
	return cfg, report, nil
}

func validateConfig(cfg Config) error {
	switch cfg.Color {
	case colorAuto, colorAlways, colorNever:
	default:
		return fmt.Errorf("invalid configuration: color must be one of auto, always, never (got %q)", cfg.Color)
	}
	if cfg.Width < 0 {
		return fmt.Errorf("invalid configuration: width must be >= 0 (got %d)", cfg.Width)
	}
	if cfg.TabWidth <= 0 {
		return fmt.Errorf("invalid configuration: tabwidth must be > 0 (got %d)", cfg.TabWidth)
	}
	return nil
}

func writeConfigJSON(w io.Writer, cfg Config) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(cfg)
}
