// Package config holds runtime configuration: defaults, the optional YAML
// settings file, CLI flag binding, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// --- Enum types for validated string fields ---

// NamingPolicy selects how new file names are generated.
type NamingPolicy string

const (
	PolicyRandomSuffix NamingPolicy = "random"     // prefix_number_date_random.ext (default).
	PolicySequential   NamingPolicy = "sequential" // prefix+date+number.ext, zero-padded.
)

// ExtensionSet selects which file extensions count as images.
type ExtensionSet string

const (
	ExtensionsBroad  ExtensionSet = "broad"  // jpg jpeg png gif bmp tiff webp (default).
	ExtensionsNarrow ExtensionSet = "narrow" // jpg jpeg png.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// OutputFormat is the rendering format for command results.
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Human-readable (default on a TTY).
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// overlaid by the settings file ([Settings.Apply]) and finally by CLI flags
// ([ApplyFlags]) before being passed by pointer to packages that need it.
type Config struct {
	// Naming.
	Policy     NamingPolicy // Default: "random".
	Extensions ExtensionSet // Default: "broad". Scanner and renamer share it.

	// Persistence.
	StateDir     string // Optional override of ~/.image_rename_tool.
	SettingsFile string // Optional; <state dir>/settings.yaml is read when present.

	// Display and logging.
	Format    OutputFormat // Empty means: table on a TTY, json otherwise.
	ColorMode ColorMode    // Default: "auto".
	Verbose   bool
	LogFile   string // Optional log file path.
}

// DefaultConfig returns the stock Config: random-suffix names over the broad
// extension set.
func DefaultConfig() Config {
	return Config{
		Policy:     PolicyRandomSuffix,
		Extensions: ExtensionsBroad,
		ColorMode:  ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that every enum field holds a known value.
func (c *Config) Validate() error {
	switch c.Policy {
	case PolicyRandomSuffix, PolicySequential:
		// valid
	default:
		return errors.New("invalid policy (use 'random' or 'sequential')")
	}

	switch c.Extensions {
	case ExtensionsBroad, ExtensionsNarrow:
		// valid
	default:
		return errors.New("invalid extension set (use 'broad' or 'narrow')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	switch c.Format {
	case "", FormatTable, FormatJSON, FormatYAML:
		// valid
	default:
		return errors.New("invalid format (use 'table', 'json' or 'yaml')")
	}
	return nil
}

// ParseNamingPolicy maps user input (case-insensitive) to a NamingPolicy.
func ParseNamingPolicy(s string) (NamingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "a":
		return PolicyRandomSuffix, nil
	case "sequential", "b":
		return PolicySequential, nil
	default:
		return "", fmt.Errorf("invalid policy %q (use 'random' or 'sequential')", s)
	}
}

// ParseExtensionSet maps user input (case-insensitive) to an ExtensionSet.
func ParseExtensionSet(s string) (ExtensionSet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "broad":
		return ExtensionsBroad, nil
	case "narrow":
		return ExtensionsNarrow, nil
	default:
		return "", fmt.Errorf("invalid extension set %q (use 'broad' or 'narrow')", s)
	}
}

// ParseColorMode maps user input (case-insensitive) to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
	}
}

// ParseOutputFormat maps user input to an OutputFormat. The empty string is
// accepted and left for the renderer to resolve against the TTY.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q (use 'table', 'json' or 'yaml')", s)
	}
}
