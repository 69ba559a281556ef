// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// BuildModeFull assembles an uberjar with all library archives unpacked in.
	BuildModeFull BuildMode = "full"
	// BuildModeThin assembles a jar from directory entries only.
	BuildModeThin BuildMode = "thin"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidBuildMode is returned when a BuildMode value is not recognized.
	ErrInvalidBuildMode = errors.New("invalid build mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// BuildMode selects how library archives on the classpath are treated.
	BuildMode string

	// InvalidBuildModeError is returned when a BuildMode value is not recognized.
	// It wraps ErrInvalidBuildMode for errors.Is() compatibility.
	InvalidBuildModeError struct {
		Value BuildMode
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// OutputDir is where built jars land when -o gives a bare file name.
		OutputDir string `json:"output_dir" mapstructure:"output_dir"`
		// Mode is the default build mode ("full" or "thin").
		Mode BuildMode `json:"mode" mapstructure:"mode"`
		// SuppressClashWarnings silences per-path collision warnings.
		SuppressClashWarnings bool `json:"suppress_clash_warnings" mapstructure:"suppress_clash_warnings"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the BuildMode.
func (m BuildMode) String() string { return string(m) }

// IsValid returns whether the BuildMode is one of the defined modes,
// and a list of validation errors if it is not.
func (m BuildMode) IsValid() (bool, []error) {
	switch m {
	case BuildModeFull, BuildModeThin:
		return true, nil
	default:
		return false, []error{&InvalidBuildModeError{Value: m}}
	}
}

// Error implements the error interface for InvalidBuildModeError.
func (e *InvalidBuildModeError) Error() string {
	return fmt.Sprintf("invalid build mode %q (valid: full, thin)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidBuildModeError) Unwrap() error {
	return ErrInvalidBuildMode
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// IsValid returns whether the Config has valid fields.
// It delegates to Mode.IsValid() and UI.ColorScheme.IsValid(); bool and
// path fields need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Mode.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OutputDir:             "target",
		Mode:                  BuildModeFull,
		SuppressClashWarnings: false,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
