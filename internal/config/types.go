// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	LogFormatText   LogFormat = "text"
	LogFormatJSON   LogFormat = "json"
	LogFormatLogfmt LogFormat = "logfmt"

	// ColorSchemeAuto detects the terminal background.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark palette.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light palette.
	ColorSchemeLight ColorScheme = "light"

	// DefaultMaxInputSize is the default input document size limit (16 MiB).
	DefaultMaxInputSize int64 = 16 << 20
	// MaxIndent is the largest accepted output.indent.
	MaxIndent = 8
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat is returned when a LogFormat value is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level of emitted log records.
	LogLevel string

	// LogFormat selects the log record encoding.
	LogFormat string

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidValueError reports a configuration value outside its allowed set.
	InvalidValueError struct {
		Field string
		Value string
		Err   error
	}

	// InvalidConfigError aggregates field validation failures.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the runner's application configuration.
	Config struct {
		LogLevel  LogLevel     `json:"log_level" mapstructure:"log_level" toml:"log_level"`
		LogFormat LogFormat    `json:"log_format" mapstructure:"log_format" toml:"log_format"`
		UI        UIConfig     `json:"ui" mapstructure:"ui" toml:"ui"`
		Output    OutputConfig `json:"output" mapstructure:"output" toml:"output"`
		Input     InputConfig  `json:"input" mapstructure:"input" toml:"input"`
	}

	// UIConfig controls diagnostics rendering.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose renders the issue catalog entry and error chain on failure.
		Verbose bool `json:"verbose" mapstructure:"verbose" toml:"verbose"`
	}

	// OutputConfig controls the result document encoding.
	OutputConfig struct {
		Indent int `json:"indent" mapstructure:"indent" toml:"indent"`
	}

	// InputConfig limits the input document.
	InputConfig struct {
		MaxFileSize int64 `json:"max_file_size" mapstructure:"max_file_size" toml:"max_file_size"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  LogLevelWarn,
		LogFormat: LogFormatText,
		UI:        UIConfig{ColorScheme: ColorSchemeAuto},
		Input:     InputConfig{MaxFileSize: DefaultMaxInputSize},
	}
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: %v %q", e.Field, e.Err, e.Value)
}

// Unwrap returns the field's sentinel error.
func (e *InvalidValueError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field errors", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig together with each field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the level is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidValueError{Field: "log_level", Value: string(l), Err: ErrInvalidLogLevel}}
	}
}

func (f LogFormat) String() string { return string(f) }

// IsValid returns whether the format is one of the defined formats.
func (f LogFormat) IsValid() (bool, []error) {
	switch f {
	case LogFormatText, LogFormatJSON, LogFormatLogfmt:
		return true, nil
	default:
		return false, []error{&InvalidValueError{Field: "log_format", Value: string(f), Err: ErrInvalidLogFormat}}
	}
}

func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the scheme is one of the defined schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidValueError{Field: "ui.color_scheme", Value: string(cs), Err: ErrInvalidColorScheme}}
	}
}

// IsValid validates every field. Values set through the environment bypass
// the CUE schema, so this is the final check after loading.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, v := range []interface{ IsValid() (bool, []error) }{c.LogLevel, c.LogFormat, c.UI.ColorScheme} {
		if ok, fieldErrs := v.IsValid(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	if c.Output.Indent < 0 || c.Output.Indent > MaxIndent {
		errs = append(errs, fmt.Errorf("output.indent: must be between 0 and %d, got %d", MaxIndent, c.Output.Indent))
	}
	if c.Input.MaxFileSize <= 0 {
		errs = append(errs, fmt.Errorf("input.max_file_size: must be positive, got %d", c.Input.MaxFileSize))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}
