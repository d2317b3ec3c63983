// SPDX-License-Identifier: MPL-2.0

package cueutil

// DefaultMaxFileSize caps config files and input documents unless the caller
// passes WithMaxFileSize (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// unnamedDocument labels diagnostics for data that has no file name.
const unnamedDocument = "<input>"

type (
	parseOptions struct {
		maxFileSize int64
		concrete    bool
		filename    string
	}

	// Option configures Validate and ParseAndDecode.
	Option func(*parseOptions)
)

func newOptions(opts []Option) parseOptions {
	o := parseOptions{
		maxFileSize: DefaultMaxFileSize,
		concrete:    true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// displayName is the file name used in diagnostics.
func (o parseOptions) displayName() string {
	if o.filename == "" {
		return unnamedDocument
	}
	return o.filename
}

// WithMaxFileSize sets the maximum accepted document size in bytes.
func WithMaxFileSize(size int64) Option {
	return func(o *parseOptions) {
		o.maxFileSize = size
	}
}

// WithConcrete sets whether every value must be concrete after unification.
// Config files use false: unset fields fall back to defaults.
func WithConcrete(concrete bool) Option {
	return func(o *parseOptions) {
		o.concrete = concrete
	}
}

// WithFilename sets the path reported in diagnostics, usually the config
// file or the input document path given on the command line.
func WithFilename(name string) Option {
	return func(o *parseOptions) {
		o.filename = name
	}
}
