package safefn

import "github.com/rs/zerolog"

// Config holds the recognized declaration options. The struct tags let
// envconfig load it, e.g. SAFEFN_HELPERS_FIRST=true.
type Config struct {
	// HelpersFirst passes the error helpers before the resolved positional
	// arguments instead of after them.
	HelpersFirst bool `split_words:"true" default:"false"`
}

// Option configures a Declaration.
type Option func(*Declaration)

// WithConfig replaces the declaration's Config.
func WithConfig(c Config) Option { return func(d *Declaration) { d.cfg = c } }

// WithHelpersFirst sets Config.HelpersFirst.
func WithHelpersFirst(first bool) Option { return func(d *Declaration) { d.cfg.HelpersFirst = first } }

// WithLogger sets the logger used for debug events of wrapped calls.
func WithLogger(l zerolog.Logger) Option { return func(d *Declaration) { d.log = l } }
