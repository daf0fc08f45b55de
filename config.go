package like

import "io"

// Config controls ambient, non-semantic behavior of Compile. None of its
// fields change what a pattern matches; they only affect diagnostics and
// (for the unexported disablePeeling knob, reachable only from this
// package's own tests) how the matcher is assembled internally.
//
// Example:
//
//	cfg := like.DefaultConfig()
//	cfg.Trace = os.Stderr
//	m, err := like.CompileWithConfig("a%b", like.Escape{}, cfg)
type Config struct {
	// Trace, when non-nil, receives one line of plain-text diagnostics per
	// compiled pattern (optimized element count, NFA state count, DFA state
	// count, whether the matcher ended up in exact or stop-on-accept mode).
	// Default: nil (no tracing).
	Trace io.Writer

	// disablePeeling forces Compile to skip prefix/suffix literal peeling
	// and build the entire pattern into the DFA instead. It exists only to
	// let this package's own tests check property 4 (spec.md §8): that
	// peeling never changes the boolean result of a match, only its speed.
	// Unexported because it is not a feature for callers to toggle — a
	// compiled LikeMatcher's behavior must not depend on it.
	disablePeeling bool
}

// DefaultConfig returns the default configuration: no tracing, peeling
// enabled.
func DefaultConfig() Config {
	return Config{}
}

// Validate reports whether c is well-formed. Every field currently has an
// unconditionally valid zero value, so Validate always succeeds; it exists
// for interface symmetry and forward compatibility with future knobs.
func (c Config) Validate() error {
	return nil
}

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "like: invalid config: " + e.Field + ": " + e.Message
}
