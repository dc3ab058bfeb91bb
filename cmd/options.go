package cmd

// Options holds the shared command-line options for the addonsync CLI.
type Options struct {
	Format    string
	WowPath   string
	Verbosity int
	Workers   int
	NoCache   bool  // Bypass the version cache and hit the API directly
	Notify    bool  // Dispatch a notification when updates are found
	All       bool  // Operate on every catalog addon
	TUI       *bool // nil = auto-detect, true = force TUI, false = disable TUI

	// Watch options
	Interval string // Polling interval for watch mode (e.g., "5m", "1h")
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithFormat sets the output format (table, json, markdown).
func WithFormat(format string) Option {
	return func(o *Options) {
		o.Format = format
	}
}

// WithWowPath sets the WoW installation root, bypassing config and detection.
func WithWowPath(path string) Option {
	return func(o *Options) {
		o.WowPath = path
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithWorkers sets the number of concurrent version checks.
func WithWorkers(workers int) Option {
	return func(o *Options) {
		o.Workers = workers
	}
}

// WithNoCache bypasses the version cache.
func WithNoCache(noCache bool) Option {
	return func(o *Options) {
		o.NoCache = noCache
	}
}

// WithNotify dispatches a notification when updates are found.
func WithNotify(notify bool) Option {
	return func(o *Options) {
		o.Notify = notify
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}
