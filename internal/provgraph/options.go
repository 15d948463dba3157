package provgraph

import "log/slog"

// Option configures a derivation phase.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger phases report to. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
