package graph

import (
	"io"
	"log/slog"
)

// Option configures a Mutable.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report skipped references during batch
// edits. The default discards all output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
