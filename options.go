package waygraph

import (
	"log/slog"
	"math"

	"github.com/hupe1980/waygraph/codec"
	"github.com/hupe1980/waygraph/config"
)

type options struct {
	snapRadius       float64
	maxSegmentLength float64
	dedupEpsilon     float64
	historyLimit     int
	compression      codec.Compression
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures an Editor.
type Option func(*options)

// WithSnapRadius sets the distance within which a drawn endpoint snaps to an
// existing node. Default 3.0.
func WithSnapRadius(r float64) Option {
	return func(o *options) {
		o.snapRadius = r
	}
}

// WithMaxSegmentLength sets the default spacing of resampled curves.
// Default 6.0.
func WithMaxSegmentLength(l float64) Option {
	return func(o *options) {
		o.maxSegmentLength = l
	}
}

// WithDedupEpsilon sets the grid cell size used by Deduplicate. Default 0.01.
func WithDedupEpsilon(eps float64) Option {
	return func(o *options) {
		o.dedupEpsilon = eps
	}
}

// WithHistory sets how many undo steps are kept and how they are compressed.
// A limit of 0 disables undo.
//
// Example:
//
//	ed, _ := waygraph.New(waygraph.WithHistory(20, codec.CompressionZSTD))
func WithHistory(limit int, c codec.Compression) Option {
	return func(o *options) {
		o.historyLimit = limit
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &waygraph.BasicMetricsCollector{}
//	ed, _ := waygraph.New(waygraph.WithMetricsCollector(metrics))
//	// ... draw ...
//	stats := metrics.GetStats()
//	fmt.Printf("Commits: %d, Avg latency: %dns\n", stats.CommitCount, stats.CommitAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithConfig applies a loaded configuration file.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		o.snapRadius = cfg.Editor.SnapRadius
		o.maxSegmentLength = cfg.Editor.MaxSegmentLength
		o.dedupEpsilon = cfg.Editor.DedupEpsilon
		o.historyLimit = cfg.History.Limit
		if c, err := codec.ParseCompression(cfg.History.Compression); err == nil {
			o.compression = c
		}
		if level, enabled, err := cfg.Log.SlogLevel(); err == nil && enabled {
			if cfg.Log.Format == "json" {
				o.logger = NewJSONLogger(level)
			} else {
				o.logger = NewTextLogger(level)
			}
		}
	}
}

func applyOptions(optFns []Option) options {
	def := config.Default()
	o := options{
		snapRadius:       def.Editor.SnapRadius,
		maxSegmentLength: def.Editor.MaxSegmentLength,
		dedupEpsilon:     def.Editor.DedupEpsilon,
		historyLimit:     def.History.Limit,
		compression:      codec.CompressionLZ4,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o options) validate() error {
	switch {
	case !(o.snapRadius >= 0) || math.IsInf(o.snapRadius, 0):
		return &ConfigError{Option: "snap radius", Value: o.snapRadius}
	case !(o.maxSegmentLength > 0) || math.IsInf(o.maxSegmentLength, 0):
		return &ConfigError{Option: "max segment length", Value: o.maxSegmentLength}
	case !(o.dedupEpsilon > 0) || math.IsInf(o.dedupEpsilon, 0):
		return &ConfigError{Option: "dedup epsilon", Value: o.dedupEpsilon}
	case o.historyLimit < 0:
		return &ConfigError{Option: "history limit", Value: o.historyLimit}
	}
	return nil
}
