package waygraph

import (
	"errors"
	"math"
	"testing"

	"github.com/hupe1980/waygraph/codec"
	"github.com/hupe1980/waygraph/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptionsDefaults(t *testing.T) {
	o := applyOptions(nil)
	assert.Equal(t, 3.0, o.snapRadius)
	assert.Equal(t, 6.0, o.maxSegmentLength)
	assert.Equal(t, 0.01, o.dedupEpsilon)
	assert.Equal(t, 100, o.historyLimit)
	assert.Equal(t, codec.CompressionLZ4, o.compression)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
	require.NotNil(t, o.logger)
	require.NoError(t, o.validate())
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		opt    Option
		option string
	}{
		{"NegativeSnap", WithSnapRadius(-1), "snap radius"},
		{"NaNSnap", WithSnapRadius(math.NaN()), "snap radius"},
		{"ZeroSegment", WithMaxSegmentLength(0), "max segment length"},
		{"InfSegment", WithMaxSegmentLength(math.Inf(1)), "max segment length"},
		{"ZeroEpsilon", WithDedupEpsilon(0), "dedup epsilon"},
		{"NegativeHistory", WithHistory(-1, codec.CompressionNone), "history limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.option, ce.Option)
		})
	}
}

func TestNilOptions(t *testing.T) {
	o := applyOptions([]Option{nil, WithLogger(nil), WithMetricsCollector(nil)})
	assert.NotNil(t, o.logger)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)
}

func TestWithConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.SnapRadius = 1.5
	cfg.Editor.MaxSegmentLength = 2
	cfg.Editor.DedupEpsilon = 0.5
	cfg.History.Limit = 7
	cfg.History.Compression = "zstd"
	cfg.Log.Level = "debug"
	cfg.Log.Format = "json"

	o := applyOptions([]Option{WithConfig(cfg)})
	assert.Equal(t, 1.5, o.snapRadius)
	assert.Equal(t, 2.0, o.maxSegmentLength)
	assert.Equal(t, 0.5, o.dedupEpsilon)
	assert.Equal(t, 7, o.historyLimit)
	assert.Equal(t, codec.CompressionZSTD, o.compression)
	assert.NotNil(t, o.logger)

	ed, err := New(WithConfig(cfg))
	require.NoError(t, err)
	assert.Equal(t, 2.0, ed.Stroke().Segment.MaxLength)
}
