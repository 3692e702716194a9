package waygraph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/waygraph/config"
	"github.com/hupe1980/waygraph/graph"
	"github.com/hupe1980/waygraph/route"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	other := errors.New("other")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"NodeNotFound", &graph.NodeNotFoundError{ID: 7}, ErrNotFound},
		{"EdgeNotFound", graph.ErrEdgeNotFound, ErrNotFound},
		{"TooFewPoints", route.ErrTooFewPoints, ErrInvalidInput},
		{"MissingAnchor", route.ErrMissingAnchor, ErrInvalidInput},
		{"SelfLoop", graph.ErrSelfLoop, ErrInvalidInput},
		{"NodeExists", fmt.Errorf("add: %w", graph.ErrNodeExists), ErrInvalidInput},
		{"InvalidDelta", graph.ErrInvalidDelta, ErrInvalidInput},
		{"Config", config.ErrInvalid, ErrInvalidConfig},
		{"Passthrough", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.in)
		})
	}

	assert.NoError(t, translateError(nil))
}

func TestConfigError(t *testing.T) {
	cause := errors.New("parse")
	err := &ConfigError{Option: "compression", Value: "brotli", cause: cause}

	assert.Equal(t, "invalid compression: brotli", err.Error())
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, cause)
}
