package waygraph

import (
	"errors"
	"fmt"

	"github.com/hupe1980/waygraph/config"
	"github.com/hupe1980/waygraph/graph"
	"github.com/hupe1980/waygraph/route"
)

var (
	// ErrInvalidConfig is returned when options or a config file carry
	// out-of-range values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNotFound is returned when an operation references a missing node or
	// edge.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned when a drawing or delta cannot be applied
	// as given.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNothingToUndo is returned by Undo when there is no earlier state.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo when no undone edit is left.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// ConfigError reports an invalid option value.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ConfigError struct {
	Option string
	Value  any
	cause  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Option, e.Value)
}

func (e *ConfigError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrInvalidConfig}
	}
	return []error{ErrInvalidConfig, e.cause}
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, graph.ErrNodeNotFound) || errors.Is(err, graph.ErrEdgeNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Input normalization.
	if errors.Is(err, route.ErrTooFewPoints) ||
		errors.Is(err, route.ErrMissingAnchor) ||
		errors.Is(err, graph.ErrSelfLoop) ||
		errors.Is(err, graph.ErrNodeExists) ||
		errors.Is(err, graph.ErrInvalidDelta) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if errors.Is(err, config.ErrInvalid) {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return err
}
