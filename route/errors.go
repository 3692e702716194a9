package route

import "errors"

var (
	// ErrTooFewPoints is returned when a tool's curve collapses to fewer than
	// two points, for example when both endpoints coincide.
	ErrTooFewPoints = errors.New("route: curve yields fewer than two points")

	// ErrMissingAnchor is returned when a tool has no start or end anchor.
	ErrMissingAnchor = errors.New("route: missing anchor")
)
