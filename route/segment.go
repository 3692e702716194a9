package route

import "github.com/hupe1980/waygraph/curve"

// SegmentField names the value of a SegmentConfig the user edited last.
type SegmentField uint8

const (
	// ByLength keeps MaxLength fixed and derives NodeCount.
	ByLength SegmentField = iota
	// ByCount keeps NodeCount fixed and derives MaxLength.
	ByCount
)

// DefaultMaxSegmentLength is the spacing used when nothing else is set.
const DefaultMaxSegmentLength = 6.0

// SegmentConfig controls how densely a curve is subdivided. MaxLength and
// NodeCount describe the same thing; LastEdited decides which one wins.
type SegmentConfig struct {
	MaxLength  float64
	NodeCount  int
	LastEdited SegmentField
}

// DefaultSegmentConfig subdivides by DefaultMaxSegmentLength.
func DefaultSegmentConfig() SegmentConfig {
	return SegmentConfig{MaxLength: DefaultMaxSegmentLength, NodeCount: 2}
}

// Spacing returns the maximum spacing to resample a curve of the given length
// with.
func (c SegmentConfig) Spacing(length float64) float64 {
	if c.LastEdited == ByCount {
		return curve.SegmentLengthFromCount(length, c.NodeCount)
	}
	return c.MaxLength
}

// Sync updates the derived field for a curve of the given length. Degenerate
// lengths leave the config untouched.
func (c *SegmentConfig) Sync(length float64) {
	if length < curve.DegenerateLength {
		return
	}
	switch c.LastEdited {
	case ByLength:
		c.NodeCount = curve.NodeCountFromLength(length, c.MaxLength)
	case ByCount:
		c.MaxLength = curve.SegmentLengthFromCount(length, c.NodeCount)
	}
}
