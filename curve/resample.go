package curve

import (
	"math"
	"sort"

	"github.com/hupe1980/waygraph/geom"
)

const (
	// LUTSamples is the number of t-steps in the cumulative chord table.
	LUTSamples = 256
	// DegenerateLength is the length below which a curve collapses to a point.
	DegenerateLength = 1e-6
	// MaxSegments caps the subdivision of a single curve.
	MaxSegments = 16 * LUTSamples
)

// Resample returns points along c spaced evenly by arc length.
//
// The first and last points are exactly c.Evaluate(0) and c.Evaluate(1). The
// number of segments is ceil(length / maxSpacing), clamped to [1, MaxSegments].
// Below that cap the actual spacing never exceeds maxSpacing by more than the
// chord approximation error. A curve shorter than DegenerateLength yields a single point.
// A non-positive maxSpacing yields a single segment.
func Resample(c Curve, maxSpacing float64) []geom.Vec2 {
	table := cumulativeLengths(c, LUTSamples)
	start := c.Evaluate(0)

	total := table[len(table)-1]
	if total < DegenerateLength {
		return []geom.Vec2{start}
	}

	segments := SegmentCount(total, maxSpacing)
	spacing := total / float64(segments)

	points := make([]geom.Vec2, 0, segments+1)
	points = append(points, start)
	for i := 1; i < segments; i++ {
		points = append(points, c.Evaluate(paramAtLength(table, float64(i)*spacing)))
	}
	points = append(points, c.Evaluate(1))
	return points
}

// SegmentCount returns ceil(length / maxSpacing), at least 1 and at most
// MaxSegments.
func SegmentCount(length, maxSpacing float64) int {
	if !(maxSpacing > 0) || length <= 0 {
		return 1
	}
	ratio := length / maxSpacing
	if !(ratio <= MaxSegments) {
		return MaxSegments
	}
	n := int(math.Ceil(ratio))
	// Guard against rounding pushing an exact multiple one segment up.
	if n > 1 && float64(n-1)*maxSpacing >= length*(1-1e-12) {
		n--
	}
	return max(n, 1)
}

// cumulativeLengths returns samples+1 cumulative chord lengths at evenly spaced t.
func cumulativeLengths(c Curve, samples int) []float64 {
	table := make([]float64, samples+1)
	prev := c.Evaluate(0)
	cumulative := 0.0
	for i := 1; i <= samples; i++ {
		p := c.Evaluate(float64(i) / float64(samples))
		cumulative += prev.Distance(p)
		table[i] = cumulative
		prev = p
	}
	return table
}

// paramAtLength maps an arc length onto t by locating the bracketing table
// entries and interpolating linearly between them.
func paramAtLength(table []float64, target float64) float64 {
	samples := len(table) - 1
	idx := sort.SearchFloat64s(table, target)
	idx = min(max(idx, 1), samples)

	before := table[idx-1]
	after := table[idx]
	frac := 0.0
	if span := after - before; span > 1e-12 {
		frac = (target - before) / span
	}
	return (float64(idx-1) + frac) / float64(samples)
}

// NodeCountFromLength returns the node count (endpoints included) needed to
// split length into segments of at most maxSpacing.
func NodeCountFromLength(length, maxSpacing float64) int {
	return SegmentCount(length, maxSpacing) + 1
}

// SegmentLengthFromCount returns the spacing that splits length into
// nodeCount-1 equal segments. nodeCount below 2 is treated as 2.
func SegmentLengthFromCount(length float64, nodeCount int) float64 {
	return length / float64(max(nodeCount, 2)-1)
}
