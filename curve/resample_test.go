package curve

import (
	"testing"

	"github.com/hupe1980/waygraph/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleStraightLine(t *testing.T) {
	points := Resample(Line(geom.V(0, 0), geom.V(12, 0)), 6.0)

	require.Len(t, points, 3)
	assert.Equal(t, geom.V(0, 0), points[0])
	assert.True(t, points[1].ApproxEqual(geom.V(6, 0), 1e-9), "got %v", points[1])
	assert.Equal(t, geom.V(12, 0), points[2])
}

func TestResampleSpacing(t *testing.T) {
	tests := []struct {
		name    string
		curve   Curve
		spacing float64
	}{
		{"Line", Line(geom.V(-3, 2), geom.V(40, 17)), 2.5},
		{"Quadratic", Quadratic(geom.V(0, 0), geom.V(20, 15), geom.V(40, 0)), 3},
		{"Cubic", Cubic(geom.V(0, 0), geom.V(10, 20), geom.V(30, 20), geom.V(40, 0)), 4},
		{"CatmullRom", CatmullRom([]geom.Vec2{{X: 0, Y: 0}, {X: 20, Y: 5}, {X: 40, Y: 0}, {X: 60, Y: 5}}), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Resample(tt.curve, tt.spacing)

			require.GreaterOrEqual(t, len(points), 2)
			assert.True(t, points[0].ApproxEqual(tt.curve.Evaluate(0), 1e-2))
			assert.True(t, points[len(points)-1].ApproxEqual(tt.curve.Evaluate(1), 1e-2))

			minGap, maxGap := points[0].Distance(points[1]), 0.0
			for i := 1; i < len(points); i++ {
				d := points[i-1].Distance(points[i])
				assert.LessOrEqual(t, d, 1.25*tt.spacing, "gap %d", i)
				minGap = min(minGap, d)
				maxGap = max(maxGap, d)
			}
			// Arc-length spacing keeps gaps nearly uniform.
			assert.Less(t, maxGap-minGap, 0.1*tt.spacing)
		})
	}
}

func TestResampleSegmentCount(t *testing.T) {
	points := Resample(Line(geom.V(0, 0), geom.V(10, 0)), 3)
	// ceil(10/3) = 4 segments.
	require.Len(t, points, 5)
	assert.InDelta(t, 2.5, points[0].Distance(points[1]), 1e-9)
}

func TestResampleDegenerate(t *testing.T) {
	points := Resample(Line(geom.V(5, 5), geom.V(5, 5)), 1)
	assert.Equal(t, []geom.Vec2{{X: 5, Y: 5}}, points)

	points = Resample(Curve{}, 1)
	assert.Equal(t, []geom.Vec2{{X: 0, Y: 0}}, points)
}

func TestResampleNonPositiveSpacing(t *testing.T) {
	points := Resample(Line(geom.V(0, 0), geom.V(10, 0)), 0)
	assert.Equal(t, []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}}, points)
}

func TestResampleShorterThanSpacing(t *testing.T) {
	points := Resample(Line(geom.V(0, 0), geom.V(1, 0)), 6)
	assert.Equal(t, []geom.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}}, points)
}

func TestSegmentHelpers(t *testing.T) {
	assert.Equal(t, 1, SegmentCount(0, 5))
	assert.Equal(t, 2, SegmentCount(12, 6))
	assert.Equal(t, 3, SegmentCount(12.5, 6))
	assert.Equal(t, 3, NodeCountFromLength(12, 6))
	assert.InDelta(t, 4.0, SegmentLengthFromCount(12, 4), 1e-12)
	assert.InDelta(t, 12.0, SegmentLengthFromCount(12, 1), 1e-12)
}

func TestResampleTinySpacing(t *testing.T) {
	assert.Equal(t, MaxSegments, SegmentCount(100, 1e-9))
	assert.Equal(t, MaxSegments, SegmentCount(1e300, 1e-300))
	assert.Equal(t, MaxSegments, SegmentCount(100, 100.0/MaxSegments))

	points := Resample(Line(geom.V(0, 0), geom.V(100, 0)), 1e-9)

	require.Len(t, points, MaxSegments+1)
	assert.Equal(t, geom.V(0, 0), points[0])
	assert.Equal(t, geom.V(100, 0), points[len(points)-1])
}

func BenchmarkResampleCubic(b *testing.B) {
	c := Cubic(geom.V(0, 0), geom.V(10, 20), geom.V(30, 20), geom.V(40, 0))
	b.ReportAllocs()
	for b.Loop() {
		_ = Resample(c, 2)
	}
}
