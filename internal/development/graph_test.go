package development_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachpad/coachpad/internal/development"
)

func fp(v float64) *float64 { return &v }

func physicalOn(date string, weight float64) development.Physical {
	return development.Physical{
		Entry:  development.Entry{FootballerID: 7, CreatedAt: date},
		Weight: fp(weight),
	}
}

// --- Graph Tests ---

func TestBuildPhysicalGraph_ProgressTracker(t *testing.T) {
	recs := []development.Physical{
		physicalOn("2026-01-01", 80),
		physicalOn("2026-01-08", 82),
		physicalOn("2026-01-15", 84),
	}

	g, err := development.BuildPhysicalGraph(development.GraphRequest{
		FootballerID: 7,
		GraphType:    development.GraphProgressTracker,
	}, recs)
	require.NoError(t, err)

	require.Len(t, g.Series, 1, "only the measured metric appears")
	s := g.Series[0]
	assert.Equal(t, "Weight (kg)", s.Label)
	assert.InDelta(t, 82.0, s.Average, 0.001)
	assert.Equal(t, 84.0, s.Target, "target is the best observed value")
	assert.InDelta(t, 82.0/84.0*100, s.Percent, 0.001)
	assert.Empty(t, s.Points, "progress tracker carries no dated points")
}

func TestBuildPhysicalGraph_TimeTrackerScalesPoints(t *testing.T) {
	recs := []development.Physical{
		physicalOn("2026-01-01", 50),
		physicalOn("2026-01-08", 100),
	}

	g, err := development.BuildPhysicalGraph(development.GraphRequest{
		FootballerID: 7,
		GraphType:    development.GraphTimeTracker,
	}, recs)
	require.NoError(t, err)

	require.Len(t, g.Series, 1)
	points := g.Series[0].Points
	require.Len(t, points, 2)
	assert.Equal(t, "2026-01-01", points[0].Date)
	assert.InDelta(t, 50.0, points[0].Value, 0.001, "points are percent of target")
	assert.InDelta(t, 100.0, points[1].Value, 0.001)
}

func TestBuildPhysicalGraph_UnknownType(t *testing.T) {
	_, err := development.BuildPhysicalGraph(development.GraphRequest{
		FootballerID: 7,
		GraphType:    "pie-chart",
	}, []development.Physical{physicalOn("2026-01-01", 80)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown graph type")
}

func TestBuildPhysicalGraph_SkipsUnmeasuredMetrics(t *testing.T) {
	recs := []development.Physical{
		{Entry: development.Entry{FootballerID: 7, CreatedAt: "2026-01-01"}},
	}
	g, err := development.BuildPhysicalGraph(development.GraphRequest{
		FootballerID: 7,
		GraphType:    development.GraphProgressTracker,
	}, recs)
	require.NoError(t, err)
	assert.Empty(t, g.Series)
}

func TestBuildEnduranceGraph_IntegerMetrics(t *testing.T) {
	hr := 140
	recs := []development.Endurance{
		{Entry: development.Entry{FootballerID: 7, CreatedAt: "2026-01-01"}, HeartRate: &hr},
	}
	g, err := development.BuildEnduranceGraph(development.GraphRequest{
		FootballerID: 7,
		GraphType:    development.GraphProgressTracker,
	}, recs)
	require.NoError(t, err)
	require.Len(t, g.Series, 1)
	assert.Equal(t, 140.0, g.Series[0].Target)
}

// --- HeightCentimeters Tests ---

func TestHeightCentimeters(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,78 m", 178},
		{"1.78m", 178},
		{"178 cm", 178},
		{"178", 178},
		{"", 0},
		{"tall", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, development.HeightCentimeters(tc.in), "input %q", tc.in)
	}
}
