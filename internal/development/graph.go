package development

import (
	"fmt"
	"strings"
)

// Graph types accepted by generate-graph. "progress-tracker" summarizes each
// metric against its observed target; "time-tracker" returns dated series
// scaled to percent of target. The client forwards the response unmodified.
const (
	GraphProgressTracker = "progress-tracker"
	GraphTimeTracker     = "time-tracker"
)

// GraphRequest are the parameters of a generate-graph call.
type GraphRequest struct {
	FootballerID int64  `json:"footballer_id"`
	GraphType    string `json:"graph_type"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}

// GraphPoint is one dated value on a series.
type GraphPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// GraphSeries is the computed chart data for one metric.
type GraphSeries struct {
	Label   string       `json:"label"`
	Points  []GraphPoint `json:"points,omitempty"`
	Average float64      `json:"average"`
	Target  float64      `json:"target"`
	Percent float64      `json:"percent"`
}

// Graph is the generate-graph response body.
type Graph struct {
	GraphType    string        `json:"graph_type"`
	FootballerID int64         `json:"footballer_id"`
	StartDate    string        `json:"start_date,omitempty"`
	EndDate      string        `json:"end_date,omitempty"`
	Series       []GraphSeries `json:"series"`
}

type metricColumn[R any] struct {
	label string
	value func(*R) *float64
}

func floatOf(p *int) *float64 {
	if p == nil {
		return nil
	}
	f := float64(*p)
	return &f
}

var physicalMetrics = []metricColumn[Physical]{
	{"Muscle Mass (kg)", func(r *Physical) *float64 { return r.MuscleMass }},
	{"Muscle Strength (kg)", func(r *Physical) *float64 { return r.MuscleStrength }},
	{"Muscle Endurance (reps)", func(r *Physical) *float64 { return r.MuscleEndurance }},
	{"Flexibility (cm)", func(r *Physical) *float64 { return r.Flexibility }},
	{"Weight (kg)", func(r *Physical) *float64 { return r.Weight }},
	{"Height (cm)", func(r *Physical) *float64 {
		if r.Heights == nil {
			return nil
		}
		cm := HeightCentimeters(*r.Heights)
		if cm == 0 {
			return nil
		}
		return &cm
	}},
}

var conditionalMetrics = []metricColumn[Conditional]{
	{"VO2 Max (ml/kg/min)", func(r *Conditional) *float64 { return r.VO2Max }},
	{"Lactate Levels (mmol/L)", func(r *Conditional) *float64 { return r.LactateLevels }},
	{"Training Intensity (%)", func(r *Conditional) *float64 { return r.TrainingIntensity }},
	{"Recovery Times (min)", func(r *Conditional) *float64 { return r.RecoveryTimes }},
}

var enduranceMetrics = []metricColumn[Endurance]{
	{"Running Distance (km)", func(r *Endurance) *float64 { return r.RunningDistance }},
	{"Average Speed (km/h)", func(r *Endurance) *float64 { return r.AverageSpeed }},
	{"Heart Rate (bpm)", func(r *Endurance) *float64 { return floatOf(r.HeartRate) }},
	{"Peak Heart Rate (bpm)", func(r *Endurance) *float64 { return floatOf(r.PeakHeartRate) }},
}

// BuildPhysicalGraph computes chart data for physical records.
func BuildPhysicalGraph(req GraphRequest, recs []Physical) (*Graph, error) {
	return buildGraph(req, recs, physicalMetrics)
}

// BuildConditionalGraph computes chart data for conditional records.
func BuildConditionalGraph(req GraphRequest, recs []Conditional) (*Graph, error) {
	return buildGraph(req, recs, conditionalMetrics)
}

// BuildEnduranceGraph computes chart data for endurance records.
func BuildEnduranceGraph(req GraphRequest, recs []Endurance) (*Graph, error) {
	return buildGraph(req, recs, enduranceMetrics)
}

func buildGraph[R any, P RecordPtr[R]](req GraphRequest, recs []R, metrics []metricColumn[R]) (*Graph, error) {
	if req.GraphType != GraphProgressTracker && req.GraphType != GraphTimeTracker {
		return nil, fmt.Errorf("unknown graph type: %s", req.GraphType)
	}

	g := &Graph{
		GraphType:    req.GraphType,
		FootballerID: req.FootballerID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Series:       []GraphSeries{},
	}

	for _, m := range metrics {
		var points []GraphPoint
		var sum, target float64

		for i := range recs {
			v := m.value(&recs[i])
			if v == nil {
				continue
			}
			points = append(points, GraphPoint{Date: P(&recs[i]).Header().CreatedAt, Value: *v})
			sum += *v
			if *v > target {
				target = *v
			}
		}
		if len(points) == 0 {
			continue
		}

		s := GraphSeries{
			Label:   m.label,
			Average: sum / float64(len(points)),
			Target:  target,
		}
		if target > 0 {
			s.Percent = s.Average / target * 100
		}
		if req.GraphType == GraphTimeTracker {
			if target > 0 {
				for i := range points {
					points[i].Value = points[i].Value / target * 100
				}
			}
			s.Points = points
		}
		g.Series = append(g.Series, s)
	}

	return g, nil
}

// HeightCentimeters normalizes a free-form height string to centimeters.
// Accepts values like "1,78 m", "1.78m", "178 cm", or "178". Returns 0 when
// the string cannot be parsed.
func HeightCentimeters(s string) float64 {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSuffix(s, "cm")
	s = strings.TrimSuffix(s, "m")
	s = strings.TrimSpace(s)

	var v float64
	if _, err := fmt.Sscanf(s, "%f", &v); err != nil {
		return 0
	}
	// Values under 3 are meters.
	if v > 0 && v < 3 {
		v *= 100
	}
	return v
}
