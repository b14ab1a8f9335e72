package development

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Form input arrives as strings (one per metric field); these parsers
// validate and convert at the boundary so only typed records travel further.
// Empty strings mean "not measured" and map to nil.

// PhysicalFields lists the accepted physical form fields.
var PhysicalFields = []string{
	"muscle_mass", "muscle_strength", "muscle_endurance", "flexibility",
	"weight", "body_fat_percentage", "heights",
	"thigh_circumference", "shoulder_circumference", "arm_circumference",
	"chest_circumference", "back_circumference", "waist_circumference",
	"leg_circumference", "calf_circumference",
}

// ConditionalFields lists the accepted conditional form fields.
var ConditionalFields = []string{
	"vo2_max", "lactate_levels", "training_intensity", "recovery_times",
	"current_vo2_max", "current_lactate_levels", "current_muscle_strength",
	"target_vo2_max", "target_lactate_level", "target_muscle_strength",
}

// EnduranceFields lists the accepted endurance form fields.
var EnduranceFields = []string{
	"running_distance", "average_speed", "heart_rate",
	"peak_heart_rate", "training_intensity", "session",
}

type formReader struct {
	values map[string]string
	known  map[string]bool
	bad    []string
}

func newFormReader(values map[string]string, fields []string) *formReader {
	known := make(map[string]bool, len(fields))
	for _, f := range fields {
		known[f] = true
	}
	return &formReader{values: values, known: known}
}

func (f *formReader) decimal(field string) *float64 {
	s, ok := f.values[field]
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		f.bad = append(f.bad, field)
		return nil
	}
	return &v
}

func (f *formReader) integer(field string) *int {
	s, ok := f.values[field]
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		f.bad = append(f.bad, field)
		return nil
	}
	return &v
}

func (f *formReader) text(field string) *string {
	s, ok := f.values[field]
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	t := strings.TrimSpace(s)
	return &t
}

func (f *formReader) err() error {
	var unknown []string
	for k := range f.values {
		if !f.known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown fields: %s", strings.Join(unknown, ", "))
	}
	if len(f.bad) > 0 {
		sort.Strings(f.bad)
		return fmt.Errorf("invalid numeric values for: %s", strings.Join(f.bad, ", "))
	}
	return nil
}

// PhysicalFromForm converts string form values into a Physical record.
func PhysicalFromForm(values map[string]string) (*Physical, error) {
	f := newFormReader(values, PhysicalFields)
	rec := &Physical{
		MuscleMass:            f.decimal("muscle_mass"),
		MuscleStrength:        f.decimal("muscle_strength"),
		MuscleEndurance:       f.decimal("muscle_endurance"),
		Flexibility:           f.decimal("flexibility"),
		Weight:                f.decimal("weight"),
		BodyFatPercentage:     f.decimal("body_fat_percentage"),
		Heights:               f.text("heights"),
		ThighCircumference:    f.decimal("thigh_circumference"),
		ShoulderCircumference: f.decimal("shoulder_circumference"),
		ArmCircumference:      f.decimal("arm_circumference"),
		ChestCircumference:    f.decimal("chest_circumference"),
		BackCircumference:     f.decimal("back_circumference"),
		WaistCircumference:    f.decimal("waist_circumference"),
		LegCircumference:      f.decimal("leg_circumference"),
		CalfCircumference:     f.decimal("calf_circumference"),
	}
	if err := f.err(); err != nil {
		return nil, err
	}
	return rec, nil
}

// ConditionalFromForm converts string form values into a Conditional record.
func ConditionalFromForm(values map[string]string) (*Conditional, error) {
	f := newFormReader(values, ConditionalFields)
	rec := &Conditional{
		VO2Max:                f.decimal("vo2_max"),
		LactateLevels:         f.decimal("lactate_levels"),
		TrainingIntensity:     f.decimal("training_intensity"),
		RecoveryTimes:         f.decimal("recovery_times"),
		CurrentVO2Max:         f.decimal("current_vo2_max"),
		CurrentLactateLevels:  f.decimal("current_lactate_levels"),
		CurrentMuscleStrength: f.decimal("current_muscle_strength"),
		TargetVO2Max:          f.decimal("target_vo2_max"),
		TargetLactateLevel:    f.decimal("target_lactate_level"),
		TargetMuscleStrength:  f.decimal("target_muscle_strength"),
	}
	if err := f.err(); err != nil {
		return nil, err
	}
	return rec, nil
}

// EnduranceFromForm converts string form values into an Endurance record.
func EnduranceFromForm(values map[string]string) (*Endurance, error) {
	f := newFormReader(values, EnduranceFields)
	rec := &Endurance{
		RunningDistance:   f.decimal("running_distance"),
		AverageSpeed:      f.decimal("average_speed"),
		HeartRate:         f.integer("heart_rate"),
		PeakHeartRate:     f.integer("peak_heart_rate"),
		TrainingIntensity: f.decimal("training_intensity"),
		Session:           f.integer("session"),
	}
	if err := f.err(); err != nil {
		return nil, err
	}
	return rec, nil
}
