// Package development holds the three metric domains (physical, conditional,
// endurance) tracked per footballer: record schemas, storage, and the
// server-side graph-data builder. All three domains share one record
// lifecycle keyed by (footballer_id, date).
package development

// Domain names double as route prefixes and table names.
const (
	DomainPhysical    = "physical"
	DomainConditional = "conditional"
	DomainEndurance   = "endurance"
)

// Entry is the header every metric record carries. CreatedAt is the entry's
// calendar date in "2006-01-02" form; there is at most one entry per
// footballer per date.
type Entry struct {
	ID           int64  `json:"id" db:"id"`
	FootballerID int64  `json:"footballer_id" db:"footballer_id"`
	CreatedAt    string `json:"created_at" db:"created_at"`
}

// Header exposes the entry header shared by all record types.
func (e *Entry) Header() *Entry { return e }

// Record is implemented by all three domain record types.
type Record interface {
	Header() *Entry
}

// RecordPtr constrains a type parameter to a pointer to one of the domain
// record types.
type RecordPtr[R any] interface {
	*R
	Record
}

// Physical is one dated set of physical measurements.
type Physical struct {
	Entry
	MuscleMass            *float64 `json:"muscle_mass" db:"muscle_mass"`
	MuscleStrength        *float64 `json:"muscle_strength" db:"muscle_strength"`
	MuscleEndurance       *float64 `json:"muscle_endurance" db:"muscle_endurance"`
	Flexibility           *float64 `json:"flexibility" db:"flexibility"`
	Weight                *float64 `json:"weight" db:"weight"`
	BodyFatPercentage     *float64 `json:"body_fat_percentage" db:"body_fat_percentage"`
	Heights               *string  `json:"heights" db:"heights"`
	ThighCircumference    *float64 `json:"thigh_circumference" db:"thigh_circumference"`
	ShoulderCircumference *float64 `json:"shoulder_circumference" db:"shoulder_circumference"`
	ArmCircumference      *float64 `json:"arm_circumference" db:"arm_circumference"`
	ChestCircumference    *float64 `json:"chest_circumference" db:"chest_circumference"`
	BackCircumference     *float64 `json:"back_circumference" db:"back_circumference"`
	WaistCircumference    *float64 `json:"waist_circumference" db:"waist_circumference"`
	LegCircumference      *float64 `json:"leg_circumference" db:"leg_circumference"`
	CalfCircumference     *float64 `json:"calf_circumference" db:"calf_circumference"`
}

// Conditional is one dated set of conditioning measurements.
type Conditional struct {
	Entry
	VO2Max                *float64 `json:"vo2_max" db:"vo2_max"`
	LactateLevels         *float64 `json:"lactate_levels" db:"lactate_levels"`
	TrainingIntensity     *float64 `json:"training_intensity" db:"training_intensity"`
	RecoveryTimes         *float64 `json:"recovery_times" db:"recovery_times"`
	CurrentVO2Max         *float64 `json:"current_vo2_max" db:"current_vo2_max"`
	CurrentLactateLevels  *float64 `json:"current_lactate_levels" db:"current_lactate_levels"`
	CurrentMuscleStrength *float64 `json:"current_muscle_strength" db:"current_muscle_strength"`
	TargetVO2Max          *float64 `json:"target_vo2_max" db:"target_vo2_max"`
	TargetLactateLevel    *float64 `json:"target_lactate_level" db:"target_lactate_level"`
	TargetMuscleStrength  *float64 `json:"target_muscle_strength" db:"target_muscle_strength"`
}

// Endurance is one dated set of endurance measurements.
type Endurance struct {
	Entry
	RunningDistance   *float64 `json:"running_distance" db:"running_distance"`
	AverageSpeed      *float64 `json:"average_speed" db:"average_speed"`
	HeartRate         *int     `json:"heart_rate" db:"heart_rate"`
	PeakHeartRate     *int     `json:"peak_heart_rate" db:"peak_heart_rate"`
	TrainingIntensity *float64 `json:"training_intensity" db:"training_intensity"`
	Session           *int     `json:"session" db:"session"`
}
