package development

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository for one metric table. The three
// domains differ only in table name and metric columns; everything else is
// shared here.
type PostgresRepository[R any, P RecordPtr[R]] struct {
	pool    *pgxpool.Pool
	table   string
	columns []string
	values  func(*R) []any // metric values, same order as columns
}

// NewPhysicalRepository creates the repository for the physical table.
func NewPhysicalRepository(pool *pgxpool.Pool) Repository[Physical] {
	return &PostgresRepository[Physical, *Physical]{
		pool:  pool,
		table: DomainPhysical,
		columns: []string{
			"muscle_mass", "muscle_strength", "muscle_endurance", "flexibility",
			"weight", "body_fat_percentage", "heights",
			"thigh_circumference", "shoulder_circumference", "arm_circumference",
			"chest_circumference", "back_circumference", "waist_circumference",
			"leg_circumference", "calf_circumference",
		},
		values: func(r *Physical) []any {
			return []any{
				r.MuscleMass, r.MuscleStrength, r.MuscleEndurance, r.Flexibility,
				r.Weight, r.BodyFatPercentage, r.Heights,
				r.ThighCircumference, r.ShoulderCircumference, r.ArmCircumference,
				r.ChestCircumference, r.BackCircumference, r.WaistCircumference,
				r.LegCircumference, r.CalfCircumference,
			}
		},
	}
}

// NewConditionalRepository creates the repository for the conditional table.
func NewConditionalRepository(pool *pgxpool.Pool) Repository[Conditional] {
	return &PostgresRepository[Conditional, *Conditional]{
		pool:  pool,
		table: DomainConditional,
		columns: []string{
			"vo2_max", "lactate_levels", "training_intensity", "recovery_times",
			"current_vo2_max", "current_lactate_levels", "current_muscle_strength",
			"target_vo2_max", "target_lactate_level", "target_muscle_strength",
		},
		values: func(r *Conditional) []any {
			return []any{
				r.VO2Max, r.LactateLevels, r.TrainingIntensity, r.RecoveryTimes,
				r.CurrentVO2Max, r.CurrentLactateLevels, r.CurrentMuscleStrength,
				r.TargetVO2Max, r.TargetLactateLevel, r.TargetMuscleStrength,
			}
		},
	}
}

// NewEnduranceRepository creates the repository for the endurance table.
func NewEnduranceRepository(pool *pgxpool.Pool) Repository[Endurance] {
	return &PostgresRepository[Endurance, *Endurance]{
		pool:  pool,
		table: DomainEndurance,
		columns: []string{
			"running_distance", "average_speed", "heart_rate",
			"peak_heart_rate", "training_intensity", "session",
		},
		values: func(r *Endurance) []any {
			return []any{
				r.RunningDistance, r.AverageSpeed, r.HeartRate,
				r.PeakHeartRate, r.TrainingIntensity, r.Session,
			}
		},
	}
}

func (r *PostgresRepository[R, P]) selectColumns() string {
	return "id, footballer_id, to_char(created_at, 'YYYY-MM-DD') AS created_at, " +
		strings.Join(r.columns, ", ")
}

// ByDate returns the single entry for a footballer on a calendar date.
func (r *PostgresRepository[R, P]) ByDate(ctx context.Context, footballerID int64, date string) (*R, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE footballer_id = $1 AND created_at = $2::date`,
		r.selectColumns(), r.table,
	)

	rows, err := r.pool.Query(ctx, query, footballerID, date)
	if err != nil {
		return nil, fmt.Errorf("querying %s entry: %w", r.table, err)
	}

	rec, err := pgx.CollectOneRow(rows, pgx.RowToStructByNameLax[R])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("scanning %s entry: %w", r.table, err)
	}

	return &rec, nil
}

// Range returns entries ordered oldest first, optionally bounded by dates.
func (r *PostgresRepository[R, P]) Range(ctx context.Context, footballerID int64, start, end string) ([]R, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE footballer_id = $1`, r.selectColumns(), r.table)
	args := []any{footballerID}

	if start != "" {
		args = append(args, start)
		query += fmt.Sprintf(` AND created_at >= $%d::date`, len(args))
	}
	if end != "" {
		args = append(args, end)
		query += fmt.Sprintf(` AND created_at <= $%d::date`, len(args))
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s range: %w", r.table, err)
	}

	recs, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[R])
	if err != nil {
		return nil, fmt.Errorf("scanning %s rows: %w", r.table, err)
	}

	if recs == nil {
		recs = []R{}
	}
	return recs, nil
}

// History returns the most recent entries, newest first.
func (r *PostgresRepository[R, P]) History(ctx context.Context, footballerID int64, limit int) ([]R, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE footballer_id = $1 ORDER BY created_at DESC LIMIT $2`,
		r.selectColumns(), r.table,
	)

	rows, err := r.pool.Query(ctx, query, footballerID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying %s history: %w", r.table, err)
	}

	recs, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[R])
	if err != nil {
		return nil, fmt.Errorf("scanning %s rows: %w", r.table, err)
	}

	if recs == nil {
		recs = []R{}
	}
	return recs, nil
}

// Insert stores a new entry, filling in its id.
func (r *PostgresRepository[R, P]) Insert(ctx context.Context, rec *R) error {
	e := P(rec).Header()

	placeholders := make([]string, 0, len(r.columns))
	for i := range r.columns {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+3))
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (footballer_id, created_at, %s) VALUES ($1, $2::date, %s) RETURNING id`,
		r.table, strings.Join(r.columns, ", "), strings.Join(placeholders, ", "),
	)

	args := append([]any{e.FootballerID, e.CreatedAt}, r.values(rec)...)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("inserting %s entry: %w", r.table, err)
	}

	return nil
}

// Update overwrites the metric columns of an existing entry.
func (r *PostgresRepository[R, P]) Update(ctx context.Context, entryID int64, rec *R) error {
	assignments := make([]string, 0, len(r.columns))
	for i, col := range r.columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+2))
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $1`, r.table, strings.Join(assignments, ", "))

	args := append([]any{entryID}, r.values(rec)...)
	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating %s entry: %w", r.table, err)
	}
	if result.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry by id.
func (r *PostgresRepository[R, P]) Delete(ctx context.Context, entryID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	result, err := r.pool.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("deleting %s entry: %w", r.table, err)
	}
	if result.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}
