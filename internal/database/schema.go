package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema creates every table the API depends on. Metric tables carry a
// unique index on (footballer_id, created_at): at most one entry per player
// per calendar date.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	username VARCHAR(50) UNIQUE NOT NULL,
	firstname VARCHAR(50),
	lastname VARCHAR(50),
	email VARCHAR(50) UNIQUE NOT NULL,
	password VARCHAR(255) NOT NULL,
	role VARCHAR(25),
	club VARCHAR(100),
	team_id BIGINT,
	access_key VARCHAR(100),
	is_admin BOOLEAN NOT NULL DEFAULT FALSE,
	needs_password_change BOOLEAN NOT NULL DEFAULT FALSE,
	wrong_login_attempt INTEGER NOT NULL DEFAULT 0,
	login_attempt INTEGER NOT NULL DEFAULT 0,
	is_now_login VARCHAR(20) NOT NULL DEFAULT 'no',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS leagues (
	league_id VARCHAR(10) PRIMARY KEY,
	league_name VARCHAR(100) NOT NULL,
	league_logo_path VARCHAR(250),
	country VARCHAR(50)
);

CREATE TABLE IF NOT EXISTS football_teams (
	team_id BIGSERIAL PRIMARY KEY,
	league_id VARCHAR(10) NOT NULL REFERENCES leagues(league_id),
	team_name VARCHAR(100) NOT NULL,
	img_path VARCHAR(250)
);

CREATE TABLE IF NOT EXISTS footballers (
	footballer_id BIGSERIAL PRIMARY KEY,
	team_id BIGINT NOT NULL REFERENCES football_teams(team_id),
	league_id VARCHAR(10) NOT NULL REFERENCES leagues(league_id),
	footballer_name VARCHAR(100) NOT NULL,
	footballer_img_path VARCHAR(250),
	nationality_img_path VARCHAR(250),
	position VARCHAR(50),
	birthday DATE,
	age INTEGER,
	height VARCHAR(10),
	trikot_num VARCHAR(5),
	feet VARCHAR(10),
	market_value VARCHAR(20)
);

CREATE TABLE IF NOT EXISTS physical (
	id BIGSERIAL PRIMARY KEY,
	footballer_id BIGINT NOT NULL REFERENCES footballers(footballer_id),
	muscle_mass DOUBLE PRECISION,
	muscle_strength DOUBLE PRECISION,
	muscle_endurance DOUBLE PRECISION,
	flexibility DOUBLE PRECISION,
	weight DOUBLE PRECISION,
	body_fat_percentage DOUBLE PRECISION,
	heights VARCHAR(10),
	thigh_circumference DOUBLE PRECISION,
	shoulder_circumference DOUBLE PRECISION,
	arm_circumference DOUBLE PRECISION,
	chest_circumference DOUBLE PRECISION,
	back_circumference DOUBLE PRECISION,
	waist_circumference DOUBLE PRECISION,
	leg_circumference DOUBLE PRECISION,
	calf_circumference DOUBLE PRECISION,
	created_at DATE NOT NULL DEFAULT CURRENT_DATE
);
CREATE UNIQUE INDEX IF NOT EXISTS physical_footballer_date_idx
	ON physical (footballer_id, created_at);

CREATE TABLE IF NOT EXISTS conditional (
	id BIGSERIAL PRIMARY KEY,
	footballer_id BIGINT NOT NULL REFERENCES footballers(footballer_id),
	vo2_max DOUBLE PRECISION,
	lactate_levels DOUBLE PRECISION,
	training_intensity DOUBLE PRECISION,
	recovery_times DOUBLE PRECISION,
	current_vo2_max DOUBLE PRECISION,
	current_lactate_levels DOUBLE PRECISION,
	current_muscle_strength DOUBLE PRECISION,
	target_vo2_max DOUBLE PRECISION,
	target_lactate_level DOUBLE PRECISION,
	target_muscle_strength DOUBLE PRECISION,
	created_at DATE NOT NULL DEFAULT CURRENT_DATE
);
CREATE UNIQUE INDEX IF NOT EXISTS conditional_footballer_date_idx
	ON conditional (footballer_id, created_at);

CREATE TABLE IF NOT EXISTS endurance (
	id BIGSERIAL PRIMARY KEY,
	footballer_id BIGINT NOT NULL REFERENCES footballers(footballer_id),
	running_distance DOUBLE PRECISION,
	average_speed DOUBLE PRECISION,
	heart_rate INTEGER,
	peak_heart_rate INTEGER,
	training_intensity DOUBLE PRECISION,
	session INTEGER,
	created_at DATE NOT NULL DEFAULT CURRENT_DATE
);
CREATE UNIQUE INDEX IF NOT EXISTS endurance_footballer_date_idx
	ON endurance (footballer_id, created_at);
`

// EnsureSchema creates missing tables and indexes at startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
