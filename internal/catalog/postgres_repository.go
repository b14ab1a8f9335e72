package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// ListLeagues retrieves every league ordered by name.
func (r *PostgresRepository) ListLeagues(ctx context.Context) ([]League, error) {
	query := `
		SELECT league_id, league_name, league_logo_path
		FROM leagues
		ORDER BY league_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing leagues: %w", err)
	}
	defer rows.Close()

	var leagues []League
	for rows.Next() {
		var l League
		if err := rows.Scan(&l.LeagueID, &l.LeagueName, &l.LeagueLogoPath); err != nil {
			return nil, fmt.Errorf("scanning league row: %w", err)
		}
		leagues = append(leagues, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating league rows: %w", err)
	}

	if leagues == nil {
		leagues = []League{}
	}

	return leagues, nil
}

// TeamsByLeague retrieves all teams in a league ordered by name.
func (r *PostgresRepository) TeamsByLeague(ctx context.Context, leagueID string) ([]Team, error) {
	query := `
		SELECT team_id, team_name, img_path, league_id
		FROM football_teams
		WHERE league_id = $1
		ORDER BY team_name ASC`

	rows, err := r.pool.Query(ctx, query, leagueID)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.TeamID, &t.TeamName, &t.ImgPath, &t.LeagueID); err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	if teams == nil {
		teams = []Team{}
	}

	return teams, nil
}

// TeamByID retrieves a single team.
func (r *PostgresRepository) TeamByID(ctx context.Context, teamID int64) (*Team, error) {
	query := `
		SELECT team_id, team_name, img_path, league_id
		FROM football_teams
		WHERE team_id = $1`

	var t Team
	err := r.pool.QueryRow(ctx, query, teamID).Scan(&t.TeamID, &t.TeamName, &t.ImgPath, &t.LeagueID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// FootballersByTeam retrieves a team's roster ordered by jersey number.
func (r *PostgresRepository) FootballersByTeam(ctx context.Context, teamID int64) ([]Footballer, error) {
	query := `
		SELECT footballer_id, footballer_name, footballer_img_path, position,
		       nationality_img_path, to_char(birthday, 'DD FMMonth YYYY'), age,
		       height, trikot_num, feet, market_value, team_id
		FROM footballers
		WHERE team_id = $1
		ORDER BY trikot_num ASC NULLS LAST, footballer_name ASC`

	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing footballers: %w", err)
	}
	defer rows.Close()

	var footballers []Footballer
	for rows.Next() {
		var f Footballer
		err := rows.Scan(
			&f.FootballerID, &f.FootballerName, &f.FootballerImgPath, &f.Position,
			&f.NationalityImgPath, &f.Birthday, &f.Age,
			&f.Height, &f.TrikotNum, &f.Feet, &f.MarketValue, &f.TeamID,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning footballer row: %w", err)
		}
		footballers = append(footballers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating footballer rows: %w", err)
	}

	if footballers == nil {
		footballers = []Footballer{}
	}

	return footballers, nil
}

// FootballerByID retrieves a single footballer.
func (r *PostgresRepository) FootballerByID(ctx context.Context, footballerID int64) (*Footballer, error) {
	query := `
		SELECT footballer_id, footballer_name, footballer_img_path, position,
		       nationality_img_path, to_char(birthday, 'DD FMMonth YYYY'), age,
		       height, trikot_num, feet, market_value, team_id
		FROM footballers
		WHERE footballer_id = $1`

	var f Footballer
	err := r.pool.QueryRow(ctx, query, footballerID).Scan(
		&f.FootballerID, &f.FootballerName, &f.FootballerImgPath, &f.Position,
		&f.NationalityImgPath, &f.Birthday, &f.Age,
		&f.Height, &f.TrikotNum, &f.Feet, &f.MarketValue, &f.TeamID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFootballerNotFound
		}
		return nil, fmt.Errorf("querying footballer: %w", err)
	}

	return &f, nil
}
