package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/GabrielDani/futebol-palpites-backend/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	GetStatusForUpdate(ctx context.Context, exec SQLExecutor, id int) (models.MatchStatus, error)
	List(ctx context.Context) ([]*models.Match, error)
	ListByStatus(ctx context.Context, status models.MatchStatus) ([]*models.Match, error)
	ListByRound(ctx context.Context, round int) ([]*models.Match, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Match, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*models.Match, error)
	CountByDateRange(ctx context.Context, from, to time.Time) (int, error)
	FindRoundConflict(ctx context.Context, round, homeTeamID, awayTeamID, excludeID int) (bool, error)
	Update(ctx context.Context, match *models.Match) error
	MarkOngoingByKickoff(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `
	m.id, m.home_team_id, m.away_team_id, m.date, m.status, m.score_home, m.score_away, m.round,
	th.id, th.name, th.short_name, th.logo_key, th.created_at,
	ta.id, ta.name, ta.short_name, ta.logo_key, ta.created_at`

const matchJoins = `
	FROM matches m
	JOIN teams th ON th.id = m.home_team_id
	JOIN teams ta ON ta.id = m.away_team_id`

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	var home, away models.Team
	err := row.Scan(
		&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.Date, &m.Status, &m.ScoreHome, &m.ScoreAway, &m.Round,
		&home.ID, &home.Name, &home.ShortName, &home.LogoKey, &home.CreatedAt,
		&away.ID, &away.Name, &away.ShortName, &away.LogoKey, &away.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	m.HomeTeam = &home
	m.AwayTeam = &away
	return &m, nil
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (home_team_id, away_team_id, date, status, score_home, score_away, round)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		match.HomeTeamID, match.AwayTeamID, match.Date, match.Status,
		match.ScoreHome, match.ScoreAway, match.Round,
	).Scan(&match.ID)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `SELECT` + matchColumns + matchJoins + ` WHERE m.id = $1`
	return r.scanMatch(executor.QueryRowContext(ctx, query, id))
}

// GetStatusForUpdate reads the match status while holding the row lock, so
// concurrent status transitions wait until the caller's transaction ends.
func (r *postgresMatchRepository) GetStatusForUpdate(ctx context.Context, exec SQLExecutor, id int) (models.MatchStatus, error) {
	executor := r.getExecutor(exec)
	var status models.MatchStatus
	err := executor.QueryRowContext(ctx, `SELECT status FROM matches WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrMatchNotFound
		}
		return "", err
	}
	return status, nil
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + ` ORDER BY m.date ASC`
	return r.queryMatches(ctx, query)
}

func (r *postgresMatchRepository) ListByStatus(ctx context.Context, status models.MatchStatus) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + ` WHERE m.status = $1 ORDER BY m.date ASC`
	return r.queryMatches(ctx, query, status)
}

func (r *postgresMatchRepository) ListByRound(ctx context.Context, round int) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + ` WHERE m.round = $1 ORDER BY m.date ASC`
	return r.queryMatches(ctx, query, round)
}

func (r *postgresMatchRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + ` WHERE m.home_team_id = $1 OR m.away_team_id = $1 ORDER BY m.date ASC`
	return r.queryMatches(ctx, query, teamID)
}

func (r *postgresMatchRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]*models.Match, error) {
	query := `SELECT` + matchColumns + matchJoins + ` WHERE m.date >= $1 ORDER BY m.date ASC LIMIT $2`
	return r.queryMatches(ctx, query, from, limit)
}

func (r *postgresMatchRepository) CountByDateRange(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM matches WHERE date >= $1 AND date <= $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&count)
	return count, err
}

// FindRoundConflict reports whether either team already has a match in the
// given round, ignoring the match excludeID (0 to exclude nothing).
func (r *postgresMatchRepository) FindRoundConflict(ctx context.Context, round, homeTeamID, awayTeamID, excludeID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE round = $1
			  AND (home_team_id IN ($2, $3) OR away_team_id IN ($2, $3))
			  AND id <> $4
		)`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, round, homeTeamID, awayTeamID, excludeID).Scan(&exists)
	return exists, err
}

func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			home_team_id = $1, away_team_id = $2, date = $3, status = $4,
			score_home = $5, score_away = $6, round = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		match.HomeTeamID, match.AwayTeamID, match.Date, match.Status,
		match.ScoreHome, match.ScoreAway, match.Round, match.ID,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// MarkOngoingByKickoff flips score-less PENDING matches whose kickoff has
// passed to ONGOING. Used by the background status scheduler.
func (r *postgresMatchRepository) MarkOngoingByKickoff(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE matches SET status = $1
		WHERE status = $2 AND date <= $3 AND score_home IS NULL AND score_away IS NULL`
	result, err := r.db.ExecContext(ctx, query, models.MatchStatusOngoing, models.MatchStatusPending, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
