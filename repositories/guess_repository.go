package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/lib/pq"
)

var ErrGuessNotFound = errors.New("guess not found")

type GuessRepository interface {
	// Upsert creates or replaces the guess for the (user, match) pair.
	// It accepts an executor so the PENDING check and the write can share
	// a transaction.
	Upsert(ctx context.Context, exec SQLExecutor, guess *models.Guess) error
	Delete(ctx context.Context, exec SQLExecutor, userID, matchID int) error
	ListAll(ctx context.Context) ([]*models.Guess, error)
	// ListFinished returns guesses whose match is FINISHED, newest match
	// first, with user nickname and both teams populated. A nil userIDs
	// keeps every user; a non-nil slice restricts to those users.
	ListFinished(ctx context.Context, userIDs []int) ([]*models.Guess, error)
}

type postgresGuessRepository struct {
	db *sql.DB
}

func NewPostgresGuessRepository(db *sql.DB) GuessRepository {
	return &postgresGuessRepository{db: db}
}

func (r *postgresGuessRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresGuessRepository) Upsert(ctx context.Context, exec SQLExecutor, guess *models.Guess) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO guesses (user_id, match_id, score_home, score_away, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, match_id) DO UPDATE
			SET score_home = EXCLUDED.score_home,
			    score_away = EXCLUDED.score_away,
			    updated_at = NOW()
		RETURNING id, updated_at`
	return executor.QueryRowContext(ctx, query,
		guess.UserID, guess.MatchID, guess.ScoreHome, guess.ScoreAway,
	).Scan(&guess.ID, &guess.UpdatedAt)
}

func (r *postgresGuessRepository) Delete(ctx context.Context, exec SQLExecutor, userID, matchID int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx,
		`DELETE FROM guesses WHERE user_id = $1 AND match_id = $2`, userID, matchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGuessNotFound)
}

const guessColumns = `
	g.id, g.user_id, g.match_id, g.score_home, g.score_away, g.updated_at,
	u.id, u.nickname, u.role, u.password_hash, u.created_at,
	m.id, m.home_team_id, m.away_team_id, m.date, m.status, m.score_home, m.score_away, m.round,
	th.id, th.name, th.short_name, th.logo_key, th.created_at,
	ta.id, ta.name, ta.short_name, ta.logo_key, ta.created_at`

const guessJoins = `
	FROM guesses g
	JOIN users u ON u.id = g.user_id
	JOIN matches m ON m.id = g.match_id
	JOIN teams th ON th.id = m.home_team_id
	JOIN teams ta ON ta.id = m.away_team_id`

func (r *postgresGuessRepository) scanGuess(rows *sql.Rows) (*models.Guess, error) {
	var g models.Guess
	var u models.User
	var m models.Match
	var home, away models.Team
	err := rows.Scan(
		&g.ID, &g.UserID, &g.MatchID, &g.ScoreHome, &g.ScoreAway, &g.UpdatedAt,
		&u.ID, &u.Nickname, &u.Role, &u.PasswordHash, &u.CreatedAt,
		&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.Date, &m.Status, &m.ScoreHome, &m.ScoreAway, &m.Round,
		&home.ID, &home.Name, &home.ShortName, &home.LogoKey, &home.CreatedAt,
		&away.ID, &away.Name, &away.ShortName, &away.LogoKey, &away.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	m.HomeTeam = &home
	m.AwayTeam = &away
	g.User = &u
	g.Match = &m
	return &g, nil
}

func (r *postgresGuessRepository) queryGuesses(ctx context.Context, query string, args ...interface{}) ([]*models.Guess, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	guesses := make([]*models.Guess, 0)
	for rows.Next() {
		g, errScan := r.scanGuess(rows)
		if errScan != nil {
			return nil, errScan
		}
		guesses = append(guesses, g)
	}
	return guesses, rows.Err()
}

func (r *postgresGuessRepository) ListAll(ctx context.Context) ([]*models.Guess, error) {
	query := `SELECT` + guessColumns + guessJoins + ` ORDER BY m.date ASC, u.nickname ASC`
	return r.queryGuesses(ctx, query)
}

func (r *postgresGuessRepository) ListFinished(ctx context.Context, userIDs []int) ([]*models.Guess, error) {
	query := `SELECT` + guessColumns + guessJoins + ` WHERE m.status = $1`
	args := []interface{}{models.MatchStatusFinished}
	if userIDs != nil {
		query += ` AND g.user_id = ANY($2)`
		args = append(args, pq.Array(userIDs))
	}
	query += ` ORDER BY m.date DESC, u.nickname ASC`
	return r.queryGuesses(ctx, query, args...)
}
