package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserNicknameConflict = errors.New("user nickname conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByIDs(ctx context.Context, ids []int) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (nickname, role, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Nickname, user.Role, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrUserNicknameConflict
		}
		return err
	}
	return nil
}

func (r *postgresUserRepository) scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Nickname, &u.Role, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT id, nickname, role, password_hash, created_at FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresUserRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	query := `SELECT id, nickname, role, password_hash, created_at FROM users WHERE nickname = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, nickname))
}

func (r *postgresUserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `SELECT id, nickname, role, password_hash, created_at FROM users ORDER BY nickname ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, errScan := r.scanUser(rows)
		if errScan != nil {
			return nil, errScan
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) ListByIDs(ctx context.Context, ids []int) ([]*models.User, error) {
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	query := `SELECT id, nickname, role, password_hash, created_at FROM users WHERE id = ANY($1) ORDER BY nickname ASC`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0, len(ids))
	for rows.Next() {
		u, errScan := r.scanUser(rows)
		if errScan != nil {
			return nil, errScan
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

func (r *postgresUserRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2`
	err := r.db.QueryRowContext(ctx, query, from, to).Scan(&count)
	return count, err
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET nickname = $1, password_hash = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, user.Nickname, user.PasswordHash, user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrUserNicknameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrUserNotFound)
}
