package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/GabrielDani/futebol-palpites-backend/models"
	"github.com/lib/pq"
)

var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrGroupMemberConflict = errors.New("user is already a member of the group")
	ErrGroupMemberNotFound = errors.New("user is not a member of the group")
)

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	// ListVisible returns the groups a user can see: public ones plus the
	// ones they belong to, with member counts.
	ListVisible(ctx context.Context, userID int) ([]*models.Group, error)
	AddMember(ctx context.Context, groupID, userID int) error
	RemoveMember(ctx context.Context, groupID, userID int) error
	ListMemberIDs(ctx context.Context, groupID int) ([]int, error)
	Delete(ctx context.Context, id int) error
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

// Create inserts the group and enrolls the creator as its first member,
// atomically.
func (r *postgresGroupRepository) Create(ctx context.Context, group *models.Group) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO groups (name, is_public, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	if err = tx.QueryRowContext(ctx, query, group.Name, group.IsPublic, group.CreatedBy).
		Scan(&group.ID, &group.CreatedAt); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)`,
		group.CreatedBy, group.ID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `
		SELECT g.id, g.name, g.is_public, g.created_by, g.created_at,
		       (SELECT COUNT(*) FROM user_groups ug WHERE ug.group_id = g.id)
		FROM groups g
		WHERE g.id = $1`
	var g models.Group
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&g.ID, &g.Name, &g.IsPublic, &g.CreatedBy, &g.CreatedAt, &g.MemberCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGroupRepository) ListVisible(ctx context.Context, userID int) ([]*models.Group, error) {
	query := `
		SELECT g.id, g.name, g.is_public, g.created_by, g.created_at,
		       (SELECT COUNT(*) FROM user_groups ug WHERE ug.group_id = g.id)
		FROM groups g
		WHERE g.is_public
		   OR EXISTS (SELECT 1 FROM user_groups ug WHERE ug.group_id = g.id AND ug.user_id = $1)
		ORDER BY g.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*models.Group, 0)
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.IsPublic, &g.CreatedBy, &g.CreatedAt, &g.MemberCount); err != nil {
			return nil, err
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

func (r *postgresGroupRepository) AddMember(ctx context.Context, groupID, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_groups (user_id, group_id) VALUES ($1, $2)`, userID, groupID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrGroupMemberConflict
		}
		return err
	}
	return nil
}

func (r *postgresGroupRepository) RemoveMember(ctx context.Context, groupID, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_groups WHERE user_id = $1 AND group_id = $2`, userID, groupID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGroupMemberNotFound)
}

func (r *postgresGroupRepository) ListMemberIDs(ctx context.Context, groupID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM user_groups WHERE group_id = $1 ORDER BY user_id ASC`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete removes the group and its memberships atomically.
func (r *postgresGroupRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_groups WHERE group_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if err = checkAffectedRows(result, ErrGroupNotFound); err != nil {
		return err
	}

	return tx.Commit()
}
