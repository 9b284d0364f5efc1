package repository

import (
	"context"
	"errors"
	"fmt"

	"quickstart-api/internal/data/entity"
	"quickstart-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GroupRepository interface {
	Create(ctx context.Context, group *entity.Group) error
	FindByID(ctx context.Context, id int64) (*entity.Group, error)
	FindAll(ctx context.Context, offset, limit int) ([]*entity.Group, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, group *entity.Group) error
	Delete(ctx context.Context, id int64) error
}

type groupRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGroupRepository(db database.PgxIface, log *zap.Logger) GroupRepository {
	return &groupRepository{
		db:  db,
		log: log.With(zap.String("repository", "group")),
	}
}

func (r *groupRepository) Create(ctx context.Context, group *entity.Group) error {
	query := `INSERT INTO auth_groups (name) VALUES ($1) RETURNING id`

	if err := r.db.QueryRow(ctx, query, group.Name).Scan(&group.ID); err != nil {
		err = translate(err)
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to create group",
				zap.Error(err),
				zap.String("name", group.Name),
			)
		}
		return fmt.Errorf("create group %q: %w", group.Name, err)
	}

	return nil
}

func (r *groupRepository) FindByID(ctx context.Context, id int64) (*entity.Group, error) {
	var group entity.Group
	err := r.db.QueryRow(ctx, `SELECT id, name FROM auth_groups WHERE id = $1`, id).Scan(
		&group.ID,
		&group.Name,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find group by ID",
			zap.Error(err),
			zap.Int64("group_id", id),
		)
		return nil, fmt.Errorf("find group %d: %w", id, err)
	}

	return &group, nil
}

func (r *groupRepository) FindAll(ctx context.Context, offset, limit int) ([]*entity.Group, error) {
	query := `
		SELECT id, name
		FROM auth_groups
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find all groups",
			zap.Error(err),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find groups: %w", err)
	}
	defer rows.Close()

	groups := make([]*entity.Group, 0, limit)
	for rows.Next() {
		var group entity.Group
		if err := rows.Scan(&group.ID, &group.Name); err != nil {
			r.log.Error("Failed to scan group row", zap.Error(err))
			return nil, fmt.Errorf("scan group: %w", err)
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group rows: %w", err)
	}

	return groups, nil
}

func (r *groupRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM auth_groups`).Scan(&total); err != nil {
		r.log.Error("Failed to count groups", zap.Error(err))
		return 0, fmt.Errorf("count groups: %w", err)
	}
	return total, nil
}

func (r *groupRepository) Update(ctx context.Context, group *entity.Group) error {
	result, err := r.db.Exec(ctx, `UPDATE auth_groups SET name = $2 WHERE id = $1`, group.ID, group.Name)
	if err != nil {
		err = translate(err)
		if !errors.Is(err, ErrDuplicate) {
			r.log.Error("Failed to update group",
				zap.Error(err),
				zap.Int64("group_id", group.ID),
			)
		}
		return fmt.Errorf("update group %d: %w", group.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update group %d: %w", group.ID, ErrNotFound)
	}

	return nil
}

// Delete removes the group. Memberships go with it through ON DELETE CASCADE.
func (r *groupRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM auth_groups WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete group",
			zap.Error(err),
			zap.Int64("group_id", id),
		)
		return fmt.Errorf("delete group %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete group %d: %w", id, ErrNotFound)
	}

	r.log.Info("Group deleted", zap.Int64("group_id", id))
	return nil
}
