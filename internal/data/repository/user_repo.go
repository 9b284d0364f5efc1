package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickstart-api/internal/data/entity"
	"quickstart-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindAll(ctx context.Context, offset, limit int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, username, email, first_name, last_name, password,
		       is_staff, is_active, date_joined, last_login`

func scanUser(row pgx.Row, user *entity.User) error {
	return row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.IsStaff,
		&user.IsActive,
		&user.DateJoined,
		&user.LastLogin,
	)
}

// Create inserts the user and its group memberships in one transaction.
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create user: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO auth_users (username, email, first_name, last_name, password,
		                        is_staff, is_active, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.IsStaff,
		user.IsActive,
		user.DateJoined,
	).Scan(&user.ID)
	if err != nil {
		return ur.writeError("create", user, err)
	}

	if err := insertMemberships(ctx, tx, user.ID, user.GroupIDs); err != nil {
		return ur.writeError("create", user, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create user %s: %w", user.Username, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM auth_users WHERE id = $1`
	return ur.findOne(ctx, query, id, zap.Int64("user_id", id))
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM auth_users WHERE username = $1`
	return ur.findOne(ctx, query, username, zap.String("username", username))
}

func (ur *userRepository) findOne(ctx context.Context, query string, arg any, field zap.Field) (*entity.User, error) {
	var user entity.User
	err := scanUser(ur.db.QueryRow(ctx, query, arg), &user)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user", zap.Error(err), field)
		return nil, fmt.Errorf("find user: %w", err)
	}

	memberships, err := ur.groupIDs(ctx, []int64{user.ID})
	if err != nil {
		return nil, err
	}
	user.GroupIDs = memberships[user.ID]

	return &user, nil
}

// FindAll lists users newest first.
func (ur *userRepository) FindAll(ctx context.Context, offset, limit int) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM auth_users
		ORDER BY date_joined DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	users := make([]*entity.User, 0, limit)
	ids := make([]int64, 0, limit)
	for rows.Next() {
		var user entity.User
		if err := scanUser(rows, &user); err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, &user)
		ids = append(ids, user.ID)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	if len(ids) == 0 {
		return users, nil
	}

	memberships, err := ur.groupIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		user.GroupIDs = memberships[user.ID]
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := ur.db.QueryRow(ctx, `SELECT COUNT(*) FROM auth_users`).Scan(&count); err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}
	return count, nil
}

// Update writes every column and replaces the group memberships.
func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	tx, err := ur.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin update user: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE auth_users
		SET username = $2, email = $3, first_name = $4, last_name = $5,
		    password = $6, is_staff = $7, is_active = $8
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.IsStaff,
		user.IsActive,
	)
	if err != nil {
		return ur.writeError("update", user, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("update user %d: %w", user.ID, ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM auth_user_groups WHERE user_id = $1`, user.ID); err != nil {
		return ur.writeError("update", user, err)
	}
	if err := insertMemberships(ctx, tx, user.ID, user.GroupIDs); err != nil {
		return ur.writeError("update", user, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update user %d: %w", user.ID, err)
	}

	return nil
}

func (ur *userRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	if _, err := ur.db.Exec(ctx, `UPDATE auth_users SET last_login = $2 WHERE id = $1`, id, at); err != nil {
		ur.log.Error("Failed to update last login", zap.Error(err), zap.Int64("user_id", id))
		return fmt.Errorf("update last login %d: %w", id, err)
	}
	return nil
}

// Delete removes the user; memberships and sessions cascade.
func (ur *userRepository) Delete(ctx context.Context, id int64) error {
	result, err := ur.db.Exec(ctx, `DELETE FROM auth_users WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.Int64("user_id", id),
		)
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete user %d: %w", id, ErrNotFound)
	}

	ur.log.Info("User deleted", zap.Int64("user_id", id))
	return nil
}

func (ur *userRepository) groupIDs(ctx context.Context, userIDs []int64) (map[int64][]int64, error) {
	query := `
		SELECT user_id, group_id
		FROM auth_user_groups
		WHERE user_id = ANY($1)
		ORDER BY group_id
	`

	rows, err := ur.db.Query(ctx, query, userIDs)
	if err != nil {
		ur.log.Error("Failed to load user groups", zap.Error(err))
		return nil, fmt.Errorf("load user groups: %w", err)
	}
	defer rows.Close()

	memberships := make(map[int64][]int64, len(userIDs))
	for rows.Next() {
		var userID, groupID int64
		if err := rows.Scan(&userID, &groupID); err != nil {
			return nil, fmt.Errorf("scan user group: %w", err)
		}
		memberships[userID] = append(memberships[userID], groupID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user groups: %w", err)
	}

	return memberships, nil
}

func (ur *userRepository) writeError(op string, user *entity.User, err error) error {
	err = translate(err)
	if !errors.Is(err, ErrDuplicate) && !errors.Is(err, ErrInvalidReference) {
		ur.log.Error("Failed to "+op+" user",
			zap.Error(err),
			zap.Int64("user_id", user.ID),
			zap.String("username", user.Username),
		)
	}
	return fmt.Errorf("%s user %s: %w", op, user.Username, err)
}

func insertMemberships(ctx context.Context, tx pgx.Tx, userID int64, groupIDs []int64) error {
	if len(groupIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO auth_user_groups (user_id, group_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`
	_, err := tx.Exec(ctx, query, userID, groupIDs)
	return err
}
