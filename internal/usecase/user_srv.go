package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"quickstart-api/internal/data/entity"
	"quickstart-api/internal/data/repository"
	"quickstart-api/internal/dto/request"
	"quickstart-api/internal/dto/response"
	"quickstart-api/pkg/utils"

	"go.uber.org/zap"
)

const (
	msgUsernameTaken = "A user with that username already exists"
	msgUnknownGroup  = "Unknown group id"
)

type UserService interface {
	GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, id int64) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error)
	ReplaceUser(ctx context.Context, id int64, req *request.UserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, id int64, req *request.UserUpdateRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, id int64) error
}

type userService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	log      *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		users:    repo.User,
		sessions: repo.Session,
		log:      log.With(zap.String("service", "user")),
	}
}

// GetUsers lists users ordered by date joined, newest first.
func (us *userService) GetUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	users, err := us.users.FindAll(ctx, req.Offset(), req.Limit())
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := us.users.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	data := make([]response.UserResponse, len(users))
	for i, user := range users {
		data[i] = response.UserToResponse(user)
	}

	us.log.Debug("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (us *userService) GetUserByID(ctx context.Context, id int64) (*response.UserResponse, error) {
	user, err := us.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.UserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user := &entity.User{
		IsActive:   true,
		DateJoined: time.Now().UTC(),
	}
	if err := us.applyUserRequest(user, req); err != nil {
		return nil, err
	}

	if err := us.users.Create(ctx, user); err != nil {
		return nil, us.writeError(err, "create user")
	}

	us.log.Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// ReplaceUser validates every required field. Optional fields and the
// password are kept when the request does not carry them.
func (us *userService) ReplaceUser(ctx context.Context, id int64, req *request.UserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := us.find(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *user

	if err := us.applyUserRequest(user, req); err != nil {
		return nil, err
	}

	return us.save(ctx, &before, user)
}

func (us *userService) UpdateUser(ctx context.Context, id int64, req *request.UserUpdateRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := us.find(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *user

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Groups != nil {
		user.GroupIDs = uniqueGroupIDs(*req.Groups)
	}
	if req.Password != nil {
		if err := us.setPassword(user, *req.Password); err != nil {
			return nil, err
		}
	}

	return us.save(ctx, &before, user)
}

func (us *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := us.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("user", id)
		}
		return fmt.Errorf("delete user: %w", err)
	}

	us.log.Info("User deleted", zap.Int64("user_id", id))
	return nil
}

func (us *userService) find(ctx context.Context, id int64) (*entity.User, error) {
	user, err := us.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	if user == nil {
		return nil, notFound("user", id)
	}
	return user, nil
}

// save persists user and revokes its sessions when it lost access or
// changed password.
func (us *userService) save(ctx context.Context, before, user *entity.User) (*response.UserResponse, error) {
	if err := us.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("user", user.ID)
		}
		return nil, us.writeError(err, "update user")
	}

	if (before.IsActive && !user.IsActive) || before.PasswordHash != user.PasswordHash {
		if err := us.sessions.RevokeAllUserSessions(ctx, user.ID); err != nil {
			us.log.Warn("Failed to revoke sessions after user update",
				zap.Error(err),
				zap.Int64("user_id", user.ID),
			)
		}
	}

	us.log.Info("User updated",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) applyUserRequest(user *entity.User, req *request.UserRequest) error {
	user.Username = req.Username
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsStaff != nil {
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Groups != nil {
		user.GroupIDs = uniqueGroupIDs(req.Groups)
	}

	if req.Password != nil {
		return us.setPassword(user, *req.Password)
	}
	return nil
}

// uniqueGroupIDs sorts ids and drops repeats, matching what the membership
// table stores.
func uniqueGroupIDs(ids []int64) []int64 {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

func (us *userService) setPassword(user *entity.User, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	return nil
}

func (us *userService) writeError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		return fieldError("username", msgUsernameTaken)
	case errors.Is(err, repository.ErrInvalidReference):
		return fieldError("groups", msgUnknownGroup)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
