package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickstart-api/internal/data/entity"
	"quickstart-api/internal/data/repository"
	"quickstart-api/internal/dto/request"
	"quickstart-api/internal/dto/response"
	"quickstart-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}

// ClientInfo describes where a login came from; it is stored on the session.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type authService struct {
	repo   *repository.Repository
	expiry time.Duration
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config utils.SessionConfig,
	log *zap.Logger,
) AuthService {
	expiry := time.Duration(config.ExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	return &authService{
		repo:   repo,
		expiry: expiry,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !user.HasUsablePassword() || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Failed login attempt", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.Int64("user_id", user.ID))
		return nil, ErrInactive
	}

	session, err := s.createSession(ctx, user.ID, client)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, session.CreatedAt); err != nil {
		s.log.Warn("Failed to record last login", zap.Error(err), zap.Int64("user_id", user.ID))
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	tokenUUID, err := uuid.Parse(token)
	if err != nil {
		return fieldError("token", "Invalid token format")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("session: %w", ErrNotFound)
		}
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

// PurgeExpiredSessions removes sessions that are long past expiry.
func (s *authService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	removed, err := s.repo.Session.CleanExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		s.log.Info("Expired sessions purged", zap.Int64("removed", removed))
	}
	return removed, nil
}

func (s *authService) createSession(ctx context.Context, userID int64, client ClientInfo) (*entity.Session, error) {
	now := time.Now().UTC()
	session := &entity.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     uuid.New(),
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}
	if client.UserAgent != "" {
		session.UserAgent = &client.UserAgent
	}
	if client.IPAddress != "" {
		session.IPAddress = &client.IPAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}
