package response

import (
	"time"

	"quickstart-api/internal/data/entity"
)

type AuthResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	IsStaff   bool      `json:"is_staff"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	return AuthResponse{
		UserID:    user.ID,
		Username:  user.Username,
		IsStaff:   user.IsStaff,
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
	}
}
