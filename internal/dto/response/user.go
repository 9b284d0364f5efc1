package response

import (
	"time"

	"quickstart-api/internal/data/entity"
)

// UserResponse never carries the password hash.
type UserResponse struct {
	ID         int64      `json:"id"`
	URL        string     `json:"url,omitempty"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	IsStaff    bool       `json:"is_staff"`
	IsActive   bool       `json:"is_active"`
	DateJoined time.Time  `json:"date_joined"`
	LastLogin  *time.Time `json:"last_login"`
	Groups     []int64    `json:"groups"`
}

func UserToResponse(user *entity.User) UserResponse {
	groups := user.GroupIDs
	if groups == nil {
		groups = []int64{}
	}

	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		IsStaff:    user.IsStaff,
		IsActive:   user.IsActive,
		DateJoined: user.DateJoined,
		LastLogin:  user.LastLogin,
		Groups:     groups,
	}
}
