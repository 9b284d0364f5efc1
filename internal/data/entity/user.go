package entity

import "time"

type User struct {
	Base
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	PasswordHash string     `db:"password"`
	IsStaff      bool       `db:"is_staff"`
	IsActive     bool       `db:"is_active"`
	DateJoined   time.Time  `db:"date_joined"`
	LastLogin    *time.Time `db:"last_login"`

	// GroupIDs is loaded from auth_user_groups, not a column.
	GroupIDs []int64 `db:"-"`
}

// HasUsablePassword reports whether the user can log in with a password.
func (u *User) HasUsablePassword() bool {
	return u.PasswordHash != ""
}
