package request

// UserRequest is used by create and PUT. Optional fields left out of a PUT
// keep their stored values; a nil Groups keeps the memberships, an empty list
// clears them.
type UserRequest struct {
	Username  string  `json:"username" validate:"required,max=150,username"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email,max=254"`
	FirstName *string `json:"first_name,omitempty" validate:"omitnil,max=150"`
	LastName  *string `json:"last_name,omitempty" validate:"omitnil,max=150"`
	Password  *string `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
	IsStaff   *bool   `json:"is_staff,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	Groups    []int64 `json:"groups" validate:"omitempty,dive,gt=0"`
}

type UserUpdateRequest struct {
	Username  *string  `json:"username,omitempty" validate:"omitnil,min=1,max=150,username"`
	Email     *string  `json:"email,omitempty" validate:"omitempty,email,max=254"`
	FirstName *string  `json:"first_name,omitempty" validate:"omitempty,max=150"`
	LastName  *string  `json:"last_name,omitempty" validate:"omitempty,max=150"`
	Password  *string  `json:"password,omitempty" validate:"omitempty,min=8,max=128"`
	IsStaff   *bool    `json:"is_staff,omitempty"`
	IsActive  *bool    `json:"is_active,omitempty"`
	Groups    *[]int64 `json:"groups,omitempty" validate:"omitempty,dive,gt=0"`
}
