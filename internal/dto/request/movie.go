package request

import "time"

// MovieRequest is the full representation used by create and PUT.
type MovieRequest struct {
	Title         string     `json:"title" validate:"required,max=100"`
	PublishedDate *time.Time `json:"published_date" validate:"required"`
	Director      string     `json:"director" validate:"required,max=50"`
	UserScore     *float64   `json:"user_score,omitempty"`
}

// MovieUpdateRequest is used by PATCH; only fields present in the body change.
type MovieUpdateRequest struct {
	Title         *string    `json:"title,omitempty" validate:"omitnil,min=1,max=100"`
	PublishedDate *time.Time `json:"published_date,omitempty"`
	Director      *string    `json:"director,omitempty" validate:"omitnil,min=1,max=50"`
	UserScore     *float64   `json:"user_score,omitempty"`
}
