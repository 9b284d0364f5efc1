package request

type GroupRequest struct {
	Name string `json:"name" validate:"required,max=150"`
}

type GroupUpdateRequest struct {
	Name *string `json:"name,omitempty" validate:"omitnil,min=1,max=150"`
}
