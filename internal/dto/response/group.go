package response

import "quickstart-api/internal/data/entity"

type GroupResponse struct {
	ID   int64  `json:"id"`
	URL  string `json:"url,omitempty"`
	Name string `json:"name"`
}

func GroupToResponse(group *entity.Group) GroupResponse {
	return GroupResponse{
		ID:   group.ID,
		Name: group.Name,
	}
}
