package response

import (
	"time"

	"quickstart-api/internal/data/entity"
)

type MovieResponse struct {
	ID            int64     `json:"id"`
	URL           string    `json:"url,omitempty"`
	Title         string    `json:"title"`
	PublishedDate time.Time `json:"published_date"`
	Director      string    `json:"director"`
	UserScore     float64   `json:"user_score"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		PublishedDate: movie.PublishedDate,
		Director:      movie.Director,
		UserScore:     movie.UserScore,
	}
}
