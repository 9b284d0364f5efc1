package wire

import (
	"quickstart-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Movies are open to anonymous clients.
func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler) {
	r.Route("/movies", func(r chi.Router) {
		r.Get("/", movieHandler.GetMovies)
		r.Post("/", movieHandler.CreateMovie)
		r.Get("/{id}", movieHandler.GetMovieByID)
		r.Put("/{id}", movieHandler.ReplaceMovie)
		r.Patch("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)
	})
}
