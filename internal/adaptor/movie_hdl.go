package adaptor

import (
	"net/http"

	"quickstart-api/internal/dto/request"
	"quickstart-api/internal/dto/response"
	"quickstart-api/internal/usecase"
	"quickstart-api/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	links   linker
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, links linker, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		links:   links,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /movies/
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.service.GetMovies(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get movies")
		return
	}

	for i := range movies.Data {
		h.link(r, &movies.Data[i])
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetMovieByID handles GET /movies/{id}/
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie by ID")
		return
	}

	h.link(r, movie)
	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}

// CreateMovie handles POST /movies/
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	h.link(r, movie)
	utils.ResponseCreated(w, "Movie created successfully", movie)
}

// ReplaceMovie handles PUT /movies/{id}/
func (h *MovieHandler) ReplaceMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	var req request.MovieRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.service.ReplaceMovie(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "replace movie")
		return
	}

	h.link(r, movie)
	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// UpdateMovie handles PATCH /movies/{id}/
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	var req request.MovieUpdateRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	h.link(r, movie)
	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /movies/{id}/
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	if err := h.service.DeleteMovie(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}

func (h *MovieHandler) link(r *http.Request, movie *response.MovieResponse) {
	movie.URL = h.links.detail(r, prefixMovies, movie.ID)
}
