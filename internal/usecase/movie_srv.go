package usecase

import (
	"context"
	"errors"
	"fmt"

	"quickstart-api/internal/data/entity"
	"quickstart-api/internal/data/repository"
	"quickstart-api/internal/dto/request"
	"quickstart-api/internal/dto/response"

	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, id int64) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	ReplaceMovie(ctx context.Context, id int64, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, id int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, id int64) error
}

type movieService struct {
	movies repository.MovieRepository
	log    *zap.Logger
}

func NewMovieService(movies repository.MovieRepository, log *zap.Logger) MovieService {
	return &movieService{
		movies: movies,
		log:    log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	movies, err := s.movies.FindAll(ctx, req.Offset(), req.Limit())
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.movies.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	data := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		data[i] = response.MovieToResponse(movie)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.Limit()),
	)

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, id int64) (*response.MovieResponse, error) {
	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		s.log.Debug("Create movie validation failed", zap.Error(err))
		return nil, err
	}

	movie := &entity.Movie{}
	applyMovieRequest(movie, req)

	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// ReplaceMovie validates every required field. An omitted user_score keeps
// the stored value.
func (s *movieService) ReplaceMovie(ctx context.Context, id int64, req *request.MovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	applyMovieRequest(movie, req)
	return s.save(ctx, movie)
}

func (s *movieService) UpdateMovie(ctx context.Context, id int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.PublishedDate != nil {
		movie.PublishedDate = *req.PublishedDate
	}
	if req.Director != nil {
		movie.Director = *req.Director
	}
	if req.UserScore != nil {
		movie.UserScore = *req.UserScore
	}

	return s.save(ctx, movie)
}

func (s *movieService) DeleteMovie(ctx context.Context, id int64) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("movie", id)
		}
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", id))
	return nil
}

func (s *movieService) find(ctx context.Context, id int64) (*entity.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, notFound("movie", id)
	}
	return movie, nil
}

func (s *movieService) save(ctx context.Context, movie *entity.Movie) (*response.MovieResponse, error) {
	if err := s.movies.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("movie", movie.ID)
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func applyMovieRequest(movie *entity.Movie, req *request.MovieRequest) {
	movie.Title = req.Title
	movie.PublishedDate = *req.PublishedDate
	movie.Director = req.Director
	// user_score has a default, so an omitted value keeps the stored one.
	if req.UserScore != nil {
		movie.UserScore = *req.UserScore
	}
}
