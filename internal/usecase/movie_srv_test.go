package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quickstart-api/internal/data/repository/repotest"
	"quickstart-api/internal/dto/request"
	"quickstart-api/internal/usecase"

	"go.uber.org/zap"
)

func newMovieService() usecase.MovieService {
	repo, _ := repotest.NewRepository()
	return usecase.NewMovieService(repo.Movie, zap.NewNop())
}

func ptr[T any](v T) *T { return &v }

func TestCreateMovieThenRetrieve(t *testing.T) {
	svc := newMovieService()
	ctx := context.Background()
	published := time.Date(1994, 9, 23, 0, 0, 0, 0, time.UTC)

	// Given
	req := &request.MovieRequest{
		Title:         "The Shawshank Redemption",
		PublishedDate: &published,
		Director:      "Frank Darabont",
		UserScore:     ptr(9.3),
	}

	// When
	created, err := svc.CreateMovie(ctx, req)
	if err != nil {
		t.Fatalf("CreateMovie failed: %v", err)
	}

	// Then
	fetched, err := svc.GetMovieByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetMovieByID failed: %v", err)
	}
	if *fetched != *created {
		t.Errorf("Expected %+v, got %+v", created, fetched)
	}
	if fetched.Title != req.Title || fetched.Director != req.Director || fetched.UserScore != 9.3 {
		t.Errorf("Stored fields differ from request: %+v", fetched)
	}
	if !fetched.PublishedDate.Equal(published) {
		t.Errorf("Expected published date %v, got %v", published, fetched.PublishedDate)
	}
}

func TestCreateMovieRequiresPublishedDate(t *testing.T) {
	svc := newMovieService()

	_, err := svc.CreateMovie(context.Background(), &request.MovieRequest{
		Title:    "Untitled",
		Director: "Nobody",
	})

	var validationErr *usecase.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if _, ok := validationErr.Fields["published_date"]; !ok {
		t.Errorf("Expected published_date field error, got %v", validationErr.Fields)
	}
	if !errors.Is(err, usecase.ErrValidation) {
		t.Errorf("Expected error to match ErrValidation")
	}
}

func TestCreateMovieRejectsLongTitle(t *testing.T) {
	svc := newMovieService()
	published := time.Now()

	title := make([]byte, 101)
	for i := range title {
		title[i] = 'x'
	}

	_, err := svc.CreateMovie(context.Background(), &request.MovieRequest{
		Title:         string(title),
		PublishedDate: &published,
		Director:      "D",
	})

	var validationErr *usecase.ValidationError
	if !errors.As(err, &validationErr) || validationErr.Fields["title"] == "" {
		t.Fatalf("Expected title validation error, got %v", err)
	}
}

func TestCreateMovieDefaultsUserScore(t *testing.T) {
	svc := newMovieService()
	published := time.Now().UTC()

	movie, err := svc.CreateMovie(context.Background(), &request.MovieRequest{
		Title:         "Score-less",
		PublishedDate: &published,
		Director:      "Someone",
	})
	if err != nil {
		t.Fatalf("CreateMovie failed: %v", err)
	}
	if movie.UserScore != 0 {
		t.Errorf("Expected user_score 0, got %v", movie.UserScore)
	}
}

func TestDeleteMovieThenRetrieveFails(t *testing.T) {
	svc := newMovieService()
	ctx := context.Background()
	published := time.Now().UTC()

	movie, err := svc.CreateMovie(ctx, &request.MovieRequest{Title: "Gone", PublishedDate: &published, Director: "D"})
	if err != nil {
		t.Fatalf("CreateMovie failed: %v", err)
	}

	if err := svc.DeleteMovie(ctx, movie.ID); err != nil {
		t.Fatalf("DeleteMovie failed: %v", err)
	}

	if _, err := svc.GetMovieByID(ctx, movie.ID); !errors.Is(err, usecase.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.DeleteMovie(ctx, movie.ID); !errors.Is(err, usecase.ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestGetMoviesListsAllRemaining(t *testing.T) {
	svc := newMovieService()
	ctx := context.Background()
	published := time.Now().UTC()

	var ids []int64
	for _, title := range []string{"One", "Two", "Three"} {
		m, err := svc.CreateMovie(ctx, &request.MovieRequest{Title: title, PublishedDate: &published, Director: "D"})
		if err != nil {
			t.Fatalf("CreateMovie %s failed: %v", title, err)
		}
		ids = append(ids, m.ID)
	}
	if err := svc.DeleteMovie(ctx, ids[1]); err != nil {
		t.Fatalf("DeleteMovie failed: %v", err)
	}

	page, err := svc.GetMovies(ctx, &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetMovies failed: %v", err)
	}
	if page.Pagination.Total != 2 || len(page.Data) != 2 {
		t.Fatalf("Expected 2 movies, got total=%d len=%d", page.Pagination.Total, len(page.Data))
	}
	if page.Data[0].Title != "One" || page.Data[1].Title != "Three" {
		t.Errorf("Unexpected list order: %q, %q", page.Data[0].Title, page.Data[1].Title)
	}
}

func TestGetMoviesPaginates(t *testing.T) {
	svc := newMovieService()
	ctx := context.Background()
	published := time.Now().UTC()

	for i := 0; i < 5; i++ {
		if _, err := svc.CreateMovie(ctx, &request.MovieRequest{Title: "M", PublishedDate: &published, Director: "D"}); err != nil {
			t.Fatalf("CreateMovie failed: %v", err)
		}
	}

	page, err := svc.GetMovies(ctx, &request.PaginatedRequest{Page: 3, PerPage: 2})
	if err != nil {
		t.Fatalf("GetMovies failed: %v", err)
	}
	if len(page.Data) != 1 || page.Pagination.TotalPages != 3 {
		t.Errorf("Expected last page with 1 item of 3 pages, got len=%d pages=%d", len(page.Data), page.Pagination.TotalPages)
	}
}

func TestUpdateMovieChangesOnlyGivenFields(t *testing.T) {
	svc := newMovieService()
	ctx := context.Background()
	published := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	movie, err := svc.CreateMovie(ctx, &request.MovieRequest{
		Title: "Before", PublishedDate: &published, Director: "Kept", UserScore: ptr(5.0),
	})
	if err != nil {
		t.Fatalf("CreateMovie failed: %v", err)
	}

	updated, err := svc.UpdateMovie(ctx, movie.ID, &request.MovieUpdateRequest{Title: ptr("After")})
	if err != nil {
		t.Fatalf("UpdateMovie failed: %v", err)
	}
	if updated.Title != "After" || updated.Director != "Kept" || updated.UserScore != 5.0 {
		t.Errorf("Unexpected partial update result: %+v", updated)
	}
}

func TestUpdateMovieRejectsBlankTitle(t *testing.T) {
	svc := newMovieService()
	ctx := context.Background()
	published := time.Now().UTC()

	movie, err := svc.CreateMovie(ctx, &request.MovieRequest{Title: "T", PublishedDate: &published, Director: "D"})
	if err != nil {
		t.Fatalf("CreateMovie failed: %v", err)
	}

	if _, err := svc.UpdateMovie(ctx, movie.ID, &request.MovieUpdateRequest{Title: ptr("")}); !errors.Is(err, usecase.ErrValidation) {
		t.Errorf("Expected ErrValidation for blank title, got %v", err)
	}
}

func TestReplaceMovieKeepsOmittedScore(t *testing.T) {
	svc := newMovieService()
	ctx := context.Background()
	published := time.Now().UTC()

	movie, err := svc.CreateMovie(ctx, &request.MovieRequest{
		Title: "T", PublishedDate: &published, Director: "D", UserScore: ptr(8.7),
	})
	if err != nil {
		t.Fatalf("CreateMovie failed: %v", err)
	}

	replaced, err := svc.ReplaceMovie(ctx, movie.ID, &request.MovieRequest{
		Title: "T2", PublishedDate: &published, Director: "D2",
	})
	if err != nil {
		t.Fatalf("ReplaceMovie failed: %v", err)
	}
	if replaced.UserScore != 8.7 || replaced.Title != "T2" || replaced.Director != "D2" {
		t.Errorf("Unexpected replace result: %+v", replaced)
	}

	replaced, err = svc.ReplaceMovie(ctx, movie.ID, &request.MovieRequest{
		Title: "T3", PublishedDate: &published, Director: "D3", UserScore: ptr(0.0),
	})
	if err != nil {
		t.Fatalf("ReplaceMovie failed: %v", err)
	}
	if replaced.UserScore != 0 {
		t.Errorf("Expected explicit user_score 0 to be stored, got %v", replaced.UserScore)
	}

	if _, err := svc.ReplaceMovie(ctx, 999, &request.MovieRequest{
		Title: "T", PublishedDate: &published, Director: "D",
	}); !errors.Is(err, usecase.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown id, got %v", err)
	}
}
