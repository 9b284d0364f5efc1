package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickstart-api/internal/data/entity"
	"quickstart-api/internal/data/repository"
	"quickstart-api/internal/data/repository/repotest"
	"quickstart-api/pkg/middleware"
	"quickstart-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// whoami echoes the authenticated user id, or 0 for anonymous requests.
func whoami(t *testing.T, got *int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, _ = utils.GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func seedSession(t *testing.T, repo *repository.Repository, active bool, expiresIn time.Duration) (int64, uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	user := &entity.User{Username: "u" + uuid.NewString()[:8], IsActive: true, DateJoined: time.Now()}
	if err := repo.User.Create(ctx, user); err != nil {
		t.Fatalf("Create user failed: %v", err)
	}

	token := uuid.New()
	session := &entity.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(expiresIn),
		CreatedAt: time.Now(),
	}
	if err := repo.Session.Create(ctx, session); err != nil {
		t.Fatalf("Create session failed: %v", err)
	}

	if !active {
		user.IsActive = false
		if err := repo.User.Update(ctx, user); err != nil {
			t.Fatalf("Update user failed: %v", err)
		}
	}
	return user.ID, token
}

func TestAuthenticate(t *testing.T) {
	repo, _ := repotest.NewRepository()
	activeID, activeToken := seedSession(t, repo, true, time.Hour)
	_, expiredToken := seedSession(t, repo, true, -time.Minute)
	_, inactiveToken := seedSession(t, repo, false, time.Hour)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID int64
	}{
		{"anonymous", "", http.StatusOK, 0},
		{"valid token", "Bearer " + activeToken.String(), http.StatusOK, activeID},
		{"wrong scheme", "Token " + activeToken.String(), http.StatusUnauthorized, 0},
		{"malformed token", "Bearer not-a-uuid", http.StatusUnauthorized, 0},
		{"unknown token", "Bearer " + uuid.NewString(), http.StatusUnauthorized, 0},
		{"expired token", "Bearer " + expiredToken.String(), http.StatusUnauthorized, 0},
		{"inactive user", "Bearer " + inactiveToken.String(), http.StatusUnauthorized, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got int64
			handler := middleware.Authenticate(repo.Session, repo.User, zap.NewNop())(whoami(t, &got))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got != tt.wantUserID {
				t.Errorf("Expected user id %d, got %d", tt.wantUserID, got)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	var got int64
	handler := middleware.RequireAuth(zap.NewNop())(whoami(t, &got))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/groups/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 for anonymous request, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/groups/", nil)
	req = req.WithContext(utils.SetUserContext(req.Context(), 3))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || got != 3 {
		t.Errorf("Expected 200 for user 3, got %d (user %d)", rec.Code, got)
	}
}
