package wire_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"quickstart-api/internal/data/repository/repotest"
	"quickstart-api/internal/wire"
	"quickstart-api/pkg/utils"

	"go.uber.org/zap"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type movie struct {
	ID            int64   `json:"id"`
	URL           string  `json:"url"`
	Title         string  `json:"title"`
	PublishedDate string  `json:"published_date"`
	Director      string  `json:"director"`
	UserScore     float64 `json:"user_score"`
}

type page[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

type testAPI struct {
	t       *testing.T
	handler http.Handler
}

func newAPI(t *testing.T, configure ...func(*utils.Config)) *testAPI {
	t.Helper()

	config := &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 1},
		Limiter: utils.LimiterConfig{Enabled: false},
	}
	for _, fn := range configure {
		fn(config)
	}

	repo, _ := repotest.NewRepository()
	app := wire.Wiring(repo, config, zap.NewNop())
	return &testAPI{t: t, handler: app.Router}
}

func (a *testAPI) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		if payload, err = json.Marshal(b); err != nil {
			a.t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		a.t.Fatalf("%s %s: response is not an envelope: %v (%s)", method, path, err, rec.Body.String())
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("Failed to decode data %s: %v", raw, err)
	}
	return v
}

func (a *testAPI) login(username, password string) string {
	a.t.Helper()

	code, env := a.do(http.MethodPost, "/api-auth/login/", "", map[string]string{
		"username": username,
		"password": password,
	})
	if code != http.StatusOK {
		a.t.Fatalf("Login failed with %d: %s", code, env.Message)
	}
	return decode[struct {
		Token string `json:"token"`
	}](a.t, env.Data).Token
}

func (a *testAPI) createUser(username, password string) {
	a.t.Helper()

	code, env := a.do(http.MethodPost, "/users/", "", map[string]any{
		"username": username,
		"password": password,
	})
	if code != http.StatusCreated {
		a.t.Fatalf("Create user failed with %d: %s %v", code, env.Message, env.Errors)
	}
}

var matrix = map[string]any{
	"title":          "The Matrix",
	"published_date": "1999-03-31T00:00:00Z",
	"director":       "Wachowski",
	"user_score":     8.7,
}

func TestMovieCreateRetrieveRoundTrip(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodPost, "/movies/", "", matrix)
	if code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s %v", code, env.Message, env.Errors)
	}
	created := decode[movie](t, env.Data)

	wantURL := "http://example.com/movies/" + strconv.FormatInt(created.ID, 10) + "/"
	if created.URL != wantURL {
		t.Errorf("Expected url %s, got %s", wantURL, created.URL)
	}

	// Trailing slash is optional
	for _, path := range []string{"/movies/1/", "/movies/1"} {
		code, env = api.do(http.MethodGet, path, "", nil)
		if code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, code)
		}
		if fetched := decode[movie](t, env.Data); fetched != created {
			t.Errorf("GET %s: expected %+v, got %+v", path, created, fetched)
		}
	}
}

func TestMovieCreateWithoutPublishedDate(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodPost, "/movies/", "", map[string]any{
		"title":    "Undated",
		"director": "Someone",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", code)
	}
	if env.Errors["published_date"] == "" {
		t.Errorf("Expected published_date error, got %v", env.Errors)
	}
}

func TestMovieUserScoreDefaultsToZero(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodPost, "/movies/", "", map[string]any{
		"title":          "No Score",
		"published_date": "2020-01-01T00:00:00Z",
		"director":       "Someone",
	})
	if code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", code)
	}
	if got := decode[movie](t, env.Data).UserScore; got != 0 {
		t.Errorf("Expected user_score 0, got %v", got)
	}
}

func TestMovieDeleteThenNotFound(t *testing.T) {
	api := newAPI(t)

	_, env := api.do(http.MethodPost, "/movies/", "", matrix)
	path := "/movies/" + strconv.FormatInt(decode[movie](t, env.Data).ID, 10) + "/"

	if code, _ := api.do(http.MethodDelete, path, "", nil); code != http.StatusOK {
		t.Fatalf("Expected 200 on delete, got %d", code)
	}
	if code, _ := api.do(http.MethodGet, path, "", nil); code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", code)
	}
	if code, _ := api.do(http.MethodDelete, path, "", nil); code != http.StatusNotFound {
		t.Errorf("Expected 404 deleting twice, got %d", code)
	}
}

func TestMovieListReturnsAll(t *testing.T) {
	api := newAPI(t)

	for i := 0; i < 3; i++ {
		if code, _ := api.do(http.MethodPost, "/movies/", "", matrix); code != http.StatusCreated {
			t.Fatalf("Create %d: expected 201, got %d", i, code)
		}
	}
	api.do(http.MethodDelete, "/movies/2/", "", nil)

	code, env := api.do(http.MethodGet, "/movies/", "", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	list := decode[page[movie]](t, env.Data)
	if list.Pagination.Total != 2 || len(list.Data) != 2 {
		t.Fatalf("Expected 2 movies, got total=%d len=%d", list.Pagination.Total, len(list.Data))
	}
	if list.Data[0].ID != 1 || list.Data[1].ID != 3 {
		t.Errorf("Expected ids 1 and 3, got %d and %d", list.Data[0].ID, list.Data[1].ID)
	}
}

func TestMoviePartialAndFullUpdate(t *testing.T) {
	api := newAPI(t)
	api.do(http.MethodPost, "/movies/", "", matrix)

	code, env := api.do(http.MethodPatch, "/movies/1/", "", map[string]any{"user_score": 9.9})
	if code != http.StatusOK {
		t.Fatalf("PATCH: expected 200, got %d", code)
	}
	patched := decode[movie](t, env.Data)
	if patched.UserScore != 9.9 || patched.Title != "The Matrix" {
		t.Errorf("Unexpected PATCH result: %+v", patched)
	}

	// PUT needs every required field
	code, env = api.do(http.MethodPut, "/movies/1/", "", map[string]any{"title": "Only title"})
	if code != http.StatusBadRequest {
		t.Fatalf("PUT with missing fields: expected 400, got %d", code)
	}
	if env.Errors["director"] == "" || env.Errors["published_date"] == "" {
		t.Errorf("Expected director and published_date errors, got %v", env.Errors)
	}
}

func TestMovieBadInput(t *testing.T) {
	api := newAPI(t)

	if code, _ := api.do(http.MethodPost, "/movies/", "", "{not json"); code != http.StatusBadRequest {
		t.Errorf("Malformed JSON: expected 400, got %d", code)
	}
	if code, _ := api.do(http.MethodGet, "/movies/abc/", "", nil); code != http.StatusNotFound {
		t.Errorf("Non-numeric id: expected 404, got %d", code)
	}
	if code, _ := api.do(http.MethodPost, "/movies/1/", "", matrix); code != http.StatusMethodNotAllowed {
		t.Errorf("POST on detail: expected 405, got %d", code)
	}
}

func TestUsersOpenToAnonymousByDefault(t *testing.T) {
	api := newAPI(t)

	code, _ := api.do(http.MethodGet, "/users/", "", nil)
	if code != http.StatusOK {
		t.Errorf("Expected anonymous GET /users/ to succeed, got %d", code)
	}
}

func TestUsersRequireAuthWhenConfigured(t *testing.T) {
	api := newAPI(t, func(c *utils.Config) { c.Permissions.UsersRequireAuth = true })

	code, env := api.do(http.MethodGet, "/users/", "", nil)
	if code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d (%s)", code, env.Message)
	}
}

func TestUsersListNewestFirstWithoutPasswords(t *testing.T) {
	api := newAPI(t)
	api.createUser("first", "password-one")
	api.createUser("second", "password-two")

	code, env := api.do(http.MethodGet, "/users/", "", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}

	list := decode[page[map[string]any]](t, env.Data)
	if len(list.Data) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(list.Data))
	}
	// Same date_joined resolution is possible, ties fall back to newest id
	if list.Data[0]["username"] != "second" {
		t.Errorf("Expected newest user first, got %v", list.Data[0]["username"])
	}
	for _, u := range list.Data {
		if _, leaked := u["password"]; leaked {
			t.Errorf("Password leaked in user representation: %v", u)
		}
	}
}

func TestGroupsRequireAuthentication(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodGet, "/groups/", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for anonymous request, got %d", code)
	}
	if env.Message != "Authentication credentials were not provided" {
		t.Errorf("Unexpected message: %q", env.Message)
	}

	api.createUser("admin", "s3cret-pass")
	token := api.login("admin", "s3cret-pass")

	if code, _ := api.do(http.MethodGet, "/groups/", token, nil); code != http.StatusOK {
		t.Fatalf("Expected 200 after login, got %d", code)
	}

	if code, _ := api.do(http.MethodPost, "/groups/", token, map[string]string{"name": "editors"}); code != http.StatusCreated {
		t.Fatalf("Expected 201 creating group, got %d", code)
	}
	code, env = api.do(http.MethodPost, "/groups/", token, map[string]string{"name": "editors"})
	if code != http.StatusBadRequest || env.Errors["name"] == "" {
		t.Errorf("Expected 400 with name error for duplicate, got %d %v", code, env.Errors)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	api := newAPI(t)
	api.createUser("alice", "wonderland")
	token := api.login("alice", "wonderland")

	if code, _ := api.do(http.MethodPost, "/api-auth/logout/", token, nil); code != http.StatusOK {
		t.Fatalf("Expected 200 on logout, got %d", code)
	}
	if code, _ := api.do(http.MethodGet, "/groups/", token, nil); code != http.StatusUnauthorized {
		t.Errorf("Expected revoked token to be rejected, got %d", code)
	}
	if code, _ := api.do(http.MethodPost, "/api-auth/logout/", "", nil); code != http.StatusUnauthorized {
		t.Errorf("Expected anonymous logout to be rejected, got %d", code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	api := newAPI(t)
	api.createUser("alice", "wonderland")

	code, _ := api.do(http.MethodPost, "/api-auth/login/", "", map[string]string{
		"username": "alice",
		"password": "looking-glass",
	})
	if code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", code)
	}
}

func TestUserDuplicateUsername(t *testing.T) {
	api := newAPI(t)
	api.createUser("alice", "wonderland")

	code, env := api.do(http.MethodPost, "/users/", "", map[string]string{"username": "alice"})
	if code != http.StatusBadRequest || env.Errors["username"] == "" {
		t.Errorf("Expected 400 with username error, got %d %v", code, env.Errors)
	}
}

func TestAPIRootAndHealth(t *testing.T) {
	api := newAPI(t)

	code, env := api.do(http.MethodGet, "/", "", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200 from API root, got %d", code)
	}
	links := decode[map[string]string](t, env.Data)
	want := map[string]string{
		"users":  "http://example.com/users/",
		"groups": "http://example.com/groups/",
		"movies": "http://example.com/movies/",
	}
	for name, url := range want {
		if links[name] != url {
			t.Errorf("Expected %s link %s, got %s", name, url, links[name])
		}
	}

	if code, _ := api.do(http.MethodGet, "/health", "", nil); code != http.StatusOK {
		t.Errorf("Expected 200 from /health, got %d", code)
	}
	if code, _ := api.do(http.MethodGet, "/nowhere/", "", nil); code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown route, got %d", code)
	}
}

func TestMovieReplaceKeepsOmittedScore(t *testing.T) {
	api := newAPI(t)
	api.do(http.MethodPost, "/movies/", "", matrix)

	code, env := api.do(http.MethodPut, "/movies/1/", "", map[string]any{
		"title":          "The Matrix Reloaded",
		"published_date": "2003-05-15T00:00:00Z",
		"director":       "Wachowski",
	})
	if code != http.StatusOK {
		t.Fatalf("PUT: expected 200, got %d: %v", code, env.Errors)
	}
	replaced := decode[movie](t, env.Data)
	if replaced.UserScore != 8.7 || replaced.Title != "The Matrix Reloaded" {
		t.Errorf("Unexpected PUT result: %+v", replaced)
	}
}

func TestMovieListHugePage(t *testing.T) {
	api := newAPI(t)
	api.do(http.MethodPost, "/movies/", "", matrix)

	code, env := api.do(http.MethodGet, "/movies/?page=922337203685477581&per_page=100", "", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", code, env.Message)
	}
	list := decode[page[movie]](t, env.Data)
	if len(list.Data) != 0 || list.Pagination.Total != 1 {
		t.Errorf("Expected an empty page of 1 total, got len=%d total=%d", len(list.Data), list.Pagination.Total)
	}
}

func TestUserReplaceKeepsOptionalFields(t *testing.T) {
	api := newAPI(t)
	api.createUser("alice", "wonderland")
	token := api.login("alice", "wonderland")

	if code, _ := api.do(http.MethodPost, "/groups/", token, map[string]any{"name": "staff"}); code != http.StatusCreated {
		t.Fatalf("Create group: expected 201, got %d", code)
	}

	type user struct {
		Email  string  `json:"email"`
		Groups []int64 `json:"groups"`
	}

	code, env := api.do(http.MethodPatch, "/users/1/", "", map[string]any{
		"email":  "alice@example.com",
		"groups": []int64{1, 1},
	})
	if code != http.StatusOK {
		t.Fatalf("PATCH: expected 200, got %d: %v", code, env.Errors)
	}
	if patched := decode[user](t, env.Data); len(patched.Groups) != 1 || patched.Groups[0] != 1 {
		t.Errorf("Expected groups [1], got %v", patched.Groups)
	}

	code, env = api.do(http.MethodPut, "/users/1/", "", map[string]any{"username": "alice"})
	if code != http.StatusOK {
		t.Fatalf("PUT: expected 200, got %d: %v", code, env.Errors)
	}
	replaced := decode[user](t, env.Data)
	if replaced.Email != "alice@example.com" || len(replaced.Groups) != 1 {
		t.Errorf("Expected email and groups to be kept, got %+v", replaced)
	}
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	api := newAPI(t, func(c *utils.Config) {
		c.Limiter = utils.LimiterConfig{Enabled: true, RPS: 1, Burst: 1}
	})

	codes := make([]int, 0, 2)
	for _, forwarded := range []string{"203.0.113.1", "203.0.113.2"} {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = "198.51.100.7:4000"
		req.Header.Set("X-Forwarded-For", forwarded)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("Expected 200 then 429 for one connection address, got %v", codes)
	}
}
