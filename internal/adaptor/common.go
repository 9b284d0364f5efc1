package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"quickstart-api/internal/dto/request"
	"quickstart-api/internal/usecase"
	"quickstart-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	prefixUsers  = "users"
	prefixGroups = "groups"
	prefixMovies = "movies"
)

// linker builds absolute detail URLs for resources.
type linker struct {
	baseURL string
}

func (l linker) detail(r *http.Request, prefix string, id int64) string {
	return utils.AbsoluteURL(r, l.baseURL, fmt.Sprintf("/%s/%d/", prefix, id))
}

func (l linker) list(r *http.Request, prefix string) string {
	return utils.AbsoluteURL(r, l.baseURL, "/"+prefix+"/")
}

// decodeBody decodes the JSON request body into dst. An empty body is
// accepted only when allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) && allowEmpty {
		return nil
	}
	return err
}

// pathID reads the {id} URL parameter.
func pathID(r *http.Request) (int64, bool) {
	return utils.ParseID(chi.URLParam(r, "id"))
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
	}
	if req.PerPage > request.MaxPerPage {
		req.PerPage = request.MaxPerPage
	}
	return req
}

// handleServiceError maps service errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.As(err, &validationErr):
		log.Debug(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Debug(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Not found")

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid username or password")

	case errors.Is(err, usecase.ErrInactive):
		log.Warn(operation+" failed - account deactivated", zap.Error(err))
		utils.ResponseForbidden(w, "Account is deactivated")

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
