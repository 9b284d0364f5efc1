package adaptor

import (
	"net/http"

	"quickstart-api/internal/dto/request"
	"quickstart-api/internal/dto/response"
	"quickstart-api/internal/usecase"
	"quickstart-api/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	links   linker
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, links linker, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		links:   links,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetUsers handles GET /users/
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetUsers(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get users")
		return
	}

	for i := range users.Data {
		h.link(r, &users.Data[i])
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// GetUserByID handles GET /users/{id}/
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get user by ID")
		return
	}

	h.link(r, user)
	utils.ResponseSuccess(w, "User retrieved successfully", user)
}

// CreateUser handles POST /users/
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req request.UserRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.CreateUser(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create user")
		return
	}

	h.link(r, user)
	utils.ResponseCreated(w, "User created successfully", user)
}

// ReplaceUser handles PUT /users/{id}/
func (h *UserHandler) ReplaceUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	var req request.UserRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.ReplaceUser(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "replace user")
		return
	}

	h.link(r, user)
	utils.ResponseSuccess(w, "User updated successfully", user)
}

// UpdateUser handles PATCH /users/{id}/
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	var req request.UserUpdateRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update user")
		return
	}

	h.link(r, user)
	utils.ResponseSuccess(w, "User updated successfully", user)
}

// DeleteUser handles DELETE /users/{id}/
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted successfully", nil)
}

func (h *UserHandler) link(r *http.Request, user *response.UserResponse) {
	user.URL = h.links.detail(r, prefixUsers, user.ID)
}
