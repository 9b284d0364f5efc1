package adaptor

import (
	"net/http"

	"quickstart-api/internal/dto/request"
	"quickstart-api/internal/dto/response"
	"quickstart-api/internal/usecase"
	"quickstart-api/pkg/utils"

	"go.uber.org/zap"
)

type GroupHandler struct {
	service usecase.GroupService
	links   linker
	log     *zap.Logger
}

func NewGroupHandler(service usecase.GroupService, links linker, log *zap.Logger) *GroupHandler {
	return &GroupHandler{
		service: service,
		links:   links,
		log:     log.With(zap.String("handler", "group")),
	}
}

// GetGroups handles GET /groups/
func (h *GroupHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.GetGroups(r.Context(), paginationFromQuery(r))
	if err != nil {
		handleServiceError(w, h.log, err, "get groups")
		return
	}

	for i := range groups.Data {
		h.link(r, &groups.Data[i])
	}

	utils.ResponseSuccess(w, "Groups retrieved successfully", groups)
}

// GetGroupByID handles GET /groups/{id}/
func (h *GroupHandler) GetGroupByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	group, err := h.service.GetGroupByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get group by ID")
		return
	}

	h.link(r, group)
	utils.ResponseSuccess(w, "Group retrieved successfully", group)
}

// CreateGroup handles POST /groups/
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req request.GroupRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	group, err := h.service.CreateGroup(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create group")
		return
	}

	h.link(r, group)
	utils.ResponseCreated(w, "Group created successfully", group)
}

// ReplaceGroup handles PUT /groups/{id}/
func (h *GroupHandler) ReplaceGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	var req request.GroupRequest
	if err := decodeBody(r, &req, false); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	group, err := h.service.ReplaceGroup(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "replace group")
		return
	}

	h.link(r, group)
	utils.ResponseSuccess(w, "Group updated successfully", group)
}

// UpdateGroup handles PATCH /groups/{id}/
func (h *GroupHandler) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	var req request.GroupUpdateRequest
	if err := decodeBody(r, &req, true); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	group, err := h.service.UpdateGroup(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update group")
		return
	}

	h.link(r, group)
	utils.ResponseSuccess(w, "Group updated successfully", group)
}

// DeleteGroup handles DELETE /groups/{id}/
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		utils.ResponseNotFound(w, "Not found")
		return
	}

	if err := h.service.DeleteGroup(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete group")
		return
	}

	utils.ResponseSuccess(w, "Group deleted successfully", nil)
}

func (h *GroupHandler) link(r *http.Request, group *response.GroupResponse) {
	group.URL = h.links.detail(r, prefixGroups, group.ID)
}
