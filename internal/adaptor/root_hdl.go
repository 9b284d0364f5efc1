package adaptor

import (
	"net/http"

	"quickstart-api/pkg/utils"
)

// RootHandler serves the browsable API root listing every registered resource.
type RootHandler struct {
	links linker
}

func NewRootHandler(links linker) *RootHandler {
	return &RootHandler{links: links}
}

// Index handles GET /
func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "API root", map[string]string{
		prefixUsers:  h.links.list(r, prefixUsers),
		prefixGroups: h.links.list(r, prefixGroups),
		prefixMovies: h.links.list(r, prefixMovies),
	})
}

// Health handles GET /health
func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "OK", nil)
}
