package wire

import (
	"quickstart-api/internal/adaptor"
	"quickstart-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireGroup(r chi.Router, groupHandler *adaptor.GroupHandler, log *zap.Logger) {
	r.Route("/groups", func(r chi.Router) {
		r.Use(middleware.RequireAuth(log))

		r.Get("/", groupHandler.GetGroups)
		r.Post("/", groupHandler.CreateGroup)
		r.Get("/{id}", groupHandler.GetGroupByID)
		r.Put("/{id}", groupHandler.ReplaceGroup)
		r.Patch("/{id}", groupHandler.UpdateGroup)
		r.Delete("/{id}", groupHandler.DeleteGroup)
	})
}
