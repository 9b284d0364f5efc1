package wire

import (
	"quickstart-api/internal/adaptor"
	"quickstart-api/pkg/middleware"
	"quickstart-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/users", func(r chi.Router) {
		// Anonymous access stays allowed unless explicitly switched off.
		if config.Permissions.UsersRequireAuth {
			r.Use(middleware.RequireAuth(log))
		}

		r.Get("/", userHandler.GetUsers)
		r.Post("/", userHandler.CreateUser)
		r.Get("/{id}", userHandler.GetUserByID)
		r.Put("/{id}", userHandler.ReplaceUser)
		r.Patch("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
