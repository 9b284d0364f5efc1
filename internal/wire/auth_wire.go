package wire

import (
	"quickstart-api/internal/adaptor"
	"quickstart-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, log *zap.Logger) {
	r.Route("/api-auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.With(middleware.RequireAuth(log)).Post("/logout", authHandler.Logout)
	})
}
