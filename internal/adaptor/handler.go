package adaptor

import (
	"quickstart-api/internal/usecase"
	"quickstart-api/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Root  *RootHandler
	Auth  *AuthHandler
	User  *UserHandler
	Group *GroupHandler
	Movie *MovieHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	links := linker{baseURL: config.App.BaseURL}

	return &Handler{
		Root:  NewRootHandler(links),
		Auth:  NewAuthHandler(service.Auth, log),
		User:  NewUserHandler(service.User, links, log),
		Group: NewGroupHandler(service.Group, links, log),
		Movie: NewMovieHandler(service.Movie, links, log),
	}
}
