package usecase

import (
	"quickstart-api/internal/data/repository"
	"quickstart-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth  AuthService
	User  UserService
	Group GroupService
	Movie MovieService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:  NewAuthService(repo, config.Session, log),
		User:  NewUserService(repo, log),
		Group: NewGroupService(repo.Group, log),
		Movie: NewMovieService(repo.Movie, log),
	}
}
