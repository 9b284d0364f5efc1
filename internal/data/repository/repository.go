package repository

import (
	"quickstart-api/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Group   GroupRepository
	Movie   MovieRepository
	Session SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Group:   NewGroupRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Session: NewSessionRepository(db, log),
	}
}
