package postgres

import (
	"inkpost/internal/ports/repositories"
)

// Repositories объединяет все репозитории Postgres.
type Repositories struct {
	Users repositories.UserRepository
	Posts repositories.PostRepository
}

// NewRepositories создает набор репозиториев поверх общего пула соединений.
func NewRepositories(pool PgxPoolInterface) *Repositories {
	return &Repositories{
		Users: NewUserRepository(pool),
		Posts: NewPostRepository(pool),
	}
}
