package repository

import "github.com/smontiel/sellerhub-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para cuentas del portal.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
