package identity

import (
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

// Resolver traduce el usuario autenticado al seller dueño efectivo.
// Una cuenta "user-seller" opera en nombre de su super seller: las validaciones
// de propiedad del motor de libro mayor se hacen SIEMPRE contra el id resuelto,
// mientras que el id crudo del usuario queda como performed_by para auditoría.
type Resolver struct {
	userRepo repository.UserRepository
}

// NewResolver construye el resolver de identidad.
func NewResolver(userRepo repository.UserRepository) *Resolver {
	return &Resolver{userRepo: userRepo}
}

// ActualSellerID devuelve el id del seller dueño de los recursos que el usuario
// puede operar: su propio id si es seller, el de su super seller si es delegado.
// Usuarios inexistentes o no activos se rechazan.
func (r *Resolver) ActualSellerID(userID string) (string, error) {
	user, err := r.userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	if user.Status != "active" {
		return "", domain.ErrForbidden
	}
	switch user.Role {
	case entity.RoleSeller:
		return user.ID, nil
	case entity.RoleUserSeller:
		if user.SuperSellerID == nil || *user.SuperSellerID == "" {
			// Cuenta delegada sin dueño: dato inconsistente, no se puede operar.
			return "", domain.ErrForbidden
		}
		return *user.SuperSellerID, nil
	}
	return "", domain.ErrForbidden
}
