package entity

import "time"

// Roles válidos para User.
// Un "seller" es la cuenta dueña de bodegas y productos. Un "user-seller" es una
// cuenta delegada que opera en nombre de un seller dueño (SuperSellerID).
const (
	RoleSeller     = "seller"
	RoleUserSeller = "user-seller"
)

// User representa una cuenta del portal (vendedor dueño o delegado).
type User struct {
	ID            string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Name          string
	Role          string  // seller, user-seller
	SuperSellerID *string // solo para user-seller: ID del seller dueño
	Status        string  // active, inactive, suspended
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
