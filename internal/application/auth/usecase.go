package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/smontiel/sellerhub-api/internal/application/dto"
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
	"github.com/smontiel/sellerhub-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea una cuenta: hashea password con bcrypt y persiste.
// Un user-seller debe referenciar un super seller existente con rol seller.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	role := in.Role
	if role == "" {
		role = entity.RoleSeller
	}
	var superSellerID *string
	switch role {
	case entity.RoleSeller:
		if in.SuperSellerID != "" {
			return nil, domain.ErrInvalidInput
		}
	case entity.RoleUserSeller:
		if in.SuperSellerID == "" {
			return nil, domain.ErrInvalidInput
		}
		owner, err := uc.userRepo.GetByID(in.SuperSellerID)
		if err != nil {
			return nil, err
		}
		if owner == nil || owner.Role != entity.RoleSeller {
			return nil, domain.ErrNotFound
		}
		superSellerID = &in.SuperSellerID
	default:
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:            uuid.New().String(),
		Email:         in.Email,
		PasswordHash:  string(hash),
		Name:          name,
		Role:          role,
		SuperSellerID: superSellerID,
		Status:        "active",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	resp := &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.SuperSellerID != nil {
		resp.SuperSellerID = *u.SuperSellerID
	}
	return resp
}
