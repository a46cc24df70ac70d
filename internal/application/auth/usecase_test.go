package auth_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smontiel/sellerhub-api/internal/application/auth"
	"github.com/smontiel/sellerhub-api/internal/application/dto"
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	pkgjwt "github.com/smontiel/sellerhub-api/pkg/jwt"
)

type fakeUserRepo struct {
	byID map[string]*entity.User
	// findErr simula un fallo de BD en la búsqueda por email.
	findErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.byID[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.byID[id], nil
}
func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

var testJWT = auth.JWTConfig{Secret: "secret-de-test", ExpMinutes: 30, Issuer: "sellerhub-test"}

func TestRegisterUser_SellerPorDefecto(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWT)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.co",
		Password: "supersecreta",
		Name:     "Ana",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleSeller, out.Role, "sin rol explícito se registra como seller")
	assert.Empty(t, out.SuperSellerID)
	assert.Equal(t, "active", out.Status)
}

func TestRegisterUser_UserSellerRequiereSuperSeller(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "delegado@tienda.co", Password: "x12345678",
		Role: entity.RoleUserSeller,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "user-seller sin super_seller_id se rechaza")
}

func TestRegisterUser_UserSellerConSuperSellerValido(t *testing.T) {
	repo := newFakeUserRepo()
	repo.byID["owner-1"] = &entity.User{ID: "owner-1", Email: "owner@tienda.co", Role: entity.RoleSeller, Status: "active"}
	uc := auth.NewAuthUseCase(repo, testJWT)

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "delegado@tienda.co", Password: "x12345678",
		Role: entity.RoleUserSeller, SuperSellerID: "owner-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "owner-1", out.SuperSellerID)
}

func TestRegisterUser_SuperSellerInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "delegado@tienda.co", Password: "x12345678",
		Role: entity.RoleUserSeller, SuperSellerID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterUser_SuperSellerNoPuedeSerDelegado(t *testing.T) {
	// Un user-seller no puede colgar de otro user-seller: la delegación es de
	// un solo nivel.
	repo := newFakeUserRepo()
	super := "owner-1"
	repo.byID["delegado-1"] = &entity.User{ID: "delegado-1", Role: entity.RoleUserSeller, SuperSellerID: &super, Status: "active"}
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "otro@tienda.co", Password: "x12345678",
		Role: entity.RoleUserSeller, SuperSellerID: "delegado-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterUser_FalloDeBusquedaNoSeTragaElError(t *testing.T) {
	// Un fallo transitorio de la BD en la búsqueda por email no puede leerse
	// como "email libre": el error se propaga y no se intenta crear nada.
	repo := newFakeUserRepo()
	boom := errors.New("conexión perdida")
	repo.findErr = boom
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "supersecreta"})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, repo.byID, "no debe crearse ningún usuario")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "supersecreta"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "otraclave"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "supersecreta", Name: "Ana"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "supersecreta"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	// El token lleva el id y el rol del usuario, nunca el seller efectivo.
	userID, role, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, userID)
	assert.Equal(t, entity.RoleSeller, role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWT)

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "supersecreta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeUserRepo(), testJWT)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, testJWT)

	out, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "supersecreta"})
	require.NoError(t, err)
	repo.byID[out.ID].Status = "suspended"

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
