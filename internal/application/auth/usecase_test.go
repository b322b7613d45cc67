package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/comisiones-api/internal/application/auth"
	"github.com/jhoicas/comisiones-api/internal/application/dto"
	"github.com/jhoicas/comisiones-api/internal/domain"
	"github.com/jhoicas/comisiones-api/internal/domain/entity"
)

// ─────────────────────────────────────────────
// Fake repo en memoria
// ─────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateOverrides(_ context.Context, userID string, overrides map[string]bool) error {
	r.users[userID].Overrides = overrides
	return nil
}

func seedUser(t *testing.T, repo *fakeUserRepo, role, password string, overrides map[string]bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "user-" + role,
		Email:        role + "@test.local",
		PasswordHash: string(hash),
		Name:         "Usuario " + role,
		Role:         role,
		Overrides:    overrides,
		Status:       "active",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func buildUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "secret-de-test-para-auth",
		ExpMinutes: 60,
		Issuer:     "comisiones-api-test",
	})
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_OK(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, entity.RoleAdmin, "clave-correcta", nil)
	uc := buildUC(repo)

	out, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    u.Email,
		Password: "clave-correcta",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, u.ID, out.User.ID)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, entity.RoleAdmin, "clave-correcta", nil)
	uc := buildUC(repo)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    u.Email,
		Password: "clave-incorrecta",
	})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := buildUC(newFakeUserRepo())

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    "nadie@test.local",
		Password: "cualquiera",
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, entity.RoleEditor, "clave-correcta", nil)
	u.Status = "inactive"
	uc := buildUC(repo)

	_, err := uc.Login(context.Background(), dto.LoginRequest{
		Email:    u.Email,
		Password: "clave-correcta",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ─────────────────────────────────────────────
// HasPermission — permiso efectivo = override ?? rol
// ─────────────────────────────────────────────

func TestHasPermission_PorRol(t *testing.T) {
	repo := newFakeUserRepo()
	admin := seedUser(t, repo, entity.RoleAdmin, "x", nil)
	vendedor := seedUser(t, repo, entity.RoleVendedor, "x", nil)
	uc := buildUC(repo)
	ctx := context.Background()

	// Admin tiene todos los permisos base.
	ok, err := uc.HasPermission(ctx, admin.ID, entity.PermEditarComisiones)
	require.NoError(t, err)
	assert.True(t, ok)

	// Vendedor solo calcula precios.
	ok, err = uc.HasPermission(ctx, vendedor.ID, entity.PermCalcularPrecios)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.HasPermission(ctx, vendedor.ID, entity.PermEditarComisiones)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermission_OverrideConcede(t *testing.T) {
	repo := newFakeUserRepo()
	vendedor := seedUser(t, repo, entity.RoleVendedor, "x", map[string]bool{
		entity.PermVerHistorial: true,
	})
	uc := buildUC(repo)

	ok, err := uc.HasPermission(context.Background(), vendedor.ID, entity.PermVerHistorial)
	require.NoError(t, err)
	assert.True(t, ok, "el override debe conceder un permiso que el rol no tiene")
}

func TestHasPermission_OverrideRevoca(t *testing.T) {
	repo := newFakeUserRepo()
	editor := seedUser(t, repo, entity.RoleEditor, "x", map[string]bool{
		entity.PermEditarConstantes: false,
	})
	uc := buildUC(repo)

	ok, err := uc.HasPermission(context.Background(), editor.ID, entity.PermEditarConstantes)
	require.NoError(t, err)
	assert.False(t, ok, "el override debe poder revocar un permiso del rol")

	// Los demás permisos del rol quedan intactos.
	ok, err = uc.HasPermission(context.Background(), editor.ID, entity.PermEditarComisiones)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasPermission_UsuarioInactivoSinPermisos(t *testing.T) {
	repo := newFakeUserRepo()
	admin := seedUser(t, repo, entity.RoleAdmin, "x", nil)
	admin.Status = "inactive"
	uc := buildUC(repo)

	ok, err := uc.HasPermission(context.Background(), admin.ID, entity.PermCalcularPrecios)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasPermission_UsuarioInexistente(t *testing.T) {
	uc := buildUC(newFakeUserRepo())

	_, err := uc.HasPermission(context.Background(), "no-existe", entity.PermCalcularPrecios)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
