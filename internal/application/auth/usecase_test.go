package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ceramic-erp/internal/application/auth"
	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/rbac"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/authz"
	"github.com/jhoicas/ceramic-erp/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/ceramic-erp/pkg/jwt"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	_, err := rbac.NewSeeder(store, rbac.DefaultBootstrapUsers("Admin@123", "User@123"), nil).Seed(context.Background())
	require.NoError(t, err)
	uc := auth.NewAuthUseCase(store.Users(), store.Roles(), validation.New(), auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 5, Issuer: "ceramic-erp-test",
	})
	return uc, store
}

// ── Login ─────────────────────────────────────────────────────────────────────

func TestLogin_TokenLlevaRolYPermisos(t *testing.T) {
	uc, _ := newAuth(t)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  User@ERP.com ", Password: "User@123"})
	require.NoError(t, err)
	assert.Equal(t, "user@erp.com", resp.User.Email)
	assert.Equal(t, authz.RoleSalesExecutive, resp.User.Role)

	id, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, id.UserID)
	assert.Equal(t, authz.RoleSalesExecutive, id.Role)
	set := authz.ParseSet(id.Permissions)
	assert.True(t, set.Has(authz.CreateSale))
	assert.False(t, set.Has(authz.ViewLedger))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@erp.com", Password: "nope"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ghost@erp.com", Password: "Admin@123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials), "usuario inexistente responde igual que contraseña errónea")
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	u, err := store.Users().GetByEmail(ctx, "user@erp.com")
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, store.Users().Update(ctx, u))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "user@erp.com", Password: "User@123"})
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))
}

// ── Registro ──────────────────────────────────────────────────────────────────

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:            "  Ana   María  Pérez ",
		Email:           " Ana@Example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            "accountant",
	}
}

func TestRegister_NormalizaEIniciaSesion(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "Ana María Pérez", u.Name)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, authz.RoleAccountant, u.Role)
	assert.True(t, u.IsActive)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Contains(t, resp.User.Permissions, string(authz.ViewLedger))
}

func TestRegister_RechazaSuperAdmin(t *testing.T) {
	uc, _ := newAuth(t)
	in := validRegister()
	in.Role = "Super Admin"

	_, err := uc.RegisterUser(context.Background(), in)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "role")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newAuth(t)
	in := validRegister()
	in.Email = "ADMIN@erp.com"

	_, err := uc.RegisterUser(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrEmailAlreadyExists))
}

func TestRegister_NombreVacio(t *testing.T) {
	uc, _ := newAuth(t)
	in := validRegister()
	in.Name = "    "

	_, err := uc.RegisterUser(context.Background(), in)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
}

func TestRegisterRoles_ExcluyeSuperAdmin(t *testing.T) {
	uc, _ := newAuth(t)
	roles, err := uc.RegisterRoles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Accountant", "Admin Manager", "Inventory Staff", "Sales Executive"}, roles)
}

func TestMe_DevuelvePerfilConPermisos(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	admin, err := store.Users().GetByEmail(ctx, "admin@erp.com")
	require.NoError(t, err)

	me, err := uc.Me(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "System Owner", me.Name)
	assert.Len(t, me.Permissions, len(authz.Definitions))

	_, err = uc.Me(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}
