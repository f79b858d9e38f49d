package auth

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/rbac"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/authz"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
	"github.com/jhoicas/ceramic-erp/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	validator *validation.Validator
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, roleRepo repository.RoleRepository, v *validation.Validator, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, validator: v, jwtCfg: jwtCfg}
}

// RegisterUser crea una cuenta activa con un rol de la lista de auto-registro.
// El nombre se guarda con los espacios colapsados y el email en minúsculas.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Name = strings.Join(strings.Fields(in.Name), " ")
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	roleName, ok := authz.CanSelfRegister(in.Role)
	if !ok {
		return nil, domain.NewValidationError("role", "el rol seleccionado no está permitido")
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	role, err := uc.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.NewValidationError("role", "el rol seleccionado no está disponible")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		RoleName:     role.Name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user, nil), nil
}

// Login verifica email/password y emite un JWT con el rol y los permisos vigentes del rol.
// Usuario inexistente, contraseña errónea o cuenta inactiva devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	perms, err := rbac.ResolvePermissions(ctx, uc.roleRepo, user.RoleID)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:      user.ID,
		Name:        user.Name,
		Role:        user.RoleName,
		Permissions: perms.Names(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToUserResponse(user, perms),
	}, nil
}

// Me perfil actual del usuario autenticado, con los permisos de su rol.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	perms, err := rbac.ResolvePermissions(ctx, uc.roleRepo, user.RoleID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user, perms), nil
}

// RegisterRoles roles elegibles en el formulario de registro que existen en la base, por nombre.
func (uc *AuthUseCase) RegisterRoles(ctx context.Context) ([]string, error) {
	roles, err := uc.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		if name, ok := authz.CanSelfRegister(r.Name); ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ToUserResponse perfil público. perms nil omite los permisos.
func ToUserResponse(u *entity.User, perms authz.Set) *dto.UserResponse {
	if u == nil {
		return nil
	}
	resp := &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.RoleName,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
	if perms != nil {
		resp.Permissions = perms.Names()
	}
	return resp
}
