package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/ceramic-erp/internal/application/auth"
	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/rbac"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// UserUseCase administración de usuarios: listado, cambio de rol y activación.
type UserUseCase struct {
	repo      repository.UserRepository
	roleRepo  repository.RoleRepository
	validator *validation.Validator
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roleRepo repository.RoleRepository, v *validation.Validator) *UserUseCase {
	return &UserUseCase{repo: repo, roleRepo: roleRepo, validator: v}
}

// List página de usuarios ordenada por nombre.
func (uc *UserUseCase) List(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	page := dto.NewPage(limit, offset)
	users, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, *auth.ToUserResponse(u, nil))
	}
	return &dto.UserListResponse{Items: items, Page: page}, nil
}

// Update aplica los campos presentes. Un usuario no puede desactivarse ni cambiarse el rol a sí mismo.
func (uc *UserUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !validation.ID(id) {
		return nil, domain.ErrUserNotFound
	}
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		name := strings.Join(strings.Fields(*in.Name), " ")
		if name == "" {
			return nil, domain.NewValidationError("name", "es obligatorio")
		}
		u.Name = name
	}
	if in.Role != nil {
		role, err := uc.roleRepo.GetByName(ctx, strings.TrimSpace(*in.Role))
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, domain.NewValidationError("role", "el rol no existe")
		}
		if id == actorID && role.ID != u.RoleID {
			return nil, domain.ErrConflict
		}
		u.RoleID, u.RoleName = role.ID, role.Name
	}
	if in.IsActive != nil {
		if id == actorID && !*in.IsActive {
			return nil, domain.ErrConflict
		}
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	perms, err := rbac.ResolvePermissions(ctx, uc.roleRepo, u.RoleID)
	if err != nil {
		return nil, err
	}
	return auth.ToUserResponse(u, perms), nil
}

// Roles todos los roles con sus permisos.
func (uc *UserUseCase) Roles(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := uc.roleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for _, r := range roles {
		perms, err := rbac.ResolvePermissions(ctx, uc.roleRepo, r.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.RoleResponse{ID: r.ID, Name: r.Name, Permissions: perms.Names()})
	}
	return out, nil
}
