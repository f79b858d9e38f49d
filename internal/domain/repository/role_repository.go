package repository

import (
	"context"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// RoleRepository roles, permisos y la tabla de unión.
type RoleRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Role, error)
	// GetByName sin distinguir mayúsculas.
	GetByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context) ([]*entity.Role, error)
	Create(ctx context.Context, r *entity.Role) error
	Rename(ctx context.Context, id, name string) error

	ListPermissions(ctx context.Context) ([]*entity.Permission, error)
	// UpsertPermission inserta o actualiza la descripción; deja p.ID con el id persistido.
	UpsertPermission(ctx context.Context, p *entity.Permission) error
	ListRolePermissions(ctx context.Context, roleID string) ([]*entity.Permission, error)
	AttachPermission(ctx context.Context, roleID, permissionID string) error
	DetachPermission(ctx context.Context, roleID, permissionID string) error
}
