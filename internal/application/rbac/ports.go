// Package rbac siembra roles, permisos y cuentas iniciales y resuelve los permisos de un rol.
package rbac

import (
	"context"

	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios de roles y usuarios atados a una única transacción.
type TxRunner interface {
	RunRBAC(ctx context.Context, fn func(
		roles repository.RoleRepository,
		users repository.UserRepository,
	) error) error
}
