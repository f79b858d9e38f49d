package rbac

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/ceramic-erp/internal/domain/authz"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// ResolvePermissions conjunto de permisos efectivo de un rol según la base de datos.
func ResolvePermissions(ctx context.Context, roles repository.RoleRepository, roleID string) (authz.Set, error) {
	perms, err := roles.ListRolePermissions(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("list role permissions: %w", err)
	}
	names := make([]string, 0, len(perms))
	for _, p := range perms {
		names = append(names, p.Name)
	}
	return authz.ParseSet(names), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
