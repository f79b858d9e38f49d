package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo roles, permisos y role_permissions.
type RoleRepo struct {
	q Querier
}

func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.getOne(ctx, `SELECT id, name FROM roles WHERE id = $1`, id)
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.getOne(ctx, `SELECT id, name FROM roles WHERE lower(name) = lower($1)`, name)
}

func (r *RoleRepo) getOne(ctx context.Context, query, arg string) (*entity.Role, error) {
	var role entity.Role
	if err := r.q.QueryRow(ctx, query, arg).Scan(&role.ID, &role.Name); err != nil {
		if noRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	if _, err := r.q.Exec(ctx, `INSERT INTO roles (id, name) VALUES ($1, $2)`, role.ID, role.Name); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *RoleRepo) Rename(ctx context.Context, id, name string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE roles SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("rename role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoleRepo) ListPermissions(ctx context.Context) ([]*entity.Permission, error) {
	return r.listPermissions(ctx, `SELECT id, name, description FROM permissions ORDER BY name`)
}

func (r *RoleRepo) UpsertPermission(ctx context.Context, p *entity.Permission) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO permissions (id, name, description) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
		RETURNING id`, p.ID, p.Name, p.Description,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("upsert permission: %w", err)
	}
	return nil
}

func (r *RoleRepo) ListRolePermissions(ctx context.Context, roleID string) ([]*entity.Permission, error) {
	return r.listPermissions(ctx, `
		SELECT p.id, p.name, p.description
		FROM permissions p JOIN role_permissions rp ON rp.permission_id = p.id
		WHERE rp.role_id = $1 ORDER BY p.name`, roleID)
}

func (r *RoleRepo) listPermissions(ctx context.Context, query string, args ...any) ([]*entity.Permission, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Permission
	for rows.Next() {
		var p entity.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *RoleRepo) AttachPermission(ctx context.Context, roleID, permissionID string) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, roleID, permissionID)
	if err != nil {
		return fmt.Errorf("attach permission: %w", err)
	}
	return nil
}

func (r *RoleRepo) DetachPermission(ctx context.Context, roleID, permissionID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1 AND permission_id = $2`, roleID, permissionID)
	if err != nil {
		return fmt.Errorf("detach permission: %w", err)
	}
	return nil
}
