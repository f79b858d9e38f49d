package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.RoleRepository = (*RoleRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ view }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.write(func(st *state) error {
		email := normalizeEmail(u.Email)
		for _, existing := range st.users {
			if existing.Email == email {
				return domain.ErrEmailAlreadyExists
			}
		}
		if _, ok := st.roles[u.RoleID]; !ok {
			return domain.ErrNotFound
		}
		cp := *u
		cp.Email = email
		st.users[u.ID] = cp
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = st.userCopy(u)
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	email = normalizeEmail(email)
	var out *entity.User
	err := r.read(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				out = st.userCopy(u)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	var all []*entity.User
	err := r.read(func(st *state) error {
		for _, u := range st.users {
			all = append(all, st.userCopy(u))
		}
		return nil
	})
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].Email < all[j].Email
	})
	return page(all, limit, offset), err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.write(func(st *state) error {
		cur, ok := st.users[u.ID]
		if !ok {
			return domain.ErrUserNotFound
		}
		if _, ok := st.roles[u.RoleID]; !ok {
			return domain.ErrNotFound
		}
		cur.Name = u.Name
		cur.PasswordHash = u.PasswordHash
		cur.RoleID = u.RoleID
		cur.IsActive = u.IsActive
		cur.UpdatedAt = u.UpdatedAt
		st.users[u.ID] = cur
		return nil
	})
}

func (st *state) userCopy(u entity.User) *entity.User {
	if role, ok := st.roles[u.RoleID]; ok {
		u.RoleName = role.Name
	}
	return &u
}

// RoleRepo roles y permisos en memoria.
type RoleRepo struct{ view }

func (r *RoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	var out *entity.Role
	err := r.read(func(st *state) error {
		if role, ok := st.roles[id]; ok {
			out = &role
		}
		return nil
	})
	return out, err
}

func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	var out *entity.Role
	err := r.read(func(st *state) error {
		for _, role := range st.roles {
			if strings.EqualFold(role.Name, name) {
				role := role
				out = &role
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *RoleRepo) List(_ context.Context) ([]*entity.Role, error) {
	var out []*entity.Role
	err := r.read(func(st *state) error {
		for _, role := range st.roles {
			role := role
			out = append(out, &role)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	if role.ID == "" {
		role.ID = uuid.New().String()
	}
	return r.write(func(st *state) error {
		for _, existing := range st.roles {
			if existing.Name == role.Name {
				return domain.ErrDuplicate
			}
		}
		st.roles[role.ID] = *role
		return nil
	})
}

func (r *RoleRepo) Rename(_ context.Context, id, name string) error {
	return r.write(func(st *state) error {
		role, ok := st.roles[id]
		if !ok {
			return domain.ErrNotFound
		}
		for otherID, existing := range st.roles {
			if otherID != id && existing.Name == name {
				return domain.ErrDuplicate
			}
		}
		role.Name = name
		st.roles[id] = role
		return nil
	})
}

func (r *RoleRepo) ListPermissions(_ context.Context) ([]*entity.Permission, error) {
	var out []*entity.Permission
	err := r.read(func(st *state) error {
		for _, p := range st.permissions {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sortPermissions(out)
	return out, err
}

func (r *RoleRepo) UpsertPermission(_ context.Context, p *entity.Permission) error {
	return r.write(func(st *state) error {
		for id, existing := range st.permissions {
			if existing.Name == p.Name {
				existing.Description = p.Description
				st.permissions[id] = existing
				p.ID = id
				return nil
			}
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		st.permissions[p.ID] = *p
		return nil
	})
}

func (r *RoleRepo) ListRolePermissions(_ context.Context, roleID string) ([]*entity.Permission, error) {
	var out []*entity.Permission
	err := r.read(func(st *state) error {
		for permID := range st.rolePerms[roleID] {
			if p, ok := st.permissions[permID]; ok {
				out = append(out, &p)
			}
		}
		return nil
	})
	sortPermissions(out)
	return out, err
}

func (r *RoleRepo) AttachPermission(_ context.Context, roleID, permissionID string) error {
	return r.write(func(st *state) error {
		if _, ok := st.roles[roleID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.permissions[permissionID]; !ok {
			return domain.ErrNotFound
		}
		if st.rolePerms[roleID] == nil {
			st.rolePerms[roleID] = map[string]struct{}{}
		}
		st.rolePerms[roleID][permissionID] = struct{}{}
		return nil
	})
}

func (r *RoleRepo) DetachPermission(_ context.Context, roleID, permissionID string) error {
	return r.write(func(st *state) error {
		delete(st.rolePerms[roleID], permissionID)
		return nil
	})
}

func sortPermissions(list []*entity.Permission) {
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
