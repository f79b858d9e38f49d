package rbac

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ceramic-erp/internal/domain/authz"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
	"github.com/jhoicas/ceramic-erp/pkg/logger"
)

// BootstrapUser cuenta que el sembrado garantiza en cada ejecución.
type BootstrapUser struct {
	Name     string
	Email    string
	Role     string
	Password string // solo se usa al crearla
}

// DefaultBootstrapUsers dueño del sistema y usuario de ventas.
func DefaultBootstrapUsers(adminPassword, userPassword string) []BootstrapUser {
	return []BootstrapUser{
		{Name: "System Owner", Email: "admin@erp.com", Role: authz.RoleSuperAdmin, Password: adminPassword},
		{Name: "ERP Sales User", Email: "user@erp.com", Role: authz.RoleSalesExecutive, Password: userPassword},
	}
}

// SeedReport cambios aplicados; todo en cero significa que la base ya estaba al día.
type SeedReport struct {
	PermissionsCreated int
	RolesCreated       int
	RolesRenamed       int
	GrantsAdded        int
	GrantsRemoved      int
	UsersCreated       int
	UsersUpdated       int
}

// Changed indica si la ejecución modificó algo.
func (r SeedReport) Changed() bool {
	return r != SeedReport{}
}

// Seeder sembrado idempotente del control de acceso.
type Seeder struct {
	tx    TxRunner
	users []BootstrapUser
	log   *logger.Logger
	now   func() time.Time
}

// NewSeeder construye el sembrador. log puede ser nil.
func NewSeeder(tx TxRunner, users []BootstrapUser, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{tx: tx, users: users, log: log, now: time.Now}
}

// Seed deja permisos, roles, matriz rol → permisos y cuentas iniciales en el estado esperado.
// Todo ocurre en una transacción.
func (s *Seeder) Seed(ctx context.Context) (SeedReport, error) {
	var rep SeedReport
	err := s.tx.RunRBAC(ctx, func(roles repository.RoleRepository, users repository.UserRepository) error {
		rep = SeedReport{}
		permIDs, err := s.seedPermissions(ctx, roles, &rep)
		if err != nil {
			return err
		}
		roleIDs, err := s.seedRoles(ctx, roles, &rep)
		if err != nil {
			return err
		}
		if err := s.seedGrants(ctx, roles, roleIDs, permIDs, &rep); err != nil {
			return err
		}
		return s.seedUsers(ctx, users, roleIDs, &rep)
	})
	if err != nil {
		return SeedReport{}, fmt.Errorf("rbac seed: %w", err)
	}
	s.log.Info().
		Int("permissions_created", rep.PermissionsCreated).
		Int("roles_created", rep.RolesCreated).
		Int("roles_renamed", rep.RolesRenamed).
		Int("grants_added", rep.GrantsAdded).
		Int("grants_removed", rep.GrantsRemoved).
		Int("users_created", rep.UsersCreated).
		Int("users_updated", rep.UsersUpdated).
		Msg("control de acceso sembrado")
	return rep, nil
}

func (s *Seeder) seedPermissions(ctx context.Context, roles repository.RoleRepository, rep *SeedReport) (map[authz.Permission]string, error) {
	existing, err := roles.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[p.Name] = struct{}{}
	}
	ids := make(map[authz.Permission]string, len(authz.Definitions))
	for _, d := range authz.Definitions {
		p := &entity.Permission{Name: string(d.Permission), Description: d.Description}
		if err := roles.UpsertPermission(ctx, p); err != nil {
			return nil, fmt.Errorf("upsert permission %s: %w", d.Permission, err)
		}
		if _, ok := known[p.Name]; !ok {
			rep.PermissionsCreated++
		}
		ids[d.Permission] = p.ID
	}
	return ids, nil
}

// seedRoles un nombre vigente gana; si falta, se renombra el rol heredado; si tampoco existe, se crea.
func (s *Seeder) seedRoles(ctx context.Context, roles repository.RoleRepository, rep *SeedReport) (map[string]string, error) {
	legacyFor := make(map[string]string, len(authz.LegacyRoleNames))
	for legacy, current := range authz.LegacyRoleNames {
		legacyFor[current] = legacy
	}
	ids := make(map[string]string, len(authz.RoleNames))
	for _, name := range authz.RoleNames {
		role, err := roles.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if role != nil {
			ids[name] = role.ID
			continue
		}
		if legacy, ok := legacyFor[name]; ok {
			old, err := roles.GetByName(ctx, legacy)
			if err != nil {
				return nil, err
			}
			if old != nil {
				if err := roles.Rename(ctx, old.ID, name); err != nil {
					return nil, fmt.Errorf("rename role %s: %w", legacy, err)
				}
				rep.RolesRenamed++
				ids[name] = old.ID
				continue
			}
		}
		role = &entity.Role{ID: uuid.New().String(), Name: name}
		if err := roles.Create(ctx, role); err != nil {
			return nil, fmt.Errorf("create role %s: %w", name, err)
		}
		rep.RolesCreated++
		ids[name] = role.ID
	}
	return ids, nil
}

func (s *Seeder) seedGrants(ctx context.Context, roles repository.RoleRepository, roleIDs map[string]string, permIDs map[authz.Permission]string, rep *SeedReport) error {
	for roleName, perms := range authz.DefaultMatrix() {
		roleID, ok := roleIDs[roleName]
		if !ok {
			continue
		}
		target := make(map[string]struct{}, len(perms))
		for _, p := range perms {
			target[permIDs[p]] = struct{}{}
		}
		current, err := roles.ListRolePermissions(ctx, roleID)
		if err != nil {
			return err
		}
		have := make(map[string]struct{}, len(current))
		for _, p := range current {
			have[p.ID] = struct{}{}
			if _, keep := target[p.ID]; keep {
				continue
			}
			if err := roles.DetachPermission(ctx, roleID, p.ID); err != nil {
				return fmt.Errorf("detach %s from %s: %w", p.Name, roleName, err)
			}
			rep.GrantsRemoved++
		}
		for permID := range target {
			if _, ok := have[permID]; ok {
				continue
			}
			if err := roles.AttachPermission(ctx, roleID, permID); err != nil {
				return fmt.Errorf("attach permission to %s: %w", roleName, err)
			}
			rep.GrantsAdded++
		}
	}
	return nil
}

// seedUsers crea las cuentas que faltan; en las existentes fuerza nombre, rol y activo, nunca la contraseña.
func (s *Seeder) seedUsers(ctx context.Context, users repository.UserRepository, roleIDs map[string]string, rep *SeedReport) error {
	now := s.now()
	for _, b := range s.users {
		roleID, ok := roleIDs[b.Role]
		if !ok {
			continue
		}
		u, err := users.GetByEmail(ctx, b.Email)
		if err != nil {
			return err
		}
		if u == nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(b.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u = &entity.User{
				ID:           uuid.New().String(),
				Name:         b.Name,
				Email:        normalizeEmail(b.Email),
				PasswordHash: string(hash),
				RoleID:       roleID,
				IsActive:     true,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := users.Create(ctx, u); err != nil {
				return fmt.Errorf("create user %s: %w", b.Email, err)
			}
			rep.UsersCreated++
			continue
		}
		if u.Name == b.Name && u.RoleID == roleID && u.IsActive {
			continue
		}
		u.Name, u.RoleID, u.IsActive, u.UpdatedAt = b.Name, roleID, true, now
		if err := users.Update(ctx, u); err != nil {
			return fmt.Errorf("update user %s: %w", b.Email, err)
		}
		rep.UsersUpdated++
	}
	return nil
}
