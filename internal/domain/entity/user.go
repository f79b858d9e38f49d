package entity

import "time"

// User usuario del sistema. Tiene exactamente un rol.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt
	RoleID       string
	RoleName     string // solo lectura, resuelto por JOIN
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
