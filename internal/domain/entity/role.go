package entity

// Role agrupa permisos. Name es único.
type Role struct {
	ID   string
	Name string
}

// Permission capacidad con nombre único (view_sales, create_sale...).
type Permission struct {
	ID          string
	Name        string
	Description string
}

// RolePermission tabla de unión rol ↔ permiso.
type RolePermission struct {
	RoleID       string
	PermissionID string
}
