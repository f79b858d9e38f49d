package dto

// UpdateUserRequest cuerpo de PATCH /api/users/:id. Campos nil no cambian.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=120"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UserListResponse listado paginado.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// RoleResponse rol con sus permisos.
type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
