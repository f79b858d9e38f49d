package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// ErrorResponse cuerpo de error HTTP. Fields lleva los mensajes por campo en errores de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// NewPage aplica el tamaño por defecto (50) y el máximo (200).
func NewPage(limit, offset int) PageResponse {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return PageResponse{Limit: limit, Offset: offset}
}
