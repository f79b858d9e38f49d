package ports

import "context"

// ReportCache caché versionada para reportes de solo lectura (panel, índices).
// Cualquier escritura que cambie stock, ventas, compras o caja debe llamar a Bump.
type ReportCache interface {
	// Key compone la clave con la versión vigente; tras Bump las claves anteriores quedan huérfanas.
	Key(ctx context.Context, parts ...string) (string, error)
	// FetchJSON lee dest desde la caché o lo llena con loader y lo guarda.
	FetchJSON(ctx context.Context, key string, dest any, loader func(context.Context) (any, error)) error
	// Bump invalida todas las entradas.
	Bump(ctx context.Context) error
}
