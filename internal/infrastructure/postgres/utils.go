package postgres

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation 23503: la fila está referenciada o la referencia no existe.
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isInvalidTextRepresentation 22P02: p. ej. un id que no es UUID en una columna UUID.
func isInvalidTextRepresentation(err error) bool {
	return pgCode(err) == "22P02"
}

// noRow indica que la búsqueda por id no encontró nada. Un id mal formado no puede existir.
func noRow(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// nullIfEmpty para columnas UUID opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// rangeBounds convierte los extremos de un rango en parámetros (nil = sin límite).
func rangeBounds(start time.Time, hasStart bool, end time.Time, hasEnd bool) (any, any) {
	var from, to any
	if hasStart {
		from = start
	}
	if hasEnd {
		to = end
	}
	return from, to
}
