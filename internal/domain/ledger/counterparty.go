package ledger

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeCounterparty clave de agrupación de clientes/proveedores: recorte de espacios
// y plegado de mayúsculas Unicode. Coincidencia exacta sobre la clave, sin difusos.
func NormalizeCounterparty(name string) string {
	// Caser no es seguro entre goroutines: uno por llamada.
	return cases.Fold().String(strings.TrimSpace(name))
}
