// Package catalogfile lee catálogos de baldosas exportados desde hojas de cálculo.
//
// Formato: CSV con cabecera y columnas categoria, nombre, medida, precio, stock, umbral
// (medida y umbral opcionales, en cualquier orden). El separador es ";" si la cabecera lo
// contiene y "," en otro caso. Los precios aceptan coma decimal ("1.234,50").
package catalogfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/domain"
)

// Encoding codificación del archivo.
type Encoding string

const (
	EncodingAuto   Encoding = "auto" // UTF-8 si es válido, si no Windows-1252
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin1"
)

const (
	colCategory  = "categoria"
	colName      = "nombre"
	colSize      = "medida"
	colPrice     = "precio"
	colStock     = "stock"
	colThreshold = "umbral"
)

var requiredColumns = []string{colCategory, colName, colPrice, colStock}

// ParseEncoding acepta utf-8, utf8, latin1, iso-8859-1, windows-1252 y auto.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin1", "iso-8859-1", "iso8859-1", "windows-1252", "cp1252":
		return EncodingLatin1, nil
	}
	return "", fmt.Errorf("codificación desconocida %q: %w", s, domain.ErrInvalidInput)
}

// Read decodifica el catálogo completo. Las líneas vacías se ignoran.
func Read(r io.Reader, enc Encoding) ([]dto.CatalogRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, err := decode(raw, enc)
	if err != nil {
		return nil, err
	}
	text = strings.TrimPrefix(text, "\ufeff")

	firstLine, _, _ := strings.Cut(text, "\n")
	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = ','
	if strings.Contains(firstLine, ";") {
		cr.Comma = ';'
	}
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catálogo vacío: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []dto.CatalogRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		row, err := parseRow(rec, cols)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, nil
}

func decode(raw []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingUTF8:
		if !utf8.Valid(raw) {
			return "", fmt.Errorf("el archivo no es UTF-8 válido: %w", domain.ErrInvalidInput)
		}
		return string(raw), nil
	case EncodingAuto, "":
		if utf8.Valid(raw) {
			return string(raw), nil
		}
	}
	// Excel en español exporta CSV en Windows-1252.
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("faltan columnas %s: %w", strings.Join(missing, ", "), domain.ErrInvalidInput)
	}
	return cols, nil
}

func parseRow(rec []string, cols map[string]int) (dto.CatalogRow, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	row := dto.CatalogRow{
		Category: get(colCategory),
		Name:     get(colName),
		Size:     get(colSize),
	}
	if row.Category == "" || row.Name == "" {
		return row, fmt.Errorf("categoria y nombre son obligatorios: %w", domain.ErrInvalidInput)
	}

	price, err := parsePrice(get(colPrice))
	if err != nil {
		return row, err
	}
	row.Price = price

	stock, err := strconv.Atoi(get(colStock))
	if err != nil || stock < 0 {
		return row, fmt.Errorf("stock inválido %q: %w", get(colStock), domain.ErrInvalidInput)
	}
	row.StockQuantity = stock

	if s := get(colThreshold); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return row, fmt.Errorf("umbral inválido %q: %w", s, domain.ErrInvalidInput)
		}
		row.LowStockThreshold = &n
	}
	return row, nil
}

// parsePrice "1234.5", "1234,50" y "1.234,50".
func parsePrice(raw string) (decimal.Decimal, error) {
	s := strings.TrimPrefix(strings.ReplaceAll(raw, " ", ""), "$")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("precio inválido %q: %w", raw, domain.ErrInvalidInput)
	}
	return d, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
