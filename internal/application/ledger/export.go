package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
	"unicode"

	domledger "github.com/jhoicas/ceramic-erp/internal/domain/ledger"
)

const (
	ContentTypeCSV = "text/csv"
	ContentTypePDF = "application/pdf"

	exportDateLayout = "2006-01-02 15:04:05"
)

// ErrPDFUnavailable no hay generador PDF configurado.
var ErrPDFUnavailable = errors.New("exportación PDF no disponible")

// ExportFile archivo listo para descargar.
type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}

var csvHeader = []string{"Date", "Type", "Payment Type", "Total", "Settled", "Pending", "Items", "Quantity"}

// ExportCSV estado de cuenta en CSV, filas de la más antigua a la más reciente.
func (uc *StatementUseCase) ExportCSV(ctx context.Context, enterpriseName, from, to string) (*ExportFile, error) {
	name, rng, err := parseQuery(enterpriseName, from, to)
	if err != nil {
		return nil, err
	}
	st, err := uc.build(ctx, name, rng)
	if err != nil {
		return nil, err
	}
	content, err := EncodeCSV(st)
	if err != nil {
		return nil, err
	}
	return &ExportFile{Name: FileName(name, rng, "csv"), ContentType: ContentTypeCSV, Content: content}, nil
}

// ExportPDF mismo estado de cuenta renderizado como PDF.
func (uc *StatementUseCase) ExportPDF(ctx context.Context, enterpriseName, from, to string) (*ExportFile, error) {
	if uc.pdf == nil {
		return nil, ErrPDFUnavailable
	}
	name, rng, err := parseQuery(enterpriseName, from, to)
	if err != nil {
		return nil, err
	}
	st, err := uc.build(ctx, name, rng)
	if err != nil {
		return nil, err
	}
	content, err := uc.pdf.RenderStatement(ctx, st)
	if err != nil {
		return nil, err
	}
	return &ExportFile{Name: FileName(name, rng, "pdf"), ContentType: ContentTypePDF, Content: content}, nil
}

// EncodeCSV serializa las filas con importes de dos decimales y punto fijo.
func EncodeCSV(st domledger.Statement) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range st.Chronological() {
		rec := []string{
			r.Date.Format(exportDateLayout),
			string(r.Kind),
			string(r.PaymentType),
			r.Total.StringFixed(2),
			r.Settled.StringFixed(2),
			r.Pending.StringFixed(2),
			strconv.Itoa(r.ItemsCount),
			strconv.Itoa(r.TotalQuantity),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName ledger_<nombre>_<desde|all>_<hasta|all>.<ext>
func FileName(enterpriseName string, rng domledger.DateRange, ext string) string {
	from, to := "all", "all"
	if rng.From != nil {
		from = rng.From.Format("20060102")
	}
	if rng.To != nil {
		to = rng.To.Format("20060102")
	}
	return "ledger_" + SafeName(enterpriseName) + "_" + from + "_" + to + "." + ext
}

// SafeName parte el nombre en los caracteres no válidos para un archivo y une los trozos con "_".
func SafeName(name string) string {
	parts := strings.FieldsFunc(strings.TrimSpace(name), func(r rune) bool {
		return unicode.IsControl(r) || strings.ContainsRune(`<>:"/\|?*`, r)
	})
	safe := strings.Join(parts, "_")
	if strings.TrimSpace(safe) == "" {
		return "enterprise"
	}
	return safe
}
