// Package pdf genera el estado de cuenta del libro mayor en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + rango       │  Fecha de emisión          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ventas / Compras / Cobrado / Pagado / Pendientes   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Pago | Total | Liquidado | Pendiente  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: conteo de transacciones                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ceramic-erp/internal/domain/ledger"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ledger.PDFRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
	now     func() time.Time
}

// NewMarotoPDFGenerator construye el generador. company aparece como autor del documento.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company, now: time.Now}
}

// RenderStatement genera el PDF y devuelve sus bytes. Filas en orden cronológico.
func (g *MarotoPDFGenerator) RenderStatement(_ context.Context, st ledger.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta "+st.EnterpriseName, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(st, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(st.Chronological())...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(st ledger.Statement, issued time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(st.EnterpriseName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Periodo: "+rangeLabel(st.Range), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+issued.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// summaryRow: lo que la empresa nos compró a la izquierda, lo que le compramos a la derecha.
func summaryRow(st ledger.Statement) core.Row {
	block := func(title string, lines [][2]string) []core.Col {
		labels := col.New(3).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}))
		values := col.New(3)
		for i, l := range lines {
			top := float64(6 + 5*i)
			labels.Add(text.New(l[0], props.Text{Style: fontstyle.Bold, Size: 8, Top: top}))
			values.Add(text.New(l[1], props.Text{Size: 8, Align: align.Right, Top: top, Right: 2}))
		}
		return []core.Col{labels, values}
	}

	sales := block("VENTAS", [][2]string{
		{"Total vendido:", money(st.TotalEarned)},
		{"Cobrado:", money(st.TotalReceived)},
		{"Por cobrar:", money(st.PendingReceivable)},
	})
	purchases := block("COMPRAS", [][2]string{
		{"Total comprado:", money(st.TotalPurchaseCost)},
		{"Pagado:", money(st.TotalPaidOut)},
		{"Por pagar:", money(st.PendingPayable)},
	})
	return row.New(24).Add(append(sales, purchases...)...)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("Pago", 1, align.Left),
		h("Total", 2, align.Right),
		h("Liquidado", 2, align.Right),
		h("Pendiente", 2, align.Right),
		h("Ítems", 1, align.Center),
		h("Cant.", 1, align.Center),
	)
}

func tableRows(rows []ledger.StatementRow) []core.Row {
	if len(rows) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin transacciones en el periodo.", props.Text{
				Size: 8, Align: align.Center, Top: 2, Color: colorGray,
			}),
		))}
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(7).Add(
			cell(r.Date.Format("02/01/2006 15:04"), 2, align.Left),
			cell(kindLabel(r.Kind), 1, align.Left),
			cell(string(r.PaymentType), 1, align.Left),
			cell(money(r.Total), 2, align.Right),
			cell(money(r.Settled), 2, align.Right),
			cell(money(r.Pending), 2, align.Right),
			cell(fmt.Sprint(r.ItemsCount), 1, align.Center),
			cell(fmt.Sprint(r.TotalQuantity), 1, align.Center),
		))
	}
	return out
}

func footerRow(st ledger.Statement) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d ventas y %d compras en el periodo.",
			st.SalesTransactions, st.PurchaseTransactions,
		), props.Text{Size: 7, Color: colorGray, Top: 3}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func kindLabel(k ledger.Kind) string {
	switch k {
	case ledger.KindSale:
		return "Venta"
	case ledger.KindPurchase:
		return "Compra"
	default:
		return string(k)
	}
}

func rangeLabel(rng ledger.DateRange) string {
	from, to := "inicio", "hoy"
	if rng.From != nil {
		from = rng.From.Format("02/01/2006")
	}
	if rng.To != nil {
		to = rng.To.Format("02/01/2006")
	}
	return from + " - " + to
}

// money "$1.234,50": miles con punto y dos decimales con coma.
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "$" + formatThousands(intPart) + "," + frac
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
