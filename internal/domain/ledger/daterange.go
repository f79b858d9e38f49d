package ledger

import (
	"strings"
	"time"

	"github.com/jhoicas/ceramic-erp/internal/domain"
)

// DateLayout formato de fechas en parámetros de consulta.
const DateLayout = "2006-01-02"

// DateRange rango de fechas inclusivo por día. Cualquiera de los extremos puede faltar.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// NewDateRange trunca a día (UTC) e intercambia los extremos si vienen invertidos.
func NewDateRange(from, to *time.Time) DateRange {
	var r DateRange
	if from != nil {
		f := truncateDay(*from)
		r.From = &f
	}
	if to != nil {
		t := truncateDay(*to)
		r.To = &t
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		r.From, r.To = r.To, r.From
	}
	return r
}

// ParseDateRange interpreta fromDate/toDate (YYYY-MM-DD). Vacío significa sin límite.
func ParseDateRange(from, to string) (DateRange, error) {
	verr := &domain.ValidationError{Fields: map[string]string{}}
	parse := func(field, s string) *time.Time {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		t, err := time.Parse(DateLayout, s)
		if err != nil {
			verr.Fields[field] = "fecha inválida, use YYYY-MM-DD"
			return nil
		}
		return &t
	}
	f := parse("fromDate", from)
	t := parse("toDate", to)
	if len(verr.Fields) > 0 {
		return DateRange{}, verr
	}
	return NewDateRange(f, t), nil
}

// Start inicio inclusivo, si existe.
func (r DateRange) Start() (time.Time, bool) {
	if r.From == nil {
		return time.Time{}, false
	}
	return *r.From, true
}

// EndExclusive medianoche del día siguiente a To, si existe.
func (r DateRange) EndExclusive() (time.Time, bool) {
	if r.To == nil {
		return time.Time{}, false
	}
	return r.To.AddDate(0, 0, 1), true
}

// Contains indica si t cae dentro del rango (To incluido completo).
func (r DateRange) Contains(t time.Time) bool {
	if start, ok := r.Start(); ok && t.Before(start) {
		return false
	}
	if end, ok := r.EndExclusive(); ok && !t.Before(end) {
		return false
	}
	return true
}

// Bounded algún extremo definido.
func (r DateRange) Bounded() bool {
	return r.From != nil || r.To != nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
