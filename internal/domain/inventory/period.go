package inventory

import (
	"fmt"
	"time"
)

// Period atajo de período resuelto contra "ahora" al momento de la llamada.
type Period string

const (
	PeriodAllTime    Period = "all-time"
	PeriodToday      Period = "today"
	PeriodLast7Days  Period = "last-7-days"
	PeriodLast30Days Period = "last-30-days"
)

// ParsePeriod interpreta el atajo recibido por query string. Vacío equivale a all-time.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodAllTime:
		return PeriodAllTime, nil
	case PeriodToday, PeriodLast7Days, PeriodLast30Days:
		return Period(s), nil
	}
	return "", fmt.Errorf("período desconocido %q", s)
}

// Match indica si la fecha d cae dentro del período.
// today compara el día calendario como texto YYYY-MM-DD en la zona de now;
// last-N-days va desde now menos N días hasta now inclusive.
func (p Period) Match(d, now time.Time) bool {
	switch p {
	case "", PeriodAllTime:
		return true
	case PeriodToday:
		return d.In(now.Location()).Format(dayLayout) == now.Format(dayLayout)
	case PeriodLast7Days:
		return withinDays(d, now, 7)
	case PeriodLast30Days:
		return withinDays(d, now, 30)
	}
	panic(fmt.Sprintf("inventory: período %q no soportado", string(p)))
}

const dayLayout = "2006-01-02"

func withinDays(d, now time.Time, days int) bool {
	floor := now.AddDate(0, 0, -days)
	return !d.Before(floor) && !d.After(now)
}

// StartOfDay 00:00:00.000 del día de t, en su zona.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay 23:59:59.999 del día de t, en su zona.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// StartOfMonth día 1 a las 00:00 del mes de t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// civilDate descarta hora y zona: una fecha de vencimiento es un día calendario, no un instante.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween días calendario desde from hasta to (negativo si to es anterior).
func DaysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}
