package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
)

func TestParsePeriod(t *testing.T) {
	p, err := inventory.ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, inventory.PeriodAllTime, p)

	p, err = inventory.ParsePeriod("last-7-days")
	require.NoError(t, err)
	assert.Equal(t, inventory.PeriodLast7Days, p)

	_, err = inventory.ParsePeriod("last-year")
	assert.Error(t, err)
}

func TestPeriod_Today(t *testing.T) {
	now := day(2024, 3, 10, 15, 0, 0)

	assert.True(t, inventory.PeriodToday.Match(day(2024, 3, 10, 0, 0, 1), now))
	assert.True(t, inventory.PeriodToday.Match(day(2024, 3, 10, 23, 59, 59), now), "hoy incluye el día completo")
	assert.False(t, inventory.PeriodToday.Match(day(2024, 3, 9, 23, 59, 59), now))
}

func TestPeriod_TodayUsaLaZonaDeNow(t *testing.T) {
	santiago := time.FixedZone("CLT", -3*3600)
	now := time.Date(2024, 3, 10, 22, 0, 0, 0, santiago)
	// 2024-03-11 00:30 UTC es 2024-03-10 21:30 en Santiago
	assert.True(t, inventory.PeriodToday.Match(day(2024, 3, 11, 0, 30, 0), now))
}

func TestPeriod_UltimosDias(t *testing.T) {
	now := day(2024, 3, 10, 15, 0, 0)

	assert.True(t, inventory.PeriodLast7Days.Match(day(2024, 3, 3, 15, 0, 0), now), "el piso es inclusivo")
	assert.False(t, inventory.PeriodLast7Days.Match(day(2024, 3, 3, 14, 59, 59), now))
	assert.True(t, inventory.PeriodLast7Days.Match(now, now), "incluye el momento actual")
	assert.False(t, inventory.PeriodLast7Days.Match(day(2024, 3, 10, 15, 0, 1), now), "no incluye el futuro")

	assert.True(t, inventory.PeriodLast30Days.Match(day(2024, 2, 10, 15, 0, 0), now))
	assert.True(t, inventory.PeriodLast30Days.Match(day(2024, 2, 9, 15, 0, 0), now))
	assert.False(t, inventory.PeriodLast30Days.Match(day(2024, 2, 9, 14, 0, 0), now))
}

func TestFilter_PeriodoSobreCompras(t *testing.T) {
	now := day(2024, 3, 10, 15, 0, 0)
	records := []entity.Purchase{
		purchase("Box 1", "hoy", 1, 10, day(2024, 3, 10, 9, 0, 0)),
		purchase("Box 1", "semana", 1, 10, day(2024, 3, 5, 9, 0, 0)),
		purchase("Box 1", "mes", 1, 10, day(2024, 2, 20, 9, 0, 0)),
		purchase("Box 1", "antiguo", 1, 10, day(2023, 1, 1, 9, 0, 0)),
	}

	count := func(p inventory.Period) int {
		return len(inventory.Filter(records, inventory.Criteria{Period: p}, now))
	}
	assert.Equal(t, 1, count(inventory.PeriodToday))
	assert.Equal(t, 2, count(inventory.PeriodLast7Days))
	assert.Equal(t, 3, count(inventory.PeriodLast30Days))
	assert.Equal(t, 4, count(inventory.PeriodAllTime))
}

func TestDaysBetween_IgnoraLaHora(t *testing.T) {
	assert.Equal(t, 0, inventory.DaysBetween(day(2024, 3, 10, 23, 0, 0), day(2024, 3, 10, 0, 0, 0)))
	assert.Equal(t, 1, inventory.DaysBetween(day(2024, 3, 10, 23, 0, 0), day(2024, 3, 11, 0, 0, 0)))
	assert.Equal(t, -1, inventory.DaysBetween(day(2024, 3, 10, 0, 0, 0), day(2024, 3, 9, 23, 59, 0)))
}
