package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/dental-inventario/internal/application/dto"
	"github.com/jhoicas/dental-inventario/internal/domain"
	"github.com/jhoicas/dental-inventario/internal/domain/entity"
	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
)

const dateLayout = "2006-01-02"

// PeriodCriteria traduce la selección de período y área del query string a cláusulas del motor.
// Las fechas se interpretan en la zona de loc.
func PeriodCriteria(q dto.PeriodQuery, loc *time.Location) (inventory.Criteria, error) {
	p, err := inventory.ParsePeriod(q.Period)
	if err != nil {
		return inventory.Criteria{}, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
	}
	c := inventory.Criteria{Period: p}
	if q.Since != "" {
		t, err := time.ParseInLocation(dateLayout, q.Since, loc)
		if err != nil {
			return inventory.Criteria{}, fmt.Errorf("since: %w", domain.ErrInvalidInput)
		}
		c.Since = &t
	}
	if q.Until != "" {
		t, err := time.ParseInLocation(dateLayout, q.Until, loc)
		if err != nil {
			return inventory.Criteria{}, fmt.Errorf("until: %w", domain.ErrInvalidInput)
		}
		c.Until = &t
	}
	if c.Since != nil && c.Until != nil && c.Until.Before(*c.Since) {
		return inventory.Criteria{}, fmt.Errorf("until anterior a since: %w", domain.ErrInvalidInput)
	}
	if q.Area != "" {
		c.Equals = append(c.Equals, inventory.EqualsClause{Field: entity.FieldArea, Value: q.Area})
	}
	return c, nil
}
