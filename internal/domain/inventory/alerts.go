package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/dental-inventario/internal/domain/entity"
)

// DefaultExpiringHorizonDays horizonte por defecto para EXPIRING_SOON.
const DefaultExpiringHorizonDays = 30

// AlertSet conjunto de alertas de un producto (bitset).
type AlertSet uint8

const (
	LowStock AlertSet = 1 << iota
	OutOfStock
	Expired
	ExpiringSoon
)

var alertNames = []struct {
	flag AlertSet
	name string
}{
	{LowStock, "LOW_STOCK"},
	{OutOfStock, "OUT_OF_STOCK"},
	{Expired, "EXPIRED"},
	{ExpiringSoon, "EXPIRING_SOON"},
}

// Has indica si el conjunto contiene todas las alertas de flag.
func (s AlertSet) Has(flag AlertSet) bool { return flag != 0 && s&flag == flag }

// Any indica si el conjunto contiene al menos una de las alertas de flags.
func (s AlertSet) Any(flags AlertSet) bool { return s&flags != 0 }

// Empty indica que no hay alertas.
func (s AlertSet) Empty() bool { return s == 0 }

// Names nombres de las alertas presentes, en orden fijo.
func (s AlertSet) Names() []string {
	names := make([]string, 0, len(alertNames))
	for _, a := range alertNames {
		if s.Has(a.flag) {
			names = append(names, a.name)
		}
	}
	return names
}

func (s AlertSet) String() string { return strings.Join(s.Names(), ",") }

// ParseAlert convierte un nombre (LOW_STOCK, …) en su flag; 0 si no existe.
func ParseAlert(name string) AlertSet {
	for _, a := range alertNames {
		if strings.EqualFold(a.name, name) {
			return a.flag
		}
	}
	return 0
}

// Classifier deriva alertas de stock y vencimiento.
type Classifier struct {
	horizonDays int
	keywords    []string
}

// NewClassifier construye el clasificador; horizonDays <= 0 usa el valor por defecto.
func NewClassifier(horizonDays int) *Classifier {
	if horizonDays <= 0 {
		horizonDays = DefaultExpiringHorizonDays
	}
	kw := make([]string, 0, len(refrigerationKeywords))
	for _, k := range refrigerationKeywords {
		kw = append(kw, Fold(k))
	}
	return &Classifier{horizonDays: horizonDays, keywords: kw}
}

// HorizonDays horizonte configurado para EXPIRING_SOON.
func (c *Classifier) HorizonDays() int { return c.horizonDays }

// Classify devuelve las alertas del producto en la fecha now.
//   - LOW_STOCK: quantity <= minStock (un producto justo en el mínimo ya está marcado).
//   - OUT_OF_STOCK: quantity == 0.
//   - EXPIRED: el día de vencimiento es anterior a hoy.
//   - EXPIRING_SOON: vence hoy o dentro del horizonte.
func (c *Classifier) Classify(now time.Time, p entity.Product) AlertSet {
	var s AlertSet
	if p.Quantity <= p.MinStock {
		s |= LowStock
	}
	if p.Quantity == 0 {
		s |= OutOfStock
	}
	if days, ok := c.DaysUntilExpiration(now, p); ok {
		switch {
		case days < 0:
			s |= Expired
		case days <= c.horizonDays:
			s |= ExpiringSoon
		}
	}
	return s
}

// DaysUntilExpiration días calendario hasta el vencimiento; ok es false si no tiene fecha.
func (c *Classifier) DaysUntilExpiration(now time.Time, p entity.Product) (int, bool) {
	if p.ExpirationDate == nil {
		return 0, false
	}
	return DaysBetween(now, *p.ExpirationDate), true
}

// RequiresRefrigeration marca explícita del catálogo o coincidencia del nombre con el
// vocabulario de insumos refrigerados. Es una heurística: puede haber falsos negativos.
func (c *Classifier) RequiresRefrigeration(p entity.Product) bool {
	if p.RequiresRefrigeration {
		return true
	}
	name := Fold(p.Name)
	for _, k := range c.keywords {
		if strings.Contains(name, k) {
			return true
		}
	}
	return false
}

// refrigerationKeywords insumos dentales que se guardan entre 2 y 8 °C.
var refrigerationKeywords = []string{
	"anestesia",
	"lidocaína",
	"articaína",
	"mepivacaína",
	"prilocaína",
	"epinefrina",
	"adrenalina",
	"composite",
	"resina",
	"adhesivo",
	"bonding",
	"ionómero",
	"silano",
	"grabado ácido",
	"vacuna",
	"insulina",
	"colágeno",
	"plasma",
}
