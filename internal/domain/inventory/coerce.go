package inventory

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount interpreta un monto escrito a mano ("$ 1500", "12,5").
// Un valor ilegible o negativo se toma como cero: los reportes nunca fallan por un precio mal cargado.
func ParseAmount(s string) decimal.Decimal {
	s = strings.NewReplacer("$", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ParseQuantity igual que ParseAmount para cantidades enteras.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
