package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/dental-inventario/internal/domain/inventory"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"1500":     "1500",
		"$ 1500":   "1500",
		"12,5":     "12.5",
		"  990.90": "990.9",
		"":         "0",
		"abc":      "0",
		"-20":      "0",
		"1.500,00": "0",
	}
	for in, want := range cases {
		assertDecimal(t, want, inventory.ParseAmount(in), "entrada %q", in)
	}
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, 12, inventory.ParseQuantity(" 12 "))
	assert.Equal(t, 0, inventory.ParseQuantity("doce"))
	assert.Equal(t, 0, inventory.ParseQuantity("-3"))
	assert.Equal(t, 0, inventory.ParseQuantity("2.5"))
}

func TestWeightedUnitPrice(t *testing.T) {
	// 10 u a 100 + 10 u a 200 → 150
	assertDecimal(t, "150", inventory.WeightedUnitPrice(10, decimal.NewFromInt(100), 10, decimal.NewFromInt(200)))
	// sin stock previo el precio es el de compra
	assertDecimal(t, "333.33", inventory.WeightedUnitPrice(0, decimal.NewFromInt(1), 3, decimal.RequireFromString("333.33")))
	assertDecimal(t, "0", inventory.WeightedUnitPrice(0, decimal.Zero, 0, decimal.NewFromInt(5)))
	// 1 u a 10 + 2 u a 20 → 16.666… → 16.67
	assertDecimal(t, "16.67", inventory.WeightedUnitPrice(1, decimal.NewFromInt(10), 2, decimal.NewFromInt(20)))
}
