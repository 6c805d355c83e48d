package inventory

import "github.com/shopspring/decimal"

// WeightedUnitPrice costo promedio ponderado tras una entrada de stock.
// Nuevo = ((stock * precio) + (cantidad * precioCompra)) / (stock + cantidad), redondeado a 2 decimales.
func WeightedUnitPrice(stock int, price decimal.Decimal, qty int, purchasePrice decimal.Decimal) decimal.Decimal {
	if stock < 0 {
		stock = 0
	}
	sum := stock + qty
	if sum <= 0 {
		return decimal.Zero
	}
	num := price.Mul(decimal.NewFromInt(int64(stock))).Add(purchasePrice.Mul(decimal.NewFromInt(int64(qty))))
	return num.Div(decimal.NewFromInt(int64(sum))).Round(2)
}
