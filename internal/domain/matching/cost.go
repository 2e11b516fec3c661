package matching

import "github.com/shopspring/decimal"

// AverageUnitCost implementa el costo promedio ponderado de una fila de stock
// tras una entrada (alta con costo o traslado entrante):
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock actual negativo (sobregiro) o suma ≤ 0 se toma el costo de la entrada.
func AverageUnitCost(currentQty int64, currentCost decimal.Decimal, inQty int64, inCost decimal.Decimal) decimal.Decimal {
	if currentQty <= 0 {
		return inCost
	}
	cur := decimal.NewFromInt(currentQty)
	in := decimal.NewFromInt(inQty)
	sum := cur.Add(in)
	if sum.LessThanOrEqual(decimal.Zero) {
		return inCost
	}
	num := cur.Mul(currentCost).Add(in.Mul(inCost))
	return num.Div(sum)
}
