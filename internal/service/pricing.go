package service

import (
	"admin-service/internal/models"

	"github.com/shopspring/decimal"
)

// TaxRate is the flat sales tax applied to every order.
var TaxRate = decimal.RequireFromString("0.16")

type Totals struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals sums unit price × quantity over items and applies TaxRate.
// Arithmetic is exact; both figures are rounded to cents only at the end.
func ComputeTotals(items []models.OrderItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	total := subtotal.Mul(decimal.NewFromInt(1).Add(TaxRate))

	return Totals{
		Subtotal: subtotal.Round(2),
		Total:    total.Round(2),
	}
}
