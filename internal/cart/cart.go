package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one product entry in a terminal's cart. Price and name are
// snapshotted from the catalog at add time.
type Line struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Cart is the mutable working state of one terminal between commits.
type Cart struct {
	OwnerID         uuid.UUID       `json:"owner_id"`
	TerminalID      string          `json:"terminal_id"`
	Lines           []Line          `json:"lines"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	CustomerName    string          `json:"customer_name"`
}

// Totals is the derived pricing summary of a cart.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeTotals derives subtotal, discount amount, and total from the lines.
// The discount applies to the whole cart, never per line.
func ComputeTotals(lines []Line, discountPercent decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	discountAmount := subtotal.Mul(discountPercent).Div(oneHundred)
	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          subtotal.Sub(discountAmount),
	}
}

// Totals derives the cart's pricing summary.
func (c *Cart) Totals() Totals {
	return ComputeTotals(c.Lines, c.DiscountPercent)
}

// FindLine returns the line for the product, or nil.
func (c *Cart) FindLine(productID uuid.UUID) *Line {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// RemoveLine drops the product's line if present.
func (c *Cart) RemoveLine(productID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Reset clears lines, discount, and customer name after a commit.
func (c *Cart) Reset() {
	c.Lines = nil
	c.DiscountPercent = decimal.Zero
	c.CustomerName = ""
}
