package orderform

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

var (
	ErrIndexOutOfRange = errors.New("line item index out of range")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// Item is one line of the order being built. Price is the catalog price
// copied when the product was chosen.
type Item struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (it Item) LineTotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

func blankItem() Item {
	return Item{Quantity: 1, Price: decimal.Zero}
}

// PriceLookup resolves a product's current catalog price.
type PriceLookup interface {
	Price(productID string) (decimal.Decimal, bool)
}

// Editor keeps the ordered line items. The list is never empty. It is not
// safe for concurrent use; Form serializes access.
type Editor struct {
	prices PriceLookup
	items  []Item
}

func NewEditor(prices PriceLookup) *Editor {
	return &Editor{prices: prices, items: []Item{blankItem()}}
}

func (e *Editor) Items() []Item { return slices.Clone(e.items) }

func (e *Editor) Len() int { return len(e.items) }

// AddItem appends a blank row.
func (e *Editor) AddItem() {
	e.items = append(e.items, blankItem())
}

// RemoveItem drops row i. Removing the last row leaves one blank row.
func (e *Editor) RemoveItem(i int) error {
	if err := e.check(i); err != nil {
		return err
	}
	e.items = slices.Delete(e.items, i, i+1)
	if len(e.items) == 0 {
		e.items = append(e.items, blankItem())
	}
	return nil
}

// SetProduct sets row i's product and snapshots its catalog price, or zero
// when the product is not in the loaded catalog.
func (e *Editor) SetProduct(i int, productID string) error {
	if err := e.check(i); err != nil {
		return err
	}
	price := decimal.Zero
	if e.prices != nil && productID != "" {
		if p, ok := e.prices.Price(productID); ok {
			price = p
		}
	}
	e.items[i].ProductID = productID
	e.items[i].Price = price
	return nil
}

// SetQuantity rejects qty < 1 and leaves the row unchanged.
func (e *Editor) SetQuantity(i, qty int) error {
	if err := e.check(i); err != nil {
		return err
	}
	if qty < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, qty)
	}
	e.items[i].Quantity = qty
	return nil
}

// Total is Σ(price × quantity) over the current rows.
func (e *Editor) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range e.items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// Reset returns the editor to a single blank row.
func (e *Editor) Reset() {
	e.items = []Item{blankItem()}
}

func (e *Editor) check(i int) error {
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(e.items))
	}
	return nil
}

// FormatMoney renders amount with two decimals followed by the currency code.
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}
