package domain

import "github.com/shopspring/decimal"

// CartItem pairs a product snapshot with a positive quantity.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return decimal.NewFromFloat(i.Product.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartState is a read-only view of a cart.
type CartState struct {
	Items            []CartItem      `json:"items"`
	Total            decimal.Decimal `json:"total"`
	ItemCount        int             `json:"itemCount"`
	LoadingItems     []int           `json:"loadingItems"`
	IsLoading        bool            `json:"isLoading"`
	LastAddedItem    *Product        `json:"lastAddedItem,omitempty"`
	ShowConfirmation bool            `json:"showConfirmation"`
	Error            string          `json:"error,omitempty"`
}

// CalculateCartTotal sums the line totals of items.
func CalculateCartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CalculateItemCount sums the quantities of items.
func CalculateItemCount(items []CartItem) int {
	var count int
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// FindItemIndex returns the index of the item for productID, or -1.
func FindItemIndex(items []CartItem, productID int) int {
	for i := range items {
		if items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// CartOp names a cart mutation.
type CartOp string

const (
	CartOpAdd    CartOp = "add"
	CartOpRemove CartOp = "remove"
	CartOpUpdate CartOp = "update"
	CartOpClear  CartOp = "clear"
)

// CartChange describes a staged mutation. Items is the projected item list
// once the change is applied.
type CartChange struct {
	SessionID string
	Op        CartOp
	ProductID int
	Quantity  int
	Items     []CartItem
}
