package models

import (
	"strconv"
	"strings"
	"unicode"
)

// Order is the immutable input to the delivery-assignment stage,
// owned by the upstream order service.
type Order struct {
	Oid          string      `json:"oid"           validate:"required"`
	CustomerName string      `json:"customer_name" validate:"required"`
	OrderStatus  string      `json:"order_status"`
	Items        []OrderItem `json:"items"         validate:"required,min=1,dive"`
}

type OrderItem struct {
	Oiid        string `json:"oiid"         validate:"required"`
	ProductName string `json:"product_name" validate:"required_without=Product"`
	// Product is a historical alias for ProductName still emitted by
	// older upstream records.
	Product   string  `json:"product,omitempty"`
	NetWeight float64 `json:"net_weight"   validate:"gte=0"`
	NumBoxes  string  `json:"num_boxes"`
}

// Name returns the product name, honoring the legacy field.
func (i OrderItem) Name() string {
	if i.ProductName != "" {
		return i.ProductName
	}
	return i.Product
}

// TotalBoxes parses the free-text quantity descriptor ("12 boxes",
// "7 bags") into the unit count that CT ranges must partition.
// Returns 0 when no leading number can be found.
func (i OrderItem) TotalBoxes() int {
	s := strings.TrimSpace(i.NumBoxes)
	end := 0
	for end < len(s) && unicode.IsDigit(rune(s[end])) {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
