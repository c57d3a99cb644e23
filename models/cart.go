package models

import "time"

// SelectedOptions carries the color/size a customer picked for a cart line.
// Either field may be empty when the product declares no such options.
type SelectedOptions struct {
	Color string `json:"color,omitempty" bson:"color,omitempty"`
	Size  string `json:"size,omitempty" bson:"size,omitempty"`
}

// CartLine is one product's entry in a cart. Product fields are a snapshot
// taken at add time, not a live reference, so later catalog edits do not
// retroactively change carts. Quantity is always >= 1 and there is at most
// one line per product id.
type CartLine struct {
	UserID          string          `json:"userId" bson:"userId"`
	ProductID       string          `json:"productId" bson:"productId"`
	Name            string          `json:"name" bson:"name"`
	Category        string          `json:"category" bson:"category"`
	Price           float64         `json:"price" bson:"price"`
	Image           string          `json:"image" bson:"image"`
	Description     string          `json:"description,omitempty" bson:"description,omitempty"`
	Colors          []string        `json:"colors,omitempty" bson:"colors,omitempty"`
	Sizes           []string        `json:"sizes,omitempty" bson:"sizes,omitempty"`
	SelectedOptions SelectedOptions `json:"selectedOptions" bson:"selectedOptions"`
	Quantity        int             `json:"quantity" bson:"quantity"`
	DeliveryType    string          `json:"deliveryType" bson:"deliveryType"`
	AddedAt         time.Time       `json:"addedAt" bson:"addedAt"`
}

// LineTotal is the line's price contribution to the cart total.
func (l CartLine) LineTotal() float64 {
	qty := l.Quantity
	if qty < 1 {
		qty = 1
	}
	return l.Price * float64(qty)
}
