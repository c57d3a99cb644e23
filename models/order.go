package models

import "time"

// Order statuses, in lifecycle order. Transitions are admin-driven and may
// jump several steps; there is no backward transition or cancellation.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
)

// OrderStatuses lists the valid statuses in lifecycle order.
var OrderStatuses = []string{StatusPending, StatusProcessing, StatusShipped, StatusDelivered}

// ValidOrderStatus reports whether s is one of the four lifecycle statuses.
func ValidOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// Order is a placed order. It is written identically to the global orders
// collection and the owning customer's order history; after placement only
// Status may change, and any status change must land on both copies.
type Order struct {
	OrderID      string     `json:"orderId" bson:"_id"`
	UserID       string     `json:"userId" bson:"userId"`
	UserName     string     `json:"userName" bson:"userName"`
	UserPhone    string     `json:"userPhone" bson:"userPhone"`
	Items        []CartLine `json:"items" bson:"items"`
	TotalItems   int        `json:"totalItems" bson:"totalItems"`
	TotalQty     int        `json:"totalQty" bson:"totalQty"`
	TotalPrice   float64    `json:"totalPrice" bson:"totalPrice"`
	DeliveryType string     `json:"deliveryType" bson:"deliveryType"`
	Address      string     `json:"address" bson:"address"`
	Status       string     `json:"status" bson:"status"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
}
