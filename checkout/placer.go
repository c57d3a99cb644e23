package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paperpen/cart"
	"paperpen/models"
)

var (
	ErrNotSignedIn    = errors.New("please log in to continue")
	ErrCartEmpty      = errors.New("your cart is empty")
	ErrNoDeliveryType = errors.New("please choose a delivery type")
	ErrNoAddress      = errors.New("please select an address")

	// ErrDuplicateOrderID signals the sequence raced with a concurrent
	// placement; the placer recounts and retries.
	ErrDuplicateOrderID = errors.New("order id already exists")
)

// placeholderPhone stands in when the customer's profile has no phone.
const placeholderPhone = "0000000000"

// OrderStore persists placed orders. PlaceOrder must write the identical
// payload to both the global index and the customer's history, atomically
// where the backend allows, and report ErrDuplicateOrderID on an id clash.
type OrderStore interface {
	CountOrders(ctx context.Context, userID string) (int64, error)
	PlaceOrder(ctx context.Context, order models.Order) error
}

// Customer identifies who is checking out.
type Customer struct {
	UserID string
	Name   string
	Phone  string
}

// ProfileStore resolves the checkout customer's display name and phone.
type ProfileStore interface {
	Customer(ctx context.Context, userID string) (Customer, error)
}

// Placer turns a cart into an order.
type Placer struct {
	Orders   OrderStore
	Profiles ProfileStore
	Cart     *cart.Store
	Now      func() time.Time
}

// GenerateOrderID builds the human-readable order id
// PR-<phone>-<DDMM>-<NNNN>: the customer's phone (or a fixed placeholder),
// the current day and month, and a 4-digit per-customer sequence.
func GenerateOrderID(phone string, now time.Time, seq int64) string {
	if phone == "" {
		phone = placeholderPhone
	}
	return fmt.Sprintf("PR-%s-%02d%02d-%04d", phone, now.Day(), int(now.Month()), seq)
}

// Place validates the cart and writes the order. Each failed precondition
// is a distinct error, leaves no order behind, and never reaches the
// profile or order stores; on success the cart and its local persistence
// are cleared and the finished order returned.
func (p *Placer) Place(ctx context.Context, userID, address string) (models.Order, error) {
	if userID == "" {
		return models.Order{}, ErrNotSignedIn
	}

	owner := cart.Owner{ID: userID, Authed: true}
	lines := p.Cart.Lines(ctx, owner)
	if len(lines) == 0 {
		return models.Order{}, ErrCartEmpty
	}

	deliveryType := lines[0].DeliveryType
	if deliveryType == "" {
		return models.Order{}, ErrNoDeliveryType
	}
	if address == "" {
		return models.Order{}, ErrNoAddress
	}

	customer, err := p.Profiles.Customer(ctx, userID)
	if err != nil {
		return models.Order{}, err
	}

	totalQty := 0
	totalPrice := 0.0
	for _, line := range lines {
		totalQty += line.Quantity
		totalPrice += line.LineTotal()
	}

	now := p.Now()

	// The per-customer sequence is "existing orders + 1". Counting and
	// inserting are separate steps, so a concurrent placement by the same
	// customer can collide on the id; the unique _id catches that and we
	// recount.
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		count, err := p.Orders.CountOrders(ctx, userID)
		if err != nil {
			return models.Order{}, err
		}

		order := models.Order{
			OrderID:      GenerateOrderID(customer.Phone, now, count+1+int64(attempt)),
			UserID:       userID,
			UserName:     customer.Name,
			UserPhone:    customer.Phone,
			Items:        lines,
			TotalItems:   len(lines),
			TotalQty:     totalQty,
			TotalPrice:   totalPrice,
			DeliveryType: deliveryType,
			Address:      address,
			Status:       models.StatusPending,
			CreatedAt:    now,
		}

		err = p.Orders.PlaceOrder(ctx, order)
		if err == nil {
			p.Cart.Clear(ctx, owner)
			return order, nil
		}
		if !errors.Is(err, ErrDuplicateOrderID) {
			return models.Order{}, err
		}
		lastErr = err
	}

	return models.Order{}, lastErr
}
