package cart

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"paperpen/models"
)

var (
	ErrNotSignedIn = errors.New("sign in to choose a delivery type")
	ErrBadQuantity = errors.New("quantity must be at least 1")
)

// Owner identifies whose cart an operation touches. Anonymous visitors get
// device-scoped carts keyed by a client session id; those are kept locally
// only and never mirrored to the per-user remote store.
type Owner struct {
	ID     string
	Authed bool
}

// Options is what the product page sends along with an add.
type Options struct {
	Color    string `json:"color,omitempty"`
	Size     string `json:"size,omitempty"`
	Quantity int    `json:"quantity,omitempty"`
}

// Update is a partial line update. Nil fields are left untouched.
type Update struct {
	Quantity     *int                    `json:"quantity,omitempty"`
	Options      *models.SelectedOptions `json:"selectedOptions,omitempty"`
	DeliveryType *string                 `json:"deliveryType,omitempty"`
}

// Local is the device-local persistence layer: the whole cart serialized
// under one key. Writes happen synchronously on every mutation so the cart
// survives a reload.
type Local interface {
	Save(ctx context.Context, ownerID string, lines map[string]models.CartLine) error
	Load(ctx context.Context, ownerID string) (map[string]models.CartLine, error)
	Delete(ctx context.Context, ownerID string) error
}

// Mirror is the per-user remote store. Mirroring is best-effort and
// line-by-line; a failed write leaves local state authoritative.
type Mirror interface {
	SaveLine(ctx context.Context, ownerID string, line models.CartLine) error
	DeleteLine(ctx context.Context, ownerID, productID string) error
	Clear(ctx context.Context, ownerID string) error
}

// Store is the cart state machine. One instance owns all cart state for the
// process; every view mutates carts through its operations, never through
// the persistence layers directly. In-memory state updates synchronously,
// remote mirroring is fire-and-forget.
type Store struct {
	mu     sync.Mutex
	carts  map[string]map[string]models.CartLine
	loaded map[string]bool

	local  Local
	mirror Mirror
	now    func() time.Time

	// called when a remote mirror write fails; overridable in tests
	onSyncError func(ownerID string, err error)
	// how mirror writes are scheduled; tests swap in a synchronous runner
	spawn func(fn func())
}

func NewStore(local Local, mirror Mirror) *Store {
	return &Store{
		carts:  make(map[string]map[string]models.CartLine),
		loaded: make(map[string]bool),
		local:  local,
		mirror: mirror,
		now:    time.Now,
		onSyncError: func(ownerID string, err error) {
			log.Printf("cart sync failed for %s: %v", ownerID, err)
		},
		spawn: func(fn func()) { go fn() },
	}
}

// ensureLoaded rehydrates an owner's cart from local persistence the first
// time it is touched. Callers hold s.mu.
func (s *Store) ensureLoaded(ctx context.Context, ownerID string) map[string]models.CartLine {
	if !s.loaded[ownerID] {
		s.loaded[ownerID] = true
		if lines, err := s.local.Load(ctx, ownerID); err != nil {
			log.Printf("cart rehydrate failed for %s: %v", ownerID, err)
		} else if len(lines) > 0 {
			s.carts[ownerID] = lines
		}
	}
	if s.carts[ownerID] == nil {
		s.carts[ownerID] = make(map[string]models.CartLine)
	}
	return s.carts[ownerID]
}

// Add puts a product in the cart, or updates the existing line when the
// product is already there: re-adding replaces the quantity with the
// requested one (it never sums), replaces the selected options, and keeps
// whatever delivery type the line already carried. At most one line ever
// exists per product id.
func (s *Store) Add(ctx context.Context, owner Owner, product models.Product, opts Options) (models.CartLine, error) {
	if opts.Quantity < 0 {
		return models.CartLine{}, ErrBadQuantity
	}

	s.mu.Lock()
	lines := s.ensureLoaded(ctx, owner.ID)
	existing, had := lines[product.ProductID]

	quantity := opts.Quantity
	if quantity == 0 {
		if had {
			quantity = existing.Quantity
		} else {
			quantity = 1
		}
	}

	line := models.CartLine{
		UserID:      owner.ID,
		ProductID:   product.ProductID,
		Name:        product.Name,
		Category:    product.Category,
		Price:       product.Price,
		Image:       product.Image,
		Description: product.Description,
		Colors:      product.Colors,
		Sizes:       product.Sizes,
		SelectedOptions: models.SelectedOptions{
			Color: opts.Color,
			Size:  opts.Size,
		},
		Quantity: quantity,
		AddedAt:  s.now(),
	}
	if had {
		line.DeliveryType = existing.DeliveryType
		line.AddedAt = existing.AddedAt
	}
	lines[product.ProductID] = line
	s.persistLocked(ctx, owner.ID, lines)
	s.mu.Unlock()

	s.mirrorSave(owner, line)
	return line, nil
}

// Remove deletes the line for productID. Removing an absent line is a
// no-op, not an error.
func (s *Store) Remove(ctx context.Context, owner Owner, productID string) {
	s.mu.Lock()
	lines := s.ensureLoaded(ctx, owner.ID)
	if _, ok := lines[productID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(lines, productID)
	s.persistLocked(ctx, owner.ID, lines)
	s.mu.Unlock()

	if owner.Authed {
		s.goMirror(owner.ID, func(ctx context.Context) error {
			return s.mirror.DeleteLine(ctx, owner.ID, productID)
		})
	}
}

// UpdateLine shallow-merges the update into an existing line. It never
// creates a line: updating an absent product id reports false and changes
// nothing.
func (s *Store) UpdateLine(ctx context.Context, owner Owner, productID string, upd Update) (models.CartLine, bool, error) {
	if upd.Quantity != nil && *upd.Quantity < 1 {
		return models.CartLine{}, false, ErrBadQuantity
	}

	s.mu.Lock()
	lines := s.ensureLoaded(ctx, owner.ID)
	line, ok := lines[productID]
	if !ok {
		s.mu.Unlock()
		return models.CartLine{}, false, nil
	}

	if upd.Quantity != nil {
		line.Quantity = *upd.Quantity
	}
	if upd.Options != nil {
		line.SelectedOptions = *upd.Options
	}
	if upd.DeliveryType != nil {
		line.DeliveryType = *upd.DeliveryType
	}
	lines[productID] = line
	s.persistLocked(ctx, owner.ID, lines)
	s.mu.Unlock()

	s.mirrorSave(owner, line)
	return line, true, nil
}

// Clear empties the cart. Idempotent.
func (s *Store) Clear(ctx context.Context, owner Owner) {
	s.mu.Lock()
	s.ensureLoaded(ctx, owner.ID)
	s.carts[owner.ID] = make(map[string]models.CartLine)
	if err := s.local.Delete(ctx, owner.ID); err != nil {
		log.Printf("cart local clear failed for %s: %v", owner.ID, err)
	}
	s.mu.Unlock()

	if owner.Authed {
		s.goMirror(owner.ID, func(ctx context.Context) error {
			return s.mirror.Clear(ctx, owner.ID)
		})
	}
}

// SetDeliveryType applies one delivery type to every line in the cart and
// mirrors each line remotely. Only signed-in customers can do this; for an
// anonymous session it fails without touching anything.
func (s *Store) SetDeliveryType(ctx context.Context, owner Owner, deliveryType string) error {
	if !owner.Authed {
		return ErrNotSignedIn
	}

	s.mu.Lock()
	lines := s.ensureLoaded(ctx, owner.ID)
	updated := make([]models.CartLine, 0, len(lines))
	for id, line := range lines {
		line.DeliveryType = deliveryType
		lines[id] = line
		updated = append(updated, line)
	}
	s.persistLocked(ctx, owner.ID, lines)
	s.mu.Unlock()

	for _, line := range updated {
		s.mirrorSave(owner, line)
	}
	return nil
}

// Lines returns the cart's lines ordered by add time.
func (s *Store) Lines(ctx context.Context, owner Owner) []models.CartLine {
	s.mu.Lock()
	lines := s.ensureLoaded(ctx, owner.ID)
	out := make([]models.CartLine, 0, len(lines))
	for _, line := range lines {
		out = append(out, line)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].AddedAt.Equal(out[j].AddedAt) {
			return out[i].AddedAt.Before(out[j].AddedAt)
		}
		return out[i].ProductID < out[j].ProductID
	})
	return out
}

// DeliveryType reports the delivery type chosen for the cart, empty when
// none is set. All lines carry the same value, so the first is enough.
func (s *Store) DeliveryType(ctx context.Context, owner Owner) string {
	for _, line := range s.Lines(ctx, owner) {
		return line.DeliveryType
	}
	return ""
}

// persistLocked writes the cart to local storage. Local persistence failing
// is logged and tolerated; in-memory state stays authoritative.
func (s *Store) persistLocked(ctx context.Context, ownerID string, lines map[string]models.CartLine) {
	snapshot := make(map[string]models.CartLine, len(lines))
	for k, v := range lines {
		snapshot[k] = v
	}
	if err := s.local.Save(ctx, ownerID, snapshot); err != nil {
		log.Printf("cart local save failed for %s: %v", ownerID, err)
	}
}

func (s *Store) mirrorSave(owner Owner, line models.CartLine) {
	if !owner.Authed {
		return
	}
	s.goMirror(owner.ID, func(ctx context.Context) error {
		return s.mirror.SaveLine(ctx, owner.ID, line)
	})
}

// goMirror runs a remote mirror write in the background with its own
// timeout; request contexts are long gone by the time these run.
func (s *Store) goMirror(ownerID string, fn func(ctx context.Context) error) {
	s.spawn(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fn(ctx); err != nil {
			s.onSyncError(ownerID, err)
		}
	})
}
