package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"paperpen/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memLocal struct {
	mu    sync.Mutex
	data  map[string]map[string]models.CartLine
	saves int
}

func newMemLocal() *memLocal {
	return &memLocal{data: make(map[string]map[string]models.CartLine)}
}

func (m *memLocal) Save(_ context.Context, ownerID string, lines map[string]models.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[ownerID] = lines
	m.saves++
	return nil
}

func (m *memLocal) Load(_ context.Context, ownerID string) (map[string]models.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[ownerID], nil
}

func (m *memLocal) Delete(_ context.Context, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, ownerID)
	return nil
}

type memMirror struct {
	mu     sync.Mutex
	lines  map[string]models.CartLine // key owner+"/"+product
	err    error
	clears int
}

func newMemMirror() *memMirror {
	return &memMirror{lines: make(map[string]models.CartLine)}
}

func (m *memMirror) SaveLine(_ context.Context, ownerID string, line models.CartLine) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines[ownerID+"/"+line.ProductID] = line
	return nil
}

func (m *memMirror) DeleteLine(_ context.Context, ownerID, productID string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lines, ownerID+"/"+productID)
	return nil
}

func (m *memMirror) Clear(_ context.Context, ownerID string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.lines {
		if len(k) > len(ownerID) && k[:len(ownerID)+1] == ownerID+"/" {
			delete(m.lines, k)
		}
	}
	m.clears++
	return nil
}

func newTestStore() (*Store, *memLocal, *memMirror) {
	local := newMemLocal()
	mirror := newMemMirror()
	store := NewStore(local, mirror)
	store.spawn = func(fn func()) { fn() } // synchronous mirroring in tests
	return store, local, mirror
}

var pen = models.Product{ProductID: "7", Name: "Gel Pen", Category: "pens", Price: 25, Colors: []string{"Blue"}}

func TestAddKeepsOneLinePerProduct(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue", Quantity: 2})
	require.NoError(t, err)
	_, err = store.Add(ctx, owner, pen, Options{Color: "Blue", Quantity: 5})
	require.NoError(t, err)

	lines := store.Lines(ctx, owner)
	require.Len(t, lines, 1)
	// re-adding replaces the quantity, it never sums
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAddWithoutQuantityPreservesExisting(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue", Quantity: 3})
	require.NoError(t, err)
	_, err = store.Add(ctx, owner, pen, Options{Color: "Blue"})
	require.NoError(t, err)

	lines := store.Lines(ctx, owner)
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	line, err := store.Add(ctx, owner, pen, Options{Color: "Blue"})
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
}

func TestAddSnapshotsProduct(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	product := pen
	_, err := store.Add(ctx, owner, product, Options{Color: "Blue"})
	require.NoError(t, err)

	// a later catalog price change must not alter the cart line
	product.Price = 99
	lines := store.Lines(ctx, owner)
	require.Len(t, lines, 1)
	assert.Equal(t, 25.0, lines[0].Price)
}

func TestAddPreservesDeliveryType(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue"})
	require.NoError(t, err)
	require.NoError(t, store.SetDeliveryType(ctx, owner, "Home Delivery"))

	_, err = store.Add(ctx, owner, pen, Options{Color: "Blue", Quantity: 4})
	require.NoError(t, err)

	lines := store.Lines(ctx, owner)
	require.Len(t, lines, 1)
	assert.Equal(t, "Home Delivery", lines[0].DeliveryType)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	store, local, _ := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue"})
	require.NoError(t, err)
	savesBefore := local.saves

	store.Remove(ctx, owner, "does-not-exist")

	assert.Len(t, store.Lines(ctx, owner), 1)
	assert.Equal(t, savesBefore, local.saves, "no-op remove must not persist")
}

func TestRemoveDeletesLine(t *testing.T) {
	store, _, mirror := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue"})
	require.NoError(t, err)
	store.Remove(ctx, owner, pen.ProductID)

	assert.Empty(t, store.Lines(ctx, owner))
	assert.Empty(t, mirror.lines)
}

func TestUpdateLineNeverCreates(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	qty := 3
	_, found, err := store.UpdateLine(ctx, owner, "ghost", Update{Quantity: &qty})
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, store.Lines(ctx, owner))
}

func TestUpdateLineMergesFields(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue", Quantity: 2})
	require.NoError(t, err)

	qty := 6
	line, found, err := store.UpdateLine(ctx, owner, pen.ProductID, Update{Quantity: &qty})
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 6, line.Quantity)
	// untouched fields survive the merge
	assert.Equal(t, "Blue", line.SelectedOptions.Color)
}

func TestUpdateLineRejectsZeroQuantity(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue", Quantity: 2})
	require.NoError(t, err)

	zero := 0
	_, _, err = store.UpdateLine(ctx, owner, pen.ProductID, Update{Quantity: &zero})
	assert.ErrorIs(t, err, ErrBadQuantity)
}

func TestClearIsIdempotent(t *testing.T) {
	store, _, mirror := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue"})
	require.NoError(t, err)

	store.Clear(ctx, owner)
	assert.Empty(t, store.Lines(ctx, owner))

	store.Clear(ctx, owner)
	assert.Empty(t, store.Lines(ctx, owner))
	assert.Equal(t, 2, mirror.clears)
}

func TestSetDeliveryTypeRequiresAuth(t *testing.T) {
	store, _, _ := newTestStore()
	ctx := context.Background()
	anon := Owner{ID: "device-42"}

	_, err := store.Add(ctx, anon, pen, Options{Color: "Blue"})
	require.NoError(t, err)

	err = store.SetDeliveryType(ctx, anon, "Home Delivery")
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.Empty(t, store.Lines(ctx, anon)[0].DeliveryType, "failed call must not change lines")
}

func TestSetDeliveryTypeAppliesToAllLines(t *testing.T) {
	store, _, mirror := newTestStore()
	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}

	notebook := models.Product{ProductID: "4", Name: "Notebook", Price: 60}
	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue"})
	require.NoError(t, err)
	_, err = store.Add(ctx, owner, notebook, Options{})
	require.NoError(t, err)

	require.NoError(t, store.SetDeliveryType(ctx, owner, "Store Pickup"))

	for _, line := range store.Lines(ctx, owner) {
		assert.Equal(t, "Store Pickup", line.DeliveryType)
	}
	for _, line := range mirror.lines {
		assert.Equal(t, "Store Pickup", line.DeliveryType)
	}
}

func TestRehydratesFromLocal(t *testing.T) {
	local := newMemLocal()
	local.data["u1"] = map[string]models.CartLine{
		"7": {ProductID: "7", Name: "Gel Pen", Quantity: 2},
	}

	store := NewStore(local, newMemMirror())
	store.spawn = func(fn func()) { fn() }

	lines := store.Lines(context.Background(), Owner{ID: "u1", Authed: true})
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestMirrorFailureLeavesLocalAuthoritative(t *testing.T) {
	store, _, mirror := newTestStore()
	mirror.err = errors.New("remote down")

	var failures int
	store.onSyncError = func(string, error) { failures++ }

	ctx := context.Background()
	owner := Owner{ID: "u1", Authed: true}
	_, err := store.Add(ctx, owner, pen, Options{Color: "Blue"})
	require.NoError(t, err, "mirror failure must not fail the mutation")

	assert.Len(t, store.Lines(ctx, owner), 1)
	assert.Equal(t, 1, failures)
}

func TestAnonymousCartIsNeverMirrored(t *testing.T) {
	store, _, mirror := newTestStore()
	ctx := context.Background()

	_, err := store.Add(ctx, Owner{ID: "device-42"}, pen, Options{Color: "Blue"})
	require.NoError(t, err)

	assert.Empty(t, mirror.lines)
}
