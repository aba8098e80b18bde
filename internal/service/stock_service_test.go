package service

import (
	"sync"
	"testing"

	"go-marketplace-ws/internal/model"
	"go-marketplace-ws/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStockStore is an in-memory StockStore. Transactions serialize on a
// mutex and roll back by restoring a pre-transaction snapshot, which is
// enough to exercise the engine's all-or-nothing behavior.
type memStockStore struct {
	mu       sync.Mutex
	products map[uuid.UUID]*model.Product
	groups   map[uuid.UUID]*model.ProductGroup
	items    map[uuid.UUID][]model.OrderItem
	statuses map[uuid.UUID]model.OrderStatus
}

func newMemStockStore() *memStockStore {
	return &memStockStore{
		products: make(map[uuid.UUID]*model.Product),
		groups:   make(map[uuid.UUID]*model.ProductGroup),
		items:    make(map[uuid.UUID][]model.OrderItem),
		statuses: make(map[uuid.UUID]model.OrderStatus),
	}
}

func (s *memStockStore) snapshot() (map[uuid.UUID]int, map[uuid.UUID]int, map[uuid.UUID]model.OrderStatus) {
	products := make(map[uuid.UUID]int, len(s.products))
	for id, p := range s.products {
		products[id] = p.Stock
	}
	groups := make(map[uuid.UUID]int, len(s.groups))
	for id, g := range s.groups {
		groups[id] = g.BaseStock
	}
	statuses := make(map[uuid.UUID]model.OrderStatus, len(s.statuses))
	for id, st := range s.statuses {
		statuses[id] = st
	}
	return products, groups, statuses
}

func (s *memStockStore) Transaction(fn func(tx repository.StockTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, groups, statuses := s.snapshot()
	if err := fn(&memStockTx{store: s}); err != nil {
		for id, stock := range products {
			s.products[id].Stock = stock
		}
		for id, stock := range groups {
			s.groups[id].BaseStock = stock
		}
		s.statuses = statuses
		return err
	}
	return nil
}

type memStockTx struct {
	store *memStockStore
}

func (t *memStockTx) LoadOrderItems(orderID uuid.UUID) ([]model.OrderItem, error) {
	items := t.store.items[orderID]
	out := make([]model.OrderItem, len(items))
	for i, item := range items {
		out[i] = item
		if p, ok := t.store.products[item.ProductID]; ok {
			out[i].Product = *p
		}
	}
	return out, nil
}

func (t *memStockTx) LockProductForUpdate(id uuid.UUID) (*model.Product, error) {
	p := *t.store.products[id]
	return &p, nil
}

func (t *memStockTx) LockGroupForUpdate(id uuid.UUID) (*model.ProductGroup, error) {
	g := *t.store.groups[id]
	return &g, nil
}

func (t *memStockTx) UpdateProductStock(id uuid.UUID, newStock int) error {
	t.store.products[id].Stock = newStock
	return nil
}

func (t *memStockTx) UpdateGroupStock(id uuid.UUID, newStock int) error {
	t.store.groups[id].BaseStock = newStock
	return nil
}

func (t *memStockTx) UpdateOrderStatus(id uuid.UUID, from, to model.OrderStatus) error {
	if t.store.statuses[id] != from {
		return repository.ErrStatusConflict
	}
	t.store.statuses[id] = to
	return nil
}

func seedProduct(store *memStockStore, name string, stock int) *model.Product {
	p := &model.Product{
		Name:           name,
		Stock:          stock,
		StockMergeType: model.StockIndependent,
	}
	p.ID = uuid.New()
	store.products[p.ID] = p
	return p
}

func seedMergedVariant(store *memStockStore, group *model.ProductGroup, name string) *model.Product {
	p := &model.Product{
		Name:           name,
		GroupID:        &group.ID,
		StockMergeType: model.StockMerged,
	}
	p.ID = uuid.New()
	store.products[p.ID] = p
	return p
}

func seedOrder(store *memStockStore, status model.OrderStatus, lines ...model.OrderItem) *model.Order {
	order := &model.Order{Status: status}
	order.ID = uuid.New()
	store.items[order.ID] = lines
	store.statuses[order.ID] = status
	return order
}

func TestAdjustStock_DeductsOnConfirmation(t *testing.T) {
	store := newMemStockStore()
	product := seedProduct(store, "Whole Milk 1L", 10)
	order := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: product.ID, Quantity: 3})

	svc := NewStockService(store)
	adjustments, err := svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusConfirmed)

	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, product.ID, adjustments[0].ProductID)
	assert.Equal(t, 3, adjustments[0].Quantity)
	assert.Equal(t, 10, adjustments[0].PreviousStock)
	assert.Equal(t, 7, adjustments[0].NewStock)

	assert.Equal(t, 7, store.products[product.ID].Stock)
	assert.Equal(t, model.StatusConfirmed, store.statuses[order.ID])
}

func TestAdjustStock_RestoresOnCancellation(t *testing.T) {
	store := newMemStockStore()
	product := seedProduct(store, "Whole Milk 1L", 7)
	order := seedOrder(store, model.StatusConfirmed,
		model.OrderItem{ProductID: product.ID, Quantity: 3})

	svc := NewStockService(store)
	adjustments, err := svc.AdjustStockForStatusChange(order, model.StatusConfirmed, model.StatusCancelled)

	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, 7, adjustments[0].PreviousStock)
	assert.Equal(t, 10, adjustments[0].NewStock)

	assert.Equal(t, 10, store.products[product.ID].Stock)
	assert.Equal(t, model.StatusCancelled, store.statuses[order.ID])
}

func TestAdjustStock_RestoreFromEveryHoldingStatus(t *testing.T) {
	for _, from := range []model.OrderStatus{
		model.StatusConfirmed, model.StatusPreparing,
		model.StatusReady, model.StatusOutForDelivery,
	} {
		store := newMemStockStore()
		product := seedProduct(store, "Eggs 12pk", 5)
		order := seedOrder(store, from,
			model.OrderItem{ProductID: product.ID, Quantity: 2})

		svc := NewStockService(store)
		adjustments, err := svc.AdjustStockForStatusChange(order, from, model.StatusCancelled)

		require.NoError(t, err, "cancel from %s", from)
		require.Len(t, adjustments, 1)
		assert.Equal(t, 7, store.products[product.ID].Stock, "cancel from %s", from)
	}
}

func TestAdjustStock_CancelBeforeConfirmationIsNoOp(t *testing.T) {
	store := newMemStockStore()
	product := seedProduct(store, "Eggs 12pk", 5)
	order := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: product.ID, Quantity: 2})

	svc := NewStockService(store)
	adjustments, err := svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusCancelled)

	require.NoError(t, err)
	assert.Nil(t, adjustments)
	// Nothing was ever deducted, so nothing comes back.
	assert.Equal(t, 5, store.products[product.ID].Stock)
	assert.Equal(t, model.StatusCancelled, store.statuses[order.ID])
}

func TestAdjustStock_FulfillmentStepsLeaveStockAlone(t *testing.T) {
	steps := []struct {
		from, to model.OrderStatus
	}{
		{model.StatusConfirmed, model.StatusPreparing},
		{model.StatusPreparing, model.StatusReady},
		{model.StatusReady, model.StatusOutForDelivery},
		{model.StatusOutForDelivery, model.StatusDelivered},
	}

	for _, step := range steps {
		store := newMemStockStore()
		product := seedProduct(store, "Butter 250g", 4)
		order := seedOrder(store, step.from,
			model.OrderItem{ProductID: product.ID, Quantity: 2})

		svc := NewStockService(store)
		adjustments, err := svc.AdjustStockForStatusChange(order, step.from, step.to)

		require.NoError(t, err, "%s -> %s", step.from, step.to)
		assert.Nil(t, adjustments)
		assert.Equal(t, 4, store.products[product.ID].Stock)
		assert.Equal(t, step.to, store.statuses[order.ID], "status still persists on %s -> %s", step.from, step.to)
	}
}

func TestAdjustStock_InsufficientStockAbortsWholeOrder(t *testing.T) {
	store := newMemStockStore()
	plenty := seedProduct(store, "Whole Milk 1L", 10)
	scarce := seedProduct(store, "Eggs 12pk", 1)
	order := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: plenty.ID, Quantity: 3},
		model.OrderItem{ProductID: scarce.ID, Quantity: 2})

	svc := NewStockService(store)
	adjustments, err := svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusConfirmed)

	require.Error(t, err)
	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, scarce.ID, insufficient.ProductID)
	assert.Equal(t, "Eggs 12pk", insufficient.ProductName)
	assert.Equal(t, 1, insufficient.Available)
	assert.Equal(t, 2, insufficient.Requested)

	assert.Nil(t, adjustments)
	// The first item's deduction rolled back with the rest.
	assert.Equal(t, 10, store.products[plenty.ID].Stock)
	assert.Equal(t, 1, store.products[scarce.ID].Stock)
	assert.Equal(t, model.StatusPending, store.statuses[order.ID])
}

func TestAdjustStock_ExactStockSellsOut(t *testing.T) {
	store := newMemStockStore()
	product := seedProduct(store, "Butter 250g", 3)
	order := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: product.ID, Quantity: 3})

	svc := NewStockService(store)
	adjustments, err := svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusConfirmed)

	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, 0, store.products[product.ID].Stock)
}

func TestAdjustStock_InvalidTransitionWritesNothing(t *testing.T) {
	store := newMemStockStore()
	product := seedProduct(store, "Whole Milk 1L", 10)
	order := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: product.ID, Quantity: 3})

	svc := NewStockService(store)
	adjustments, err := svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusDelivered)

	require.Error(t, err)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Reason, "cannot change status")

	assert.Nil(t, adjustments)
	assert.Equal(t, 10, store.products[product.ID].Stock)
	assert.Equal(t, model.StatusPending, store.statuses[order.ID])
}

func TestAdjustStock_MergedVariantsShareGroupCounter(t *testing.T) {
	store := newMemStockStore()
	group := &model.ProductGroup{
		Name:           "Olive Oil",
		StockMergeType: model.StockMerged,
		BaseStock:      10,
	}
	group.ID = uuid.New()
	store.groups[group.ID] = group

	small := seedMergedVariant(store, group, "Olive Oil 250ml")
	large := seedMergedVariant(store, group, "Olive Oil 1L")
	order := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: small.ID, Quantity: 2},
		model.OrderItem{ProductID: large.ID, Quantity: 3})

	svc := NewStockService(store)
	adjustments, err := svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusConfirmed)

	require.NoError(t, err)
	require.Len(t, adjustments, 2)
	// Second item sees the first item's deduction on the shared counter.
	assert.Equal(t, 10, adjustments[0].PreviousStock)
	assert.Equal(t, 8, adjustments[0].NewStock)
	assert.Equal(t, 8, adjustments[1].PreviousStock)
	assert.Equal(t, 5, adjustments[1].NewStock)

	assert.Equal(t, 5, store.groups[group.ID].BaseStock)
	// Variant columns are not authoritative and stay untouched.
	assert.Equal(t, 0, store.products[small.ID].Stock)
	assert.Equal(t, 0, store.products[large.ID].Stock)
}

func TestAdjustStock_MergedCancellationRestoresGroupCounter(t *testing.T) {
	store := newMemStockStore()
	group := &model.ProductGroup{
		Name:           "Olive Oil",
		StockMergeType: model.StockMerged,
		BaseStock:      5,
	}
	group.ID = uuid.New()
	store.groups[group.ID] = group

	variant := seedMergedVariant(store, group, "Olive Oil 1L")
	order := seedOrder(store, model.StatusConfirmed,
		model.OrderItem{ProductID: variant.ID, Quantity: 3})

	svc := NewStockService(store)
	_, err := svc.AdjustStockForStatusChange(order, model.StatusConfirmed, model.StatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, 8, store.groups[group.ID].BaseStock)
}

func TestAdjustStock_MergedInsufficientAbortsAcrossVariants(t *testing.T) {
	store := newMemStockStore()
	group := &model.ProductGroup{
		Name:           "Olive Oil",
		StockMergeType: model.StockMerged,
		BaseStock:      4,
	}
	group.ID = uuid.New()
	store.groups[group.ID] = group

	small := seedMergedVariant(store, group, "Olive Oil 250ml")
	large := seedMergedVariant(store, group, "Olive Oil 1L")
	order := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: small.ID, Quantity: 3},
		model.OrderItem{ProductID: large.ID, Quantity: 2})

	svc := NewStockService(store)
	_, err := svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusConfirmed)

	var insufficient *InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, large.ID, insufficient.ProductID)
	assert.Equal(t, 1, insufficient.Available)

	assert.Equal(t, 4, store.groups[group.ID].BaseStock)
	assert.Equal(t, model.StatusPending, store.statuses[order.ID])
}

func TestAdjustStock_ConcurrentConfirmationsNeverOversell(t *testing.T) {
	store := newMemStockStore()
	product := seedProduct(store, "Whole Milk 1L", 6)

	orderA := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: product.ID, Quantity: 4})
	orderB := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: product.ID, Quantity: 4})

	svc := NewStockService(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, order := range []*model.Order{orderA, orderB} {
		wg.Add(1)
		go func(i int, order *model.Order) {
			defer wg.Done()
			_, errs[i] = svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusConfirmed)
		}(i, order)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			var insufficient *InsufficientStockError
			require.ErrorAs(t, err, &insufficient)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one confirmation wins the stock")
	assert.Equal(t, 2, store.products[product.ID].Stock)
	assert.GreaterOrEqual(t, store.products[product.ID].Stock, 0)
}

func TestAdjustStock_SameOrderConfirmedOnlyOnce(t *testing.T) {
	store := newMemStockStore()
	product := seedProduct(store, "Whole Milk 1L", 10)
	order := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: product.ID, Quantity: 3})

	svc := NewStockService(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusConfirmed)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			// The loser's deduction rolled back with its failed status write.
			require.ErrorIs(t, err, repository.ErrStatusConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "the order's stock is deducted exactly once")
	assert.Equal(t, 7, store.products[product.ID].Stock)
	assert.Equal(t, model.StatusConfirmed, store.statuses[order.ID])
}

func TestAdjustStock_StaleStartingStatusRejected(t *testing.T) {
	store := newMemStockStore()
	product := seedProduct(store, "Whole Milk 1L", 10)
	order := seedOrder(store, model.StatusPending,
		model.OrderItem{ProductID: product.ID, Quantity: 3})

	// Another actor already confirmed the order.
	store.statuses[order.ID] = model.StatusConfirmed

	svc := NewStockService(store)
	adjustments, err := svc.AdjustStockForStatusChange(order, model.StatusPending, model.StatusConfirmed)

	require.ErrorIs(t, err, repository.ErrStatusConflict)
	assert.Nil(t, adjustments)
	assert.Equal(t, 10, store.products[product.ID].Stock)
	assert.Equal(t, model.StatusConfirmed, store.statuses[order.ID])
}

func TestEffectFor(t *testing.T) {
	assert.Equal(t, effectDeduct, effectFor(model.StatusPending, model.StatusConfirmed))
	assert.Equal(t, effectRestore, effectFor(model.StatusConfirmed, model.StatusCancelled))
	assert.Equal(t, effectRestore, effectFor(model.StatusOutForDelivery, model.StatusCancelled))
	assert.Equal(t, effectNone, effectFor(model.StatusPending, model.StatusCancelled))
	assert.Equal(t, effectNone, effectFor(model.StatusConfirmed, model.StatusPreparing))
	assert.Equal(t, effectNone, effectFor(model.StatusOutForDelivery, model.StatusDelivered))
}

func TestResolveStockTarget(t *testing.T) {
	independent := &model.Product{StockMergeType: model.StockIndependent, Stock: 9}
	independent.ID = uuid.New()
	target := ResolveStockTarget(independent)
	assert.Equal(t, TargetProduct, target.Kind)
	assert.Equal(t, independent.ID, target.ID)
	assert.Equal(t, 9, EffectiveStock(independent))

	groupID := uuid.New()
	group := &model.ProductGroup{StockMergeType: model.StockMerged, BaseStock: 42}
	group.ID = groupID
	merged := &model.Product{StockMergeType: model.StockMerged, GroupID: &groupID, Group: group, Stock: 0}
	merged.ID = uuid.New()
	target = ResolveStockTarget(merged)
	assert.Equal(t, TargetGroup, target.Kind)
	assert.Equal(t, groupID, target.ID)
	assert.Equal(t, 42, EffectiveStock(merged))

	// A product pointing at a group in independent mode keeps its own stock.
	solo := &model.Product{StockMergeType: model.StockIndependent, GroupID: &groupID, Stock: 3}
	solo.ID = uuid.New()
	target = ResolveStockTarget(solo)
	assert.Equal(t, TargetProduct, target.Kind)
	assert.Equal(t, 3, EffectiveStock(solo))
}
