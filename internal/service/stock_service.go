package service

import (
	"go-marketplace-ws/internal/model"
	"go-marketplace-ws/internal/repository"
)

// stockEffect is what a status transition does to inventory.
type stockEffect int

const (
	effectNone stockEffect = iota
	effectDeduct
	effectRestore
)

// effectFor maps a transition to its inventory effect. Stock is deducted
// exactly once, at confirmation, and restored only when an order that
// already holds stock is cancelled. Everything else, including reaching
// delivered, leaves inventory alone.
func effectFor(from, to model.OrderStatus) stockEffect {
	switch {
	case from == model.StatusPending && to == model.StatusConfirmed:
		return effectDeduct
	case to == model.StatusCancelled && from != model.StatusPending:
		return effectRestore
	default:
		return effectNone
	}
}

// StockService is the stock adjustment engine. It owns every inventory
// mutation triggered by order status changes.
type StockService interface {
	// AdjustStockForStatusChange validates the transition, applies its
	// inventory effect atomically across all of the order's items, and
	// persists the order's new status in the same transaction. On any
	// failure nothing is written and nil adjustments are returned. The
	// engine never retries; surfacing or retrying is the caller's call.
	AdjustStockForStatusChange(order *model.Order, from, to model.OrderStatus) ([]model.StockAdjustment, error)
}

type stockService struct {
	store repository.StockStore
}

func NewStockService(store repository.StockStore) StockService {
	return &stockService{store: store}
}

func (s *stockService) AdjustStockForStatusChange(order *model.Order, from, to model.OrderStatus) ([]model.StockAdjustment, error) {
	if result := model.ValidateTransition(from, to); !result.Valid {
		return nil, &ValidationError{Reason: result.Reason}
	}

	effect := effectFor(from, to)
	if effect == effectNone {
		// No inventory movement, but the status write still goes through
		// the store so every transition commits the same way.
		err := s.store.Transaction(func(tx repository.StockTx) error {
			return tx.UpdateOrderStatus(order.ID, from, to)
		})
		return nil, err
	}

	var adjustments []model.StockAdjustment
	err := s.store.Transaction(func(tx repository.StockTx) error {
		items, err := tx.LoadOrderItems(order.ID)
		if err != nil {
			return err
		}

		for _, item := range items {
			adj, err := s.adjustItem(tx, &item, effect)
			if err != nil {
				// Abort the whole order; the transaction rollback undoes
				// every stock write made for earlier items.
				return err
			}
			adjustments = append(adjustments, adj)
		}

		// The compare-and-set on the status row is what makes two
		// concurrent adjustments of the same order mutually exclusive:
		// the loser's stock writes roll back here.
		return tx.UpdateOrderStatus(order.ID, from, to)
	})
	if err != nil {
		return nil, err
	}
	return adjustments, nil
}

// adjustItem locks the item's canonical stock holder, applies the delta
// and writes the new value. Re-locking a row already locked earlier in
// the same transaction is fine: the second read observes the first
// item's write, so two merged variants in one order stack correctly.
func (s *stockService) adjustItem(tx repository.StockTx, item *model.OrderItem, effect stockEffect) (model.StockAdjustment, error) {
	target := ResolveStockTarget(&item.Product)

	var previous int
	switch target.Kind {
	case TargetGroup:
		group, err := tx.LockGroupForUpdate(target.ID)
		if err != nil {
			return model.StockAdjustment{}, err
		}
		previous = group.BaseStock
	default:
		product, err := tx.LockProductForUpdate(target.ID)
		if err != nil {
			return model.StockAdjustment{}, err
		}
		previous = product.Stock
	}

	newStock := previous + item.Quantity
	if effect == effectDeduct {
		newStock = previous - item.Quantity
		if newStock < 0 {
			return model.StockAdjustment{}, &InsufficientStockError{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Available:   previous,
				Requested:   item.Quantity,
			}
		}
	}

	var err error
	switch target.Kind {
	case TargetGroup:
		err = tx.UpdateGroupStock(target.ID, newStock)
	default:
		err = tx.UpdateProductStock(target.ID, newStock)
	}
	if err != nil {
		return model.StockAdjustment{}, err
	}

	return model.StockAdjustment{
		ProductID:     item.ProductID,
		Quantity:      item.Quantity,
		PreviousStock: previous,
		NewStock:      newStock,
	}, nil
}
