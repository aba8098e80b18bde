package repository

import (
	"errors"

	"go-marketplace-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStatusConflict means the order's persisted status no longer matches
// the transition's starting point: a concurrent update won the race. The
// surrounding transaction rolls back every stock write with it.
var ErrStatusConflict = errors.New("order status changed concurrently")

// StockStore is the persistence port of the stock adjustment engine. One
// Transaction call covers a whole order's adjustment: every lock, stock
// write and the order's status write commit or roll back together.
type StockStore interface {
	Transaction(fn func(tx StockTx) error) error
}

// StockTx exposes the row-level operations available inside one
// transaction. Lock methods take a pessimistic SELECT ... FOR UPDATE on
// the row, serializing concurrent adjustments to the same stock holder.
type StockTx interface {
	LoadOrderItems(orderID uuid.UUID) ([]model.OrderItem, error)
	LockProductForUpdate(id uuid.UUID) (*model.Product, error)
	LockGroupForUpdate(id uuid.UUID) (*model.ProductGroup, error)
	UpdateProductStock(id uuid.UUID, newStock int) error
	UpdateGroupStock(id uuid.UUID, newStock int) error

	// UpdateOrderStatus is a compare-and-set: the write only lands when
	// the row still holds `from`, otherwise ErrStatusConflict.
	UpdateOrderStatus(id uuid.UUID, from, to model.OrderStatus) error
}

type stockStore struct {
	db *gorm.DB
}

func NewStockStore(db *gorm.DB) StockStore {
	return &stockStore{db}
}

func (s *stockStore) Transaction(fn func(tx StockTx) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&stockTx{tx})
	})
}

type stockTx struct {
	tx *gorm.DB
}

func (t *stockTx) LoadOrderItems(orderID uuid.UUID) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := t.tx.Preload("Product").Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}

func (t *stockTx) LockProductForUpdate(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (t *stockTx) LockGroupForUpdate(id uuid.UUID) (*model.ProductGroup, error) {
	var group model.ProductGroup
	err := t.tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&group, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (t *stockTx) UpdateProductStock(id uuid.UUID, newStock int) error {
	return t.tx.Model(&model.Product{}).Where("id = ?", id).Update("stock", newStock).Error
}

func (t *stockTx) UpdateGroupStock(id uuid.UUID, newStock int) error {
	return t.tx.Model(&model.ProductGroup{}).Where("id = ?", id).Update("base_stock", newStock).Error
}

func (t *stockTx) UpdateOrderStatus(id uuid.UUID, from, to model.OrderStatus) error {
	res := t.tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}
