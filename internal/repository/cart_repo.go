package repository

import (
	"go-marketplace-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartRepository interface {
	Create(item *model.CartItem) error
	Update(item *model.CartItem) error
	Delete(id uuid.UUID) error
	FindByID(id uuid.UUID) (*model.CartItem, error)
	FindByUserAndProduct(userID, productID uuid.UUID) (*model.CartItem, error)
	FindByUser(userID uuid.UUID) ([]model.CartItem, error)
	DeleteByUser(userID uuid.UUID) error
}

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepo(db *gorm.DB) CartRepository {
	return &cartRepo{db}
}

func (r *cartRepo) Create(item *model.CartItem) error {
	return r.db.Create(item).Error
}

func (r *cartRepo) Update(item *model.CartItem) error {
	return r.db.Save(item).Error
}

func (r *cartRepo) Delete(id uuid.UUID) error {
	// Hard delete: an abandoned line must not block re-adding the same
	// product later through the unique (user, product) index.
	return r.db.Unscoped().Delete(&model.CartItem{}, "id = ?", id).Error
}

func (r *cartRepo) FindByID(id uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	if err := r.db.Preload("Product").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) FindByUserAndProduct(userID, productID uuid.UUID) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepo) FindByUser(userID uuid.UUID) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Preload("Product").Where("user_id = ?", userID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *cartRepo) DeleteByUser(userID uuid.UUID) error {
	return r.db.Unscoped().Delete(&model.CartItem{}, "user_id = ?", userID).Error
}
