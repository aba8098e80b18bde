package repository

import (
	"go-marketplace-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByBranch(branchID uuid.UUID) ([]model.Product, error)
	FindByOrg(orgID uuid.UUID) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(id uuid.UUID) error

	CreateGroup(group *model.ProductGroup) error
	FindGroupByID(id uuid.UUID) (*model.ProductGroup, error)
	UpdateGroup(group *model.ProductGroup) error

	LowStock(orgID uuid.UUID, threshold int) ([]model.Product, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.Preload("Group").First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindByBranch(branchID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Group").
		Where("branch_id = ? AND is_active = ?", branchID, true).
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) FindByOrg(orgID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Group").Where("organization_id = ?", orgID).Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) CreateGroup(group *model.ProductGroup) error {
	return r.db.Create(group).Error
}

func (r *productRepo) FindGroupByID(id uuid.UUID) (*model.ProductGroup, error) {
	var group model.ProductGroup
	if err := r.db.Preload("Variants").First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *productRepo) UpdateGroup(group *model.ProductGroup) error {
	return r.db.Save(group).Error
}

func (r *productRepo) LowStock(orgID uuid.UUID, threshold int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("organization_id = ? AND stock <= ? AND stock_merge_type = ?",
		orgID, threshold, model.StockIndependent).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}
