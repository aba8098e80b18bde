package service

import (
	"context"
	"errors"
	"fmt"

	"go-marketplace-ws/internal/model"
	"go-marketplace-ws/internal/repository"
	"go-marketplace-ws/internal/ws"
	"go-marketplace-ws/pkg/tax"
	"go-marketplace-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StorefrontCache is the read-through cache over branch listings. The
// redis-backed implementation lives in internal/cache; an instance with
// no client degrades to a no-op.
type StorefrontCache interface {
	Get(ctx context.Context, branchID uuid.UUID) ([]model.ProductResponse, bool)
	Set(ctx context.Context, branchID uuid.UUID, items []model.ProductResponse)
	Invalidate(ctx context.Context, branchID uuid.UUID)
}

// CatalogService covers the seller side of the catalog (product/group
// CRUD, direct stock edits) and the customer storefront read path.
type CatalogService interface {
	CreateProduct(req *model.Product, userID, userName string) error
	UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, userID string) error
	ListByOrg(orgID uuid.UUID) ([]model.Product, error)

	CreateGroup(req *model.ProductGroup, userID string) error
	GetGroup(id uuid.UUID) (*model.ProductGroup, error)

	Storefront(ctx context.Context, branchID uuid.UUID) ([]model.ProductResponse, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	db          *gorm.DB
	storefront  StorefrontCache
	wsHub       *ws.Hub
}

func NewCatalogService(productRepo repository.ProductRepository, db *gorm.DB, storefront StorefrontCache, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		db:          db,
		storefront:  storefront,
		wsHub:       hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, userID, userName string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Reason: fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)}
	}

	// SKU dedupe (business logic validation)
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return ErrSKUExists
	}

	// A grouped product mirrors its group's merge mode so the stock
	// resolver can route without a join.
	if req.GroupID != nil {
		group, err := s.productRepo.FindGroupByID(*req.GroupID)
		if err != nil {
			return ErrGroupNotFound
		}
		req.StockMergeType = group.StockMergeType
	} else if req.StockMergeType == "" {
		req.StockMergeType = model.StockIndependent
	}

	req.CreatedBy = userID
	req.UpdatedBy = userID

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.storefront.Invalidate(context.Background(), req.BranchID)

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":    req.ID,
			"sku":   req.SKU,
			"name":  req.Name,
			"stock": req.Stock,
			"price": req.Price,
		},
		"message": fmt.Sprintf("%s created product '%s'", userName, req.Name),
	})

	return nil
}

// UpdateProduct applies a seller edit under the same pessimistic row lock
// the adjustment engine uses, so a direct stock edit and a concurrent
// order confirmation serialize instead of clobbering each other.
func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, userID, userName string) (*model.Product, error) {
	var updated *model.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&existing, "id = ?", id).Error; err != nil {
			return ErrProductNotFound
		}

		oldStock := existing.Stock

		existing.Name = req.Name
		existing.SKU = req.SKU
		existing.Stock = req.Stock
		existing.Unit = req.Unit
		existing.Price = req.Price
		existing.TaxRate = req.TaxRate
		existing.TaxType = req.TaxType
		existing.IsActive = req.IsActive
		existing.UpdatedBy = userID

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		updated = &existing

		go s.wsHub.BroadcastJSON(map[string]interface{}{
			"type":   "stock_update",
			"action": "product_updated",
			"product": map[string]interface{}{
				"id":        existing.ID,
				"sku":       existing.SKU,
				"name":      existing.Name,
				"old_stock": oldStock,
				"new_stock": existing.Stock,
				"price":     existing.Price,
			},
			"message": fmt.Sprintf("%s updated product '%s'", userName, existing.Name),
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.storefront.Invalidate(context.Background(), updated.BranchID)
	return updated, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID, userID string) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.storefront.Invalidate(context.Background(), product.BranchID)
	return nil
}

func (s *catalogService) ListByOrg(orgID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindByOrg(orgID)
}

func (s *catalogService) CreateGroup(req *model.ProductGroup, userID string) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return &ValidationError{Reason: fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)}
	}
	if req.StockMergeType == "" {
		req.StockMergeType = model.StockIndependent
	}
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.productRepo.CreateGroup(req)
}

func (s *catalogService) GetGroup(id uuid.UUID) (*model.ProductGroup, error) {
	group, err := s.productRepo.FindGroupByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

// Storefront lists a branch's active products annotated with tax and the
// stock figure customers buy against. Served from redis when warm; any
// write or stock adjustment on the branch invalidates the entry.
func (s *catalogService) Storefront(ctx context.Context, branchID uuid.UUID) ([]model.ProductResponse, error) {
	if items, ok := s.storefront.Get(ctx, branchID); ok {
		return items, nil
	}

	products, err := s.productRepo.FindByBranch(branchID)
	if err != nil {
		return nil, err
	}

	items := make([]model.ProductResponse, 0, len(products))
	for i := range products {
		p := &products[i]
		taxAmount := tax.Calculate(p.Price, p.TaxRate, tax.Type(p.TaxType))
		items = append(items, model.ProductResponse{
			ID:             p.ID,
			SKU:            p.SKU,
			Name:           p.Name,
			Unit:           p.Unit,
			Price:          p.Price,
			Currency:       p.Currency,
			TaxAmount:      taxAmount,
			PriceWithTax:   p.Price.Add(taxAmount),
			EffectiveStock: EffectiveStock(p),
			GroupID:        p.GroupID,
			StockMergeType: p.StockMergeType,
		})
	}

	s.storefront.Set(ctx, branchID, items)
	return items, nil
}
