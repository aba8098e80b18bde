package service

import (
	"errors"
	"fmt"

	"go-marketplace-ws/internal/model"
	"go-marketplace-ws/internal/repository"
	"go-marketplace-ws/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartService interface {
	AddOrMergeLine(userID uuid.UUID, req *AddCartLineRequest) (*model.CartItem, error)
	UpdateLineQuantity(userID, itemID uuid.UUID, quantity int) (*model.CartItem, error)
	RemoveLine(userID, itemID uuid.UUID) error
	ClearCart(userID uuid.UUID) error
	ListCart(userID uuid.UUID) ([]model.CartItem, error)
}

type AddCartLineRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// AddOrMergeLine keeps the cart at one logical line per (user, product):
// a repeat add folds into the existing line instead of creating a second
// row. New lines snapshot price/currency/unit at add-time. Stock is not
// checked or reserved here; that happens at order confirmation.
func (s *cartService) AddOrMergeLine(userID uuid.UUID, req *AddCartLineRequest) (*model.CartItem, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{Reason: fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)}
	}

	product, err := s.productRepo.FindByID(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, req.ProductID)
	if err == nil {
		existing.Quantity += req.Quantity
		if existing.Quantity <= 0 {
			if err := s.cartRepo.Delete(existing.ID); err != nil {
				return nil, err
			}
			return nil, nil
		}
		if err := s.cartRepo.Update(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Price:     product.Price,
		Currency:  product.Currency,
		Unit:      product.Unit,
	}
	if err := s.cartRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateLineQuantity sets the line's quantity in place. Zero or negative
// deletes the line; a zero-quantity row is never persisted.
func (s *cartService) UpdateLineQuantity(userID, itemID uuid.UUID, quantity int) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		return nil, ErrCartItemNotFound
	}
	if item.UserID != userID {
		return nil, ErrCartItemNotFound
	}

	if quantity <= 0 {
		if err := s.cartRepo.Delete(item.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveLine(userID, itemID uuid.UUID) error {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		return ErrCartItemNotFound
	}
	if item.UserID != userID {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Delete(item.ID)
}

func (s *cartService) ClearCart(userID uuid.UUID) error {
	return s.cartRepo.DeleteByUser(userID)
}

func (s *cartService) ListCart(userID uuid.UUID) ([]model.CartItem, error) {
	return s.cartRepo.FindByUser(userID)
}
