package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-marketplace-ws/internal/model"
	"go-marketplace-ws/internal/repository"
	"go-marketplace-ws/internal/ws"
	"go-marketplace-ws/pkg/tax"
	"go-marketplace-ws/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	Checkout(userID uuid.UUID, req *CheckoutRequest) (*model.Order, error)
	UpdateStatus(orderID uuid.UUID, target model.OrderStatus, actorName string) (*model.Order, []model.StockAdjustment, error)
	GetOrder(id uuid.UUID) (*model.Order, error)
	ListByCustomer(customerID uuid.UUID) ([]model.Order, error)
	ListByBranch(branchID uuid.UUID) ([]model.Order, error)
}

type CheckoutRequest struct {
	BranchID  uuid.UUID `json:"branch_id" validate:"uuid_required"`
	AddressID uuid.UUID `json:"address_id" validate:"uuid_required"`
}

type orderService struct {
	orderRepo    repository.OrderRepository
	cartRepo     repository.CartRepository
	orgRepo      repository.OrganizationRepository
	hoursService HoursService
	stockService StockService
	storefront   StorefrontCache
	wsHub        *ws.Hub
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	orgRepo repository.OrganizationRepository,
	hoursService HoursService,
	stockService StockService,
	storefront StorefrontCache,
	hub *ws.Hub,
) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		orgRepo:      orgRepo,
		hoursService: hoursService,
		stockService: stockService,
		storefront:   storefront,
		wsHub:        hub,
	}
}

// orderLine pairs a live product row with the quantity being purchased.
type orderLine struct {
	Product  *model.Product
	Quantity int
}

// buildOrderItems snapshots each line's price/currency/unit and totals
// the order. Totals are captured here once and never recomputed: the
// persisted order keeps total = subtotal + tax + delivery forever.
func buildOrderItems(lines []orderLine, deliveryFee decimal.Decimal) ([]model.OrderItem, decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	items := make([]model.OrderItem, 0, len(lines))
	subtotal := decimal.Zero
	taxAmount := decimal.Zero

	for _, line := range lines {
		p := line.Product
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		taxAmount = taxAmount.Add(tax.Calculate(lineTotal, p.TaxRate, tax.Type(p.TaxType)))

		items = append(items, model.OrderItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			Price:     p.Price,
			Currency:  p.Currency,
			Unit:      p.Unit,
		})
	}

	total := subtotal.Add(taxAmount).Add(deliveryFee)
	return items, subtotal, taxAmount, total
}

// generateOrderNumber builds a unique, human-readable order reference.
func generateOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// Checkout turns the user's cart into a pending order. Item prices are
// re-read from the live product rows (cart snapshots are display-only).
// No stock is reserved here; inventory moves at pending -> confirmed.
func (s *orderService) Checkout(userID uuid.UUID, req *CheckoutRequest) (*model.Order, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, &ValidationError{Reason: fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag)}
	}

	cartItems, err := s.cartRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	branch, err := s.orgRepo.FindBranchByID(req.BranchID)
	if err != nil {
		return nil, ErrBranchNotFound
	}
	now := time.Now()
	open, err := s.hoursService.IsBranchOpenAt(branch.ID, now)
	if err != nil {
		return nil, err
	}
	if !branch.IsActive || !open {
		return nil, ErrBranchClosed
	}

	lines := make([]orderLine, 0, len(cartItems))
	for _, ci := range cartItems {
		if ci.Product == nil {
			return nil, ErrProductNotFound
		}
		if ci.Product.BranchID != branch.ID {
			return nil, ErrMixedBranches
		}
		lines = append(lines, orderLine{Product: ci.Product, Quantity: ci.Quantity})
	}

	items, subtotal, taxAmount, total := buildOrderItems(lines, branch.DeliveryFee)

	order := &model.Order{
		OrderNumber:    generateOrderNumber(now),
		CustomerID:     userID,
		OrganizationID: branch.OrganizationID,
		BranchID:       branch.ID,
		AddressID:      req.AddressID,
		Status:         model.StatusPending,
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DeliveryAmount: branch.DeliveryFee,
		TotalAmount:    total,
		Currency:       lines[0].Product.Currency,
		Items:          items,
	}

	if err := s.orderRepo.PlaceOrder(order, userID); err != nil {
		return nil, err
	}

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "order_update",
		"action": "order_created",
		"order": map[string]interface{}{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"branch_id":    order.BranchID,
			"status":       order.Status,
			"total_amount": order.TotalAmount,
		},
	})

	return order, nil
}

// UpdateStatus runs the pre-flight transition check, then hands the
// order to the stock adjustment engine, which moves inventory and
// persists the new status in one transaction.
func (s *orderService) UpdateStatus(orderID uuid.UUID, target model.OrderStatus, actorName string) (*model.Order, []model.StockAdjustment, error) {
	if !model.KnownStatus(target) {
		return nil, nil, &ValidationError{Reason: fmt.Sprintf("unknown status '%s'", target)}
	}

	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}

	if result := model.ValidateTransition(order.Status, target); !result.Valid {
		return nil, nil, &ValidationError{Reason: result.Reason}
	}

	adjustments, err := s.stockService.AdjustStockForStatusChange(order, order.Status, target)
	if err != nil {
		return nil, nil, err
	}
	order.Status = target

	if len(adjustments) > 0 {
		s.storefront.Invalidate(context.Background(), order.BranchID)
	}

	go s.wsHub.BroadcastJSON(map[string]interface{}{
		"type":   "order_update",
		"action": "status_changed",
		"order": map[string]interface{}{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"branch_id":    order.BranchID,
			"status":       order.Status,
		},
		"adjustments": adjustments,
		"message":     fmt.Sprintf("%s moved order %s to %s", actorName, order.OrderNumber, target),
	})

	return order, adjustments, nil
}

func (s *orderService) GetOrder(id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListByCustomer(customerID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByCustomer(customerID)
}

func (s *orderService) ListByBranch(branchID uuid.UUID) ([]model.Order, error) {
	return s.orderRepo.FindByBranch(branchID)
}
