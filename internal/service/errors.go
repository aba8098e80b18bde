package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")

	ErrProductNotFound  = errors.New("product not found")
	ErrGroupNotFound    = errors.New("product group not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrBranchNotFound   = errors.New("branch not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrSKUExists        = errors.New("SKU already exists")

	ErrCartEmpty     = errors.New("cart is empty")
	ErrBranchClosed  = errors.New("branch is closed")
	ErrMixedBranches = errors.New("cart mixes products from different branches")
)

// ValidationError covers invalid input and illegal status transitions.
// Raised before any mutation; nothing to roll back.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// InsufficientStockError aborts an entire adjustment transaction. Carries
// the offending product plus the available/requested figures so the
// caller can prompt the customer to reduce quantity.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product '%s': %d available, %d requested",
		e.ProductName, e.Available, e.Requested)
}
