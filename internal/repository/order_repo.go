package repository

import (
	"time"

	"go-marketplace-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// PlaceOrder writes the order with its items and clears the
	// customer's cart in one transaction.
	PlaceOrder(order *model.Order, customerID uuid.UUID) error
	FindByID(id uuid.UUID) (*model.Order, error)
	FindByNumber(orderNumber string) (*model.Order, error)
	FindByCustomer(customerID uuid.UUID) ([]model.Order, error)
	FindByBranch(branchID uuid.UUID) ([]model.Order, error)

	CountByStatus(orgID uuid.UUID) (map[model.OrderStatus]int64, error)
	RevenueSeries(orgID uuid.UUID, startDate, endDate time.Time) ([]RevenuePoint, error)
	DashboardStats(orgID uuid.UUID) (*DashboardStats, error)
}

// RevenuePoint is one day of delivered-order revenue for chart data
type RevenuePoint struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardStats for the seller overview
type DashboardStats struct {
	TotalProducts int64           `json:"total_products"`
	OpenOrders    int64           `json:"open_orders"`
	LowStockCount int64           `json:"low_stock_count"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) PlaceOrder(order *model.Order, customerID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		// Hard delete so the (user, product) unique index is free for
		// the customer's next cart.
		return tx.Unscoped().Delete(&model.CartItem{}, "user_id = ?", customerID).Error
	})
}

func (r *orderRepo) FindByID(id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items").Preload("Items.Product").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByNumber(orderNumber string) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepo) FindByCustomer(customerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByBranch(branchID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").Where("branch_id = ?", branchID).
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) CountByStatus(orgID uuid.UUID) (map[model.OrderStatus]int64, error) {
	rows, err := r.db.Model(&model.Order{}).
		Select("status, COUNT(*) as count").
		Where("organization_id = ?", orgID).
		Group("status").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.OrderStatus]int64)
	for rows.Next() {
		var status model.OrderStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *orderRepo) RevenueSeries(orgID uuid.UUID, startDate, endDate time.Time) ([]RevenuePoint, error) {
	var results []RevenuePoint

	rows, err := r.db.Model(&model.Order{}).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as orders,
			COALESCE(SUM(total_amount), 0) as revenue
		`).
		Where("organization_id = ? AND status = ? AND created_at BETWEEN ? AND ?",
			orgID, model.StatusDelivered, startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var point RevenuePoint
		if err := rows.Scan(&point.Date, &point.Orders, &point.Revenue); err != nil {
			return nil, err
		}
		results = append(results, point)
	}
	return results, rows.Err()
}

func (r *orderRepo) DashboardStats(orgID uuid.UUID) (*DashboardStats, error) {
	var stats DashboardStats

	if err := r.db.Model(&model.Product{}).
		Where("organization_id = ?", orgID).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	openStatuses := []model.OrderStatus{
		model.StatusPending, model.StatusConfirmed, model.StatusPreparing,
		model.StatusReady, model.StatusOutForDelivery,
	}
	if err := r.db.Model(&model.Order{}).
		Where("organization_id = ? AND status IN ?", orgID, openStatuses).
		Count(&stats.OpenOrders).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("organization_id = ? AND stock <= ? AND stock_merge_type = ?",
			orgID, 5, model.StockIndependent).
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	err := r.db.Model(&model.Order{}).
		Where("organization_id = ? AND status = ?", orgID, model.StatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalRevenue).Error
	return &stats, err
}
