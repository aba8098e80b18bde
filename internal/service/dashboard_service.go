package service

import (
	"time"

	"go-marketplace-ws/internal/model"
	"go-marketplace-ws/internal/repository"

	"github.com/google/uuid"
)

type DashboardService interface {
	GetStats(orgID uuid.UUID) (*repository.DashboardStats, error)
	GetOrderCounts(orgID uuid.UUID) (map[model.OrderStatus]int64, error)
	GetRevenueSeries(orgID uuid.UUID, days int) ([]repository.RevenuePoint, error)
	GetLowStock(orgID uuid.UUID, threshold int) ([]model.Product, error)
}

type dashboardService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
}

func NewDashboardService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) DashboardService {
	return &dashboardService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

func (s *dashboardService) GetStats(orgID uuid.UUID) (*repository.DashboardStats, error) {
	return s.orderRepo.DashboardStats(orgID)
}

func (s *dashboardService) GetOrderCounts(orgID uuid.UUID) (map[model.OrderStatus]int64, error) {
	return s.orderRepo.CountByStatus(orgID)
}

func (s *dashboardService) GetRevenueSeries(orgID uuid.UUID, days int) ([]repository.RevenuePoint, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.orderRepo.RevenueSeries(orgID, startDate, endDate)
}

func (s *dashboardService) GetLowStock(orgID uuid.UUID, threshold int) ([]model.Product, error) {
	return s.productRepo.LowStock(orgID, threshold)
}
