package repository

import (
	"go-marketplace-ws/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HoursRepository interface {
	Create(hours *model.BranchHours) error
	Update(hours *model.BranchHours) error
	Delete(id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.BranchHours, error)
	FindByBranch(branchID uuid.UUID) ([]model.BranchHours, error)
	FindByBranchAndWeekday(branchID uuid.UUID, weekday int) ([]model.BranchHours, error)
}

type hoursRepo struct {
	db *gorm.DB
}

func NewHoursRepo(db *gorm.DB) HoursRepository {
	return &hoursRepo{db}
}

func (r *hoursRepo) Create(hours *model.BranchHours) error {
	return r.db.Create(hours).Error
}

func (r *hoursRepo) Update(hours *model.BranchHours) error {
	return r.db.Save(hours).Error
}

func (r *hoursRepo) Delete(id uuid.UUID, deletedBy string) error {
	return r.db.Model(&model.BranchHours{}).Where("id = ?", id).Updates(map[string]interface{}{
		"deleted_at": gorm.Expr("NOW()"),
		"deleted_by": deletedBy,
	}).Error
}

func (r *hoursRepo) FindByID(id uuid.UUID) (*model.BranchHours, error) {
	var hours model.BranchHours
	if err := r.db.First(&hours, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &hours, nil
}

func (r *hoursRepo) FindByBranch(branchID uuid.UUID) ([]model.BranchHours, error) {
	var windows []model.BranchHours
	err := r.db.Where("branch_id = ?", branchID).
		Order("weekday ASC, open_time ASC").Find(&windows).Error
	return windows, err
}

func (r *hoursRepo) FindByBranchAndWeekday(branchID uuid.UUID, weekday int) ([]model.BranchHours, error) {
	var windows []model.BranchHours
	err := r.db.Where("branch_id = ? AND weekday = ?", branchID, weekday).Find(&windows).Error
	return windows, err
}
