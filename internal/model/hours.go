package model

import (
	"time"

	"github.com/google/uuid"
)

// BranchHours is one operating window of a branch for a given weekday.
// Supports overnight windows (e.g., 22:00 - 06:00 next day): for those
// OpenTime > CloseTime and IsOvernight is set on save.
type BranchHours struct {
	BaseModel
	BranchID uuid.UUID `gorm:"type:uuid;not null;index" json:"branch_id" validate:"uuid_required"`
	Branch   *Branch   `gorm:"foreignKey:BranchID" json:"branch,omitempty"`

	// 0 = Sunday .. 6 = Saturday, matching time.Weekday
	Weekday int `gorm:"not null;index" json:"weekday" validate:"gte=0,lte=6"`

	// HH:MM format, stored as string for minute precision
	OpenTime  string `gorm:"type:varchar(5);not null" json:"open_time" validate:"required"`
	CloseTime string `gorm:"type:varchar(5);not null" json:"close_time" validate:"required"`

	// Set on save when the window crosses midnight
	IsOvernight bool `gorm:"default:false" json:"is_overnight"`
}

func (BranchHours) TableName() string {
	return "branch_hours"
}

// BranchHoursResponse for API responses
type BranchHoursResponse struct {
	ID          uuid.UUID `json:"id"`
	BranchID    uuid.UUID `json:"branch_id"`
	Weekday     int       `json:"weekday"`
	OpenTime    string    `json:"open_time"`
	CloseTime   string    `json:"close_time"`
	IsOvernight bool      `json:"is_overnight"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToResponse converts BranchHours to BranchHoursResponse
func (h *BranchHours) ToResponse() BranchHoursResponse {
	return BranchHoursResponse{
		ID:          h.ID,
		BranchID:    h.BranchID,
		Weekday:     h.Weekday,
		OpenTime:    h.OpenTime,
		CloseTime:   h.CloseTime,
		IsOvernight: h.IsOvernight,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}
