package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-marketplace-ws/internal/model"
	"go-marketplace-ws/internal/repository"

	"github.com/google/uuid"
)

// Error definitions
var (
	ErrHoursNotFound     = errors.New("operating hours not found")
	ErrInvalidTimeFormat = errors.New("invalid time format, use HH:MM (e.g., 08:30, 17:59)")
	ErrInvalidWeekday    = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")
	ErrSameOpenClose     = errors.New("open time and close time cannot be the same")
)

type HoursService interface {
	SetWindow(req *SetHoursRequest, creatorID string) (*model.BranchHours, error)
	DeleteWindow(id uuid.UUID, deleterID string) error
	GetBranchHours(branchID uuid.UUID) ([]model.BranchHoursResponse, error)

	// IsBranchOpenAt reports whether any window covers t, including
	// overnight windows spilling over from the previous day.
	IsBranchOpenAt(branchID uuid.UUID, t time.Time) (bool, error)
}

type SetHoursRequest struct {
	BranchID  string `json:"branch_id" validate:"required"`
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"open_time" validate:"required"`  // HH:MM
	CloseTime string `json:"close_time" validate:"required"` // HH:MM
}

type hoursService struct {
	hoursRepo repository.HoursRepository
	orgRepo   repository.OrganizationRepository
}

func NewHoursService(hoursRepo repository.HoursRepository, orgRepo repository.OrganizationRepository) HoursService {
	return &hoursService{
		hoursRepo: hoursRepo,
		orgRepo:   orgRepo,
	}
}

// validateTimeFormat validates HH:MM format (00:00 - 23:59)
func validateTimeFormat(timeStr string) error {
	pattern := `^([01][0-9]|2[0-3]):([0-5][0-9])$`
	matched, _ := regexp.MatchString(pattern, timeStr)
	if !matched {
		return ErrInvalidTimeFormat
	}
	return nil
}

// timeToMinutes converts HH:MM to minutes since midnight
func timeToMinutes(timeStr string) int {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes
}

// isOvernight determines if the window crosses midnight
func isOvernight(openTime, closeTime string) bool {
	return timeToMinutes(closeTime) <= timeToMinutes(openTime)
}

func (s *hoursService) SetWindow(req *SetHoursRequest, creatorID string) (*model.BranchHours, error) {
	if err := validateTimeFormat(req.OpenTime); err != nil {
		return nil, err
	}
	if err := validateTimeFormat(req.CloseTime); err != nil {
		return nil, err
	}
	if req.OpenTime == req.CloseTime {
		return nil, ErrSameOpenClose
	}
	if req.Weekday < 0 || req.Weekday > 6 {
		return nil, ErrInvalidWeekday
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return nil, ErrBranchNotFound
	}
	if _, err := s.orgRepo.FindBranchByID(branchID); err != nil {
		return nil, ErrBranchNotFound
	}

	window := &model.BranchHours{
		BranchID:    branchID,
		Weekday:     req.Weekday,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		IsOvernight: isOvernight(req.OpenTime, req.CloseTime),
	}
	window.CreatedBy = creatorID
	window.UpdatedBy = creatorID

	if err := s.hoursRepo.Create(window); err != nil {
		return nil, err
	}
	return window, nil
}

func (s *hoursService) DeleteWindow(id uuid.UUID, deleterID string) error {
	if _, err := s.hoursRepo.FindByID(id); err != nil {
		return ErrHoursNotFound
	}
	return s.hoursRepo.Delete(id, deleterID)
}

func (s *hoursService) GetBranchHours(branchID uuid.UUID) ([]model.BranchHoursResponse, error) {
	windows, err := s.hoursRepo.FindByBranch(branchID)
	if err != nil {
		return nil, err
	}
	responses := make([]model.BranchHoursResponse, 0, len(windows))
	for i := range windows {
		responses = append(responses, windows[i].ToResponse())
	}
	return responses, nil
}

func (s *hoursService) IsBranchOpenAt(branchID uuid.UUID, t time.Time) (bool, error) {
	// A branch with no configured hours is treated as always open.
	all, err := s.hoursRepo.FindByBranch(branchID)
	if err != nil {
		return false, err
	}
	if len(all) == 0 {
		return true, nil
	}

	minutes := t.Hour()*60 + t.Minute()
	today := int(t.Weekday())
	yesterday := (today + 6) % 7

	for _, w := range all {
		open := timeToMinutes(w.OpenTime)
		close := timeToMinutes(w.CloseTime)

		if w.Weekday == today {
			if !w.IsOvernight && minutes >= open && minutes < close {
				return true, nil
			}
			// Overnight window opening today: covered from open onward.
			if w.IsOvernight && minutes >= open {
				return true, nil
			}
		}
		// Overnight window from yesterday still covers the early hours.
		if w.Weekday == yesterday && w.IsOvernight && minutes < close {
			return true, nil
		}
	}
	return false, nil
}
