package service

import (
	"testing"
	"time"

	"go-marketplace-ws/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memHoursRepo struct {
	windows map[uuid.UUID]*model.BranchHours
}

func newMemHoursRepo() *memHoursRepo {
	return &memHoursRepo{windows: make(map[uuid.UUID]*model.BranchHours)}
}

func (r *memHoursRepo) Create(hours *model.BranchHours) error {
	if hours.ID == uuid.Nil {
		hours.ID = uuid.New()
	}
	copied := *hours
	r.windows[hours.ID] = &copied
	return nil
}

func (r *memHoursRepo) Update(hours *model.BranchHours) error {
	copied := *hours
	r.windows[hours.ID] = &copied
	return nil
}

func (r *memHoursRepo) Delete(id uuid.UUID, deletedBy string) error {
	delete(r.windows, id)
	return nil
}

func (r *memHoursRepo) FindByID(id uuid.UUID) (*model.BranchHours, error) {
	if w, ok := r.windows[id]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memHoursRepo) FindByBranch(branchID uuid.UUID) ([]model.BranchHours, error) {
	var out []model.BranchHours
	for _, w := range r.windows {
		if w.BranchID == branchID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *memHoursRepo) FindByBranchAndWeekday(branchID uuid.UUID, weekday int) ([]model.BranchHours, error) {
	var out []model.BranchHours
	for _, w := range r.windows {
		if w.BranchID == branchID && w.Weekday == weekday {
			out = append(out, *w)
		}
	}
	return out, nil
}

type memOrgRepo struct {
	branches map[uuid.UUID]*model.Branch
}

func newMemOrgRepo() *memOrgRepo {
	return &memOrgRepo{branches: make(map[uuid.UUID]*model.Branch)}
}

func (r *memOrgRepo) Create(org *model.Organization) error { return nil }
func (r *memOrgRepo) Update(org *model.Organization) error { return nil }
func (r *memOrgRepo) FindByID(id uuid.UUID) (*model.Organization, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *memOrgRepo) FindBySlug(slug string) (*model.Organization, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *memOrgRepo) FindAll() ([]model.Organization, error) { return nil, nil }

func (r *memOrgRepo) CreateBranch(branch *model.Branch) error { return nil }
func (r *memOrgRepo) UpdateBranch(branch *model.Branch) error { return nil }

func (r *memOrgRepo) FindBranchByID(id uuid.UUID) (*model.Branch, error) {
	if b, ok := r.branches[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memOrgRepo) FindBranchesByOrg(orgID uuid.UUID) ([]model.Branch, error) {
	return nil, nil
}

func hoursFixtures() (HoursService, *memHoursRepo, uuid.UUID) {
	hoursRepo := newMemHoursRepo()
	orgRepo := newMemOrgRepo()

	branch := &model.Branch{IsActive: true}
	branch.ID = uuid.New()
	orgRepo.branches[branch.ID] = branch

	return NewHoursService(hoursRepo, orgRepo), hoursRepo, branch.ID
}

// at builds a time on a fixed week where day 0 is a Sunday.
func at(weekday int, hhmm string) time.Time {
	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) // a Sunday
	parsed, _ := time.Parse("15:04", hhmm)
	return base.AddDate(0, 0, weekday).
		Add(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute)
}

func TestHours_TimeFormatValidation(t *testing.T) {
	svc, _, branchID := hoursFixtures()

	bad := []string{"8:30", "24:00", "12:60", "ab:cd", "0830", "12:3", ""}
	for _, v := range bad {
		_, err := svc.SetWindow(&SetHoursRequest{
			BranchID: branchID.String(), Weekday: 1, OpenTime: v, CloseTime: "17:00",
		}, "tester")
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "open time %q", v)
	}

	good := []string{"00:00", "08:30", "17:59", "23:59"}
	for _, v := range good {
		_, err := svc.SetWindow(&SetHoursRequest{
			BranchID: branchID.String(), Weekday: 1, OpenTime: v, CloseTime: "23:58",
		}, "tester")
		require.NoError(t, err, "open time %q", v)
	}
}

func TestHours_WeekdayAndWindowValidation(t *testing.T) {
	svc, _, branchID := hoursFixtures()

	_, err := svc.SetWindow(&SetHoursRequest{
		BranchID: branchID.String(), Weekday: 7, OpenTime: "08:00", CloseTime: "17:00",
	}, "tester")
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = svc.SetWindow(&SetHoursRequest{
		BranchID: branchID.String(), Weekday: -1, OpenTime: "08:00", CloseTime: "17:00",
	}, "tester")
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	_, err = svc.SetWindow(&SetHoursRequest{
		BranchID: branchID.String(), Weekday: 1, OpenTime: "08:00", CloseTime: "08:00",
	}, "tester")
	assert.ErrorIs(t, err, ErrSameOpenClose)

	_, err = svc.SetWindow(&SetHoursRequest{
		BranchID: uuid.New().String(), Weekday: 1, OpenTime: "08:00", CloseTime: "17:00",
	}, "tester")
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestHours_OvernightDetection(t *testing.T) {
	svc, _, branchID := hoursFixtures()

	day, err := svc.SetWindow(&SetHoursRequest{
		BranchID: branchID.String(), Weekday: 1, OpenTime: "08:00", CloseTime: "17:00",
	}, "tester")
	require.NoError(t, err)
	assert.False(t, day.IsOvernight)

	night, err := svc.SetWindow(&SetHoursRequest{
		BranchID: branchID.String(), Weekday: 5, OpenTime: "22:00", CloseTime: "06:00",
	}, "tester")
	require.NoError(t, err)
	assert.True(t, night.IsOvernight)
}

func TestHours_NoWindowsMeansAlwaysOpen(t *testing.T) {
	svc, _, branchID := hoursFixtures()

	open, err := svc.IsBranchOpenAt(branchID, at(2, "03:00"))
	require.NoError(t, err)
	assert.True(t, open)
}

func TestHours_DaytimeWindow(t *testing.T) {
	svc, _, branchID := hoursFixtures()

	_, err := svc.SetWindow(&SetHoursRequest{
		BranchID: branchID.String(), Weekday: 1, OpenTime: "08:00", CloseTime: "17:00",
	}, "tester")
	require.NoError(t, err)

	cases := []struct {
		weekday int
		hhmm    string
		open    bool
	}{
		{1, "08:00", true},  // opening minute
		{1, "12:00", true},
		{1, "16:59", true},
		{1, "17:00", false}, // closing minute is exclusive
		{1, "07:59", false},
		{2, "12:00", false}, // other day
	}
	for _, tc := range cases {
		open, err := svc.IsBranchOpenAt(branchID, at(tc.weekday, tc.hhmm))
		require.NoError(t, err)
		assert.Equal(t, tc.open, open, "weekday %d at %s", tc.weekday, tc.hhmm)
	}
}

func TestHours_OvernightWindowSpillsIntoNextDay(t *testing.T) {
	svc, _, branchID := hoursFixtures()

	// Friday 22:00 through Saturday 06:00.
	_, err := svc.SetWindow(&SetHoursRequest{
		BranchID: branchID.String(), Weekday: 5, OpenTime: "22:00", CloseTime: "06:00",
	}, "tester")
	require.NoError(t, err)

	cases := []struct {
		weekday int
		hhmm    string
		open    bool
	}{
		{5, "22:00", true},  // opens Friday night
		{5, "23:30", true},
		{6, "03:00", true},  // Saturday early hours still covered
		{6, "05:59", true},
		{6, "06:00", false}, // closed at the closing minute
		{5, "21:59", false},
		{6, "12:00", false},
		{4, "23:00", false}, // Thursday night not covered
	}
	for _, tc := range cases {
		open, err := svc.IsBranchOpenAt(branchID, at(tc.weekday, tc.hhmm))
		require.NoError(t, err)
		assert.Equal(t, tc.open, open, "weekday %d at %s", tc.weekday, tc.hhmm)
	}
}

func TestHours_DeleteWindow(t *testing.T) {
	svc, repo, branchID := hoursFixtures()

	w, err := svc.SetWindow(&SetHoursRequest{
		BranchID: branchID.String(), Weekday: 1, OpenTime: "08:00", CloseTime: "17:00",
	}, "tester")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteWindow(w.ID, "tester"))
	assert.Empty(t, repo.windows)

	assert.ErrorIs(t, svc.DeleteWindow(w.ID, "tester"), ErrHoursNotFound)
}
