package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/nutrilume/internal/models"
)

var (
	ErrTargetsNotSet         = errors.New("nutrition targets not set")
	ErrStoredMealSlotRetired = errors.New("stored entry uses a meal slot that is no longer configured")
)

type DashboardEntryReader interface {
	FetchDayEntries(userID uint, day time.Time, location *time.Location) ([]models.FoodLogEntry, error)
	MealSlots() []string
}

type DashboardService struct {
	entries DashboardEntryReader
}

func NewDashboardService(entries DashboardEntryReader) *DashboardService {
	return &DashboardService{entries: entries}
}

// BuildDayLedger loads the user's persisted targets and one day's entries and
// aggregates them. Users without targets get ErrTargetsNotSet; no default
// target is assumed here. Entries stored under a slot later dropped from the
// configuration surface as ErrStoredMealSlotRetired.
func (service *DashboardService) BuildDayLedger(user *models.User, day time.Time, location *time.Location) (DayLedger, error) {
	if user == nil || !user.HasTargets() {
		return DayLedger{}, ErrTargetsNotSet
	}

	entries, err := service.entries.FetchDayEntries(user.ID, day, location)
	if err != nil {
		return DayLedger{}, err
	}
	ledger, err := AggregateDay(entries, UserTargets(user), service.entries.MealSlots())
	if errors.Is(err, ErrUnknownMealType) {
		return DayLedger{}, fmt.Errorf("%w: %v", ErrStoredMealSlotRetired, err)
	}
	return ledger, err
}
