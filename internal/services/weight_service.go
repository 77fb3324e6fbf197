package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/terraincognita07/nutrilume/internal/models"
)

var (
	ErrWeightEntryLoadFailed   = errors.New("load weight entry failed")
	ErrWeightEntrySaveFailed   = errors.New("save weight entry failed")
	ErrWeightEntryDeleteFailed = errors.New("delete weight entry failed")
)

type WeightRepository interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.WeightEntry, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.WeightEntry, bool, error)
	Create(entry *models.WeightEntry) error
	Save(entry *models.WeightEntry) error
	DeleteByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) error
}

type WeightTrend struct {
	Entries  []models.WeightEntry
	LatestKg *float64
	ChangeKg *float64
}

type WeightService struct {
	weights WeightRepository
}

func NewWeightService(weights WeightRepository) *WeightService {
	return &WeightService{weights: weights}
}

// UpsertWeight records one weight per day; a second record for the same day
// replaces the first.
func (service *WeightService) UpsertWeight(userID uint, day time.Time, weightKg float64, location *time.Location) (models.WeightEntry, error) {
	if weightKg < MinWeightKg || weightKg > MaxWeightKg {
		return models.WeightEntry{}, fmt.Errorf("%w: %g", ErrWeightOutOfRange, weightKg)
	}

	dayStart, dayEnd := DayRange(day, location)
	entry, found, err := service.weights.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.WeightEntry{}, ErrWeightEntryLoadFailed
	}

	if found {
		entry.WeightKg = weightKg
		if err := service.weights.Save(&entry); err != nil {
			return models.WeightEntry{}, ErrWeightEntrySaveFailed
		}
		return entry, nil
	}

	entry = models.WeightEntry{
		UserID:   userID,
		Day:      dayStart,
		WeightKg: weightKg,
	}
	if err := service.weights.Create(&entry); err != nil {
		return models.WeightEntry{}, ErrWeightEntrySaveFailed
	}
	return entry, nil
}

func (service *WeightService) DeleteWeight(userID uint, day time.Time, location *time.Location) error {
	dayStart, dayEnd := DayRange(day, location)
	if err := service.weights.DeleteByUserAndDayRange(userID, dayStart, dayEnd); err != nil {
		return ErrWeightEntryDeleteFailed
	}
	return nil
}

func (service *WeightService) FetchTrend(userID uint, from *time.Time, to *time.Time, location *time.Location) (WeightTrend, error) {
	fromStart, toEnd := OptionalDayBounds(from, to, location)
	entries, err := service.weights.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return WeightTrend{}, err
	}
	return BuildWeightTrend(entries), nil
}

// BuildWeightTrend expects entries ordered by day ascending.
func BuildWeightTrend(entries []models.WeightEntry) WeightTrend {
	trend := WeightTrend{Entries: entries}
	if len(entries) == 0 {
		return trend
	}

	latest := entries[len(entries)-1].WeightKg
	change := roundToTenth(latest - entries[0].WeightKg)
	trend.LatestKg = &latest
	trend.ChangeKg = &change
	if math.Signbit(change) && change == 0 {
		zero := 0.0
		trend.ChangeKg = &zero
	}
	return trend
}
