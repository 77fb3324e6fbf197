package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/nutrilume/internal/models"
)

var (
	ErrFoodEntryNotFound     = errors.New("food entry not found")
	ErrFoodEntryLoadFailed   = errors.New("load food entry failed")
	ErrFoodEntryCreateFailed = errors.New("create food entry failed")
	ErrFoodEntryUpdateFailed = errors.New("update food entry failed")
	ErrFoodEntryDeleteFailed = errors.New("delete food entry failed")
)

type FoodLogRepository interface {
	ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.FoodLogEntry, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.FoodLogEntry, error)
	FindByIDForUser(entryID uint, userID uint) (models.FoodLogEntry, bool, error)
	Create(entry *models.FoodLogEntry) error
	Save(entry *models.FoodLogEntry) error
	Delete(entry *models.FoodLogEntry) error
}

type FoodLogService struct {
	entries   FoodLogRepository
	mealSlots []string
}

func NewFoodLogService(entries FoodLogRepository, mealSlots []string) *FoodLogService {
	slots := make([]string, len(mealSlots))
	copy(slots, mealSlots)
	return &FoodLogService{
		entries:   entries,
		mealSlots: slots,
	}
}

func (service *FoodLogService) MealSlots() []string {
	slots := make([]string, len(service.mealSlots))
	copy(slots, service.mealSlots)
	return slots
}

func (service *FoodLogService) FetchDayEntries(userID uint, day time.Time, location *time.Location) ([]models.FoodLogEntry, error) {
	dayStart, dayEnd := DayRange(day, location)
	return service.entries.ListByUserDayRange(userID, dayStart, dayEnd)
}

func (service *FoodLogService) FetchEntriesForOptionalRange(userID uint, from *time.Time, to *time.Time, location *time.Location) ([]models.FoodLogEntry, error) {
	fromStart, toEnd := OptionalDayBounds(from, to, location)
	return service.entries.ListByUserRange(userID, fromStart, toEnd)
}

func (service *FoodLogService) AddEntry(userID uint, day time.Time, input FoodEntryInput, location *time.Location) (models.FoodLogEntry, error) {
	normalized, err := NormalizeFoodEntryInput(input, service.mealSlots)
	if err != nil {
		return models.FoodLogEntry{}, err
	}

	entry := models.FoodLogEntry{
		UserID: userID,
		Day:    DateAtLocation(day, location),
	}
	applyFoodEntryInput(&entry, normalized)
	if err := service.entries.Create(&entry); err != nil {
		return models.FoodLogEntry{}, ErrFoodEntryCreateFailed
	}
	return entry, nil
}

// ReplaceEntry overwrites every editable field of an entry. Day and owner stay fixed.
func (service *FoodLogService) ReplaceEntry(userID uint, entryID uint, input FoodEntryInput) (models.FoodLogEntry, error) {
	normalized, err := NormalizeFoodEntryInput(input, service.mealSlots)
	if err != nil {
		return models.FoodLogEntry{}, err
	}

	entry, err := service.findOwnedEntry(userID, entryID)
	if err != nil {
		return models.FoodLogEntry{}, err
	}

	applyFoodEntryInput(&entry, normalized)
	if err := service.entries.Save(&entry); err != nil {
		return models.FoodLogEntry{}, ErrFoodEntryUpdateFailed
	}
	return entry, nil
}

func (service *FoodLogService) DeleteEntry(userID uint, entryID uint) error {
	entry, err := service.findOwnedEntry(userID, entryID)
	if err != nil {
		return err
	}
	if err := service.entries.Delete(&entry); err != nil {
		return ErrFoodEntryDeleteFailed
	}
	return nil
}

func (service *FoodLogService) findOwnedEntry(userID uint, entryID uint) (models.FoodLogEntry, error) {
	entry, found, err := service.entries.FindByIDForUser(entryID, userID)
	if err != nil {
		return models.FoodLogEntry{}, ErrFoodEntryLoadFailed
	}
	if !found {
		return models.FoodLogEntry{}, ErrFoodEntryNotFound
	}
	return entry, nil
}

func applyFoodEntryInput(entry *models.FoodLogEntry, input FoodEntryInput) {
	entry.MealType = input.MealType
	entry.Name = input.Name
	entry.Quantity = input.Quantity
	entry.Unit = input.Unit
	entry.Calories = input.Calories
	entry.ProteinG = input.ProteinG
	entry.CarbsG = input.CarbsG
	entry.FatG = input.FatG
}
