package db

import (
	"time"

	"github.com/terraincognita07/nutrilume/internal/models"
	"gorm.io/gorm"
)

type FoodLogRepository struct {
	database *gorm.DB
}

func NewFoodLogRepository(database *gorm.DB) *FoodLogRepository {
	return &FoodLogRepository{database: database}
}

// ListByUserDayRange returns a day's entries in insertion order.
func (repo *FoodLogRepository) ListByUserDayRange(userID uint, dayStart time.Time, dayEnd time.Time) ([]models.FoodLogEntry, error) {
	entries := make([]models.FoodLogEntry, 0)
	err := repo.database.
		Where("user_id = ? AND day >= ? AND day < ?", userID, dayStart, dayEnd).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

func (repo *FoodLogRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.FoodLogEntry, error) {
	entries := make([]models.FoodLogEntry, 0)
	query := repo.database.Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("day >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("day < ?", *toEnd)
	}
	err := query.Order("day ASC, id ASC").Find(&entries).Error
	return entries, err
}

func (repo *FoodLogRepository) FindByIDForUser(entryID uint, userID uint) (models.FoodLogEntry, bool, error) {
	var entry models.FoodLogEntry
	result := repo.database.Where("id = ? AND user_id = ?", entryID, userID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.FoodLogEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.FoodLogEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *FoodLogRepository) Create(entry *models.FoodLogEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *FoodLogRepository) Save(entry *models.FoodLogEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *FoodLogRepository) Delete(entry *models.FoodLogEntry) error {
	return repo.database.Delete(entry).Error
}
