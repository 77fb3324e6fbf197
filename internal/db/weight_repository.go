package db

import (
	"time"

	"github.com/terraincognita07/nutrilume/internal/models"
	"gorm.io/gorm"
)

type WeightRepository struct {
	database *gorm.DB
}

func NewWeightRepository(database *gorm.DB) *WeightRepository {
	return &WeightRepository{database: database}
}

func (repo *WeightRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.WeightEntry, error) {
	entries := make([]models.WeightEntry, 0)
	query := repo.database.Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("day >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("day < ?", *toEnd)
	}
	err := query.Order("day ASC").Find(&entries).Error
	return entries, err
}

func (repo *WeightRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.WeightEntry, bool, error) {
	var entry models.WeightEntry
	result := repo.database.
		Where("user_id = ? AND day >= ? AND day < ?", userID, dayStart, dayEnd).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.WeightEntry{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.WeightEntry{}, false, nil
	}
	return entry, true, nil
}

func (repo *WeightRepository) Create(entry *models.WeightEntry) error {
	return repo.database.Create(entry).Error
}

func (repo *WeightRepository) Save(entry *models.WeightEntry) error {
	return repo.database.Save(entry).Error
}

func (repo *WeightRepository) DeleteByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) error {
	return repo.database.
		Where("user_id = ? AND day >= ? AND day < ?", userID, dayStart, dayEnd).
		Delete(&models.WeightEntry{}).Error
}
