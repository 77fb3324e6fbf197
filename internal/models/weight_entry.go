package models

import "time"

type WeightEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uidx_weight_user_day"`
	Day       time.Time `gorm:"type:date;not null;uniqueIndex:uidx_weight_user_day"`
	WeightKg  float64   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
