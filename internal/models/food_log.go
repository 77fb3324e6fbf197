package models

import "time"

type FoodLogEntry struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;index:idx_food_log_user_day"`
	Day       time.Time `gorm:"type:date;not null;index:idx_food_log_user_day"`
	MealType  string    `gorm:"not null"`
	Name      string    `gorm:"not null"`
	Quantity  float64   `gorm:"not null"`
	Unit      string    `gorm:"not null;default:''"`
	Calories  float64   `gorm:"not null;default:0"`
	ProteinG  float64   `gorm:"column:protein_g;not null;default:0"`
	CarbsG    float64   `gorm:"column:carbs_g;not null;default:0"`
	FatG      float64   `gorm:"column:fat_g;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
