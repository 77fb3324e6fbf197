package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	FoodLogs *FoodLogRepository
	Weights  *WeightRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		FoodLogs: NewFoodLogRepository(database),
		Weights:  NewWeightRepository(database),
	}
}
