package api

import (
	"github.com/terraincognita07/nutrilume/internal/db"
	"github.com/terraincognita07/nutrilume/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.ensureDependencies()
	return handler
}

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users)
	}
	if handler.setupService == nil {
		handler.setupService = services.NewSetupService(handler.repositories.Users)
	}
	if handler.onboardingService == nil {
		handler.onboardingService = services.NewOnboardingService(handler.repositories.Users)
	}
	if handler.profileService == nil {
		handler.profileService = services.NewProfileService(handler.repositories.Users)
	}
	if handler.foodLogService == nil {
		handler.foodLogService = services.NewFoodLogService(handler.repositories.FoodLogs, handler.mealSlots)
	}
	if handler.dashboardService == nil {
		handler.dashboardService = services.NewDashboardService(handler.foodLogService)
	}
	if handler.weightService == nil {
		handler.weightService = services.NewWeightService(handler.repositories.Weights)
	}
	if handler.exportService == nil {
		handler.exportService = services.NewExportService(handler.foodLogService)
	}
	if handler.settingsService == nil {
		handler.settingsService = services.NewSettingsService(handler.repositories.Users)
	}
}
