package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/services"
)

type mealSummaryView struct {
	MealType      string          `json:"meal_type"`
	Label         string          `json:"label"`
	Entries       []foodEntryView `json:"entries"`
	TotalCalories float64         `json:"total_calories"`
}

type daySummaryResponse struct {
	Date    string                    `json:"date"`
	Meals   []mealSummaryView         `json:"meals"`
	Daily   services.DailySummary     `json:"daily"`
	Targets services.NutritionTargets `json:"targets"`
}

func (handler *Handler) DaySummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, ok := handler.parseDateParam(c, "date")
	if !ok {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.ensureDependencies()
	ledger, err := handler.dashboardService.BuildDayLedger(user, day, handler.location)
	if err != nil {
		return handler.respondServiceError(c, "build day summary", err)
	}

	language := currentLanguage(c)
	meals := make([]mealSummaryView, 0, len(ledger.Meals))
	for _, meal := range ledger.Meals {
		meals = append(meals, mealSummaryView{
			MealType:      meal.MealType,
			Label:         handler.i18n.MealSlotLabel(language, meal.MealType),
			Entries:       handler.newFoodEntryViews(meal.Entries),
			TotalCalories: meal.TotalCalories,
		})
	}

	return c.JSON(daySummaryResponse{
		Date:    day.Format(dateLayout),
		Meals:   meals,
		Daily:   ledger.Daily,
		Targets: services.UserTargets(user),
	})
}
