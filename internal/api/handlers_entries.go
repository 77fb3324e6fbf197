package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/models"
	"github.com/terraincognita07/nutrilume/internal/services"
)

type foodEntryView struct {
	ID       uint    `json:"id"`
	Date     string  `json:"date"`
	MealType string  `json:"meal_type"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

func (handler *Handler) newFoodEntryView(entry models.FoodLogEntry) foodEntryView {
	return foodEntryView{
		ID:       entry.ID,
		Date:     handler.formatDay(entry.Day),
		MealType: entry.MealType,
		Name:     entry.Name,
		Quantity: entry.Quantity,
		Unit:     entry.Unit,
		Calories: entry.Calories,
		ProteinG: entry.ProteinG,
		CarbsG:   entry.CarbsG,
		FatG:     entry.FatG,
	}
}

func (handler *Handler) newFoodEntryViews(entries []models.FoodLogEntry) []foodEntryView {
	views := make([]foodEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, handler.newFoodEntryView(entry))
	}
	return views
}

func (input foodEntryInput) toService() services.FoodEntryInput {
	return services.FoodEntryInput{
		MealType: input.MealType,
		Name:     input.Name,
		Quantity: input.Quantity,
		Unit:     input.Unit,
		Calories: input.Calories,
		ProteinG: input.ProteinG,
		CarbsG:   input.CarbsG,
		FatG:     input.FatG,
	}
}

func (handler *Handler) ListDayEntries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, ok := handler.parseDateParam(c, "date")
	if !ok {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.ensureDependencies()
	entries, err := handler.foodLogService.FetchDayEntries(user.ID, day, handler.location)
	if err != nil {
		return handler.internalError(c, "list entries", err)
	}
	return c.JSON(handler.newFoodEntryViews(entries))
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, ok := handler.parseDateParam(c, "date")
	if !ok {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	input := foodEntryInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	entry, err := handler.foodLogService.AddEntry(user.ID, day, input.toService(), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "create entry", err)
	}
	return c.Status(fiber.StatusCreated).JSON(handler.newFoodEntryView(entry))
}

func (handler *Handler) UpdateEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "entry not found")
	}

	input := foodEntryInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	entry, err := handler.foodLogService.ReplaceEntry(user.ID, entryID, input.toService())
	if err != nil {
		return handler.respondServiceError(c, "update entry", err)
	}
	return c.JSON(handler.newFoodEntryView(entry))
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	entryID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.apiError(c, fiber.StatusNotFound, "entry not found")
	}

	handler.ensureDependencies()
	if err := handler.foodLogService.DeleteEntry(user.ID, entryID); err != nil {
		return handler.respondServiceError(c, "delete entry", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
