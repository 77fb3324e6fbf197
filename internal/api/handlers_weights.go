package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/models"
	"github.com/terraincognita07/nutrilume/internal/services"
)

type weightEntryView struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

type weightTrendResponse struct {
	Entries  []weightEntryView `json:"entries"`
	LatestKg *float64          `json:"latest_kg"`
	ChangeKg *float64          `json:"change_kg"`
}

func (handler *Handler) newWeightEntryView(entry models.WeightEntry) weightEntryView {
	return weightEntryView{
		Date:     handler.formatDay(entry.Day),
		WeightKg: entry.WeightKg,
	}
}

func (handler *Handler) ListWeights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return handler.respondServiceError(c, "parse weight range", err)
	}

	handler.ensureDependencies()
	trend, err := handler.weightService.FetchTrend(user.ID, from, to, handler.location)
	if err != nil {
		return handler.internalError(c, "list weights", err)
	}

	entries := make([]weightEntryView, 0, len(trend.Entries))
	for _, entry := range trend.Entries {
		entries = append(entries, handler.newWeightEntryView(entry))
	}
	return c.JSON(weightTrendResponse{
		Entries:  entries,
		LatestKg: trend.LatestKg,
		ChangeKg: trend.ChangeKg,
	})
}

func (handler *Handler) UpsertWeight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, ok := handler.parseDateParam(c, "date")
	if !ok {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	input := weightInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	weightKg, err := services.ConvertWeightToKg(input.Weight, input.Unit)
	if err != nil {
		return handler.respondServiceError(c, "convert weight", err)
	}

	handler.ensureDependencies()
	entry, err := handler.weightService.UpsertWeight(user.ID, day, weightKg, handler.location)
	if err != nil {
		return handler.respondServiceError(c, "upsert weight", err)
	}
	return c.JSON(handler.newWeightEntryView(entry))
}

func (handler *Handler) DeleteWeight(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, ok := handler.parseDateParam(c, "date")
	if !ok {
		return handler.apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.ensureDependencies()
	if err := handler.weightService.DeleteWeight(user.ID, day, handler.location); err != nil {
		return handler.internalError(c, "delete weight", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
