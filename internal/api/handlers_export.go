package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	userID, from, to, ok, err := handler.exportRequest(c)
	if !ok {
		return err
	}

	handler.ensureDependencies()
	summary, err := handler.exportService.BuildSummary(userID, from, to, handler.location)
	if err != nil {
		return handler.internalError(c, "export summary", err)
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	userID, from, to, ok, err := handler.exportRequest(c)
	if !ok {
		return err
	}

	handler.ensureDependencies()
	rows, err := handler.exportService.BuildCSVRows(userID, from, to, handler.location)
	if err != nil {
		return handler.internalError(c, "export csv", err)
	}

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return handler.internalError(c, "write csv header", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return handler.internalError(c, "write csv rows", err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", handler.exportFilename("csv")))
	return c.Send(buffer.Bytes())
}

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	userID, from, to, ok, err := handler.exportRequest(c)
	if !ok {
		return err
	}

	handler.ensureDependencies()
	entries, err := handler.exportService.BuildJSONEntries(userID, from, to, handler.location)
	if err != nil {
		return handler.internalError(c, "export json", err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", handler.exportFilename("json")))
	return c.JSON(fiber.Map{
		"exported_at": handler.now().In(handler.location).Format(time.RFC3339),
		"entries":     entries,
	})
}

// exportRequest resolves the user and the optional from/to range. When ok is
// false the error response has already been written and err is its result.
func (handler *Handler) exportRequest(c *fiber.Ctx) (uint, *time.Time, *time.Time, bool, error) {
	user, ok := currentUser(c)
	if !ok {
		return 0, nil, nil, false, handler.apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := services.ParseDayRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return 0, nil, nil, false, handler.respondServiceError(c, "parse export range", err)
	}
	return user.ID, from, to, true, nil
}

func (handler *Handler) exportFilename(extension string) string {
	return fmt.Sprintf("nutrilume-export-%s.%s", handler.today().Format(dateLayout), extension)
}
