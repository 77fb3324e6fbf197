package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilume/internal/logger"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// apiError responds with the stable english code and its localized message.
func (handler *Handler) apiError(c *fiber.Ctx, status int, code string) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   code,
		"message": handler.i18n.Translate(currentLanguage(c), errorTranslationKey(code)),
	})
}

func (handler *Handler) internalError(c *fiber.Ctx, action string, err error) error {
	fields := []zap.Field{zap.String("action", action), zap.Error(err)}
	if requestID, ok := c.Locals(contextRequestID).(string); ok {
		fields = append(fields, zap.String("request_id", requestID))
	}
	logger.Error("request failed", fields...)
	return handler.apiError(c, fiber.StatusInternalServerError, "internal")
}

func errorTranslationKey(code string) string {
	return "error." + strings.ReplaceAll(strings.TrimSpace(code), " ", "_")
}

func (handler *Handler) parseDateParam(c *fiber.Ctx, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Params(name))
	parsed, err := time.ParseInLocation(dateLayout, raw, handler.location)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func parseIDParam(c *fiber.Ctx, name string) (uint, bool) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(c.Params(name)), 10, 64)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

func (handler *Handler) formatDay(day time.Time) string {
	return day.In(handler.location).Format(dateLayout)
}
