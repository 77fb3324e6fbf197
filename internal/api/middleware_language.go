package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	cookieLanguage := c.Cookies(languageCookieName)
	language := handler.i18n.DetectFromAcceptLanguage(c.Get("Accept-Language"))
	if cookieLanguage != "" {
		language = handler.i18n.NormalizeLanguage(cookieLanguage)
	}

	if cookieLanguage != language {
		c.Cookie(&fiber.Cookie{
			Name:     languageCookieName,
			Value:    language,
			Path:     "/",
			HTTPOnly: true,
			Secure:   handler.cookieSecure,
			SameSite: "Lax",
			Expires:  handler.now().Add(365 * 24 * time.Hour),
		})
	}

	c.Locals(contextLanguageKey, language)
	return c.Next()
}
