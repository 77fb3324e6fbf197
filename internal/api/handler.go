package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/nutrilume/internal/db"
	"github.com/terraincognita07/nutrilume/internal/i18n"
	"github.com/terraincognita07/nutrilume/internal/services"
	"gorm.io/gorm"
)

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	mealSlots    []string
	i18n         *i18n.Manager
	now          func() time.Time

	repositories      *db.Repositories
	authService       *services.AuthService
	setupService      *services.SetupService
	onboardingService *services.OnboardingService
	profileService    *services.ProfileService
	foodLogService    *services.FoodLogService
	dashboardService  *services.DashboardService
	weightService     *services.WeightService
	exportService     *services.ExportService
	settingsService   *services.SettingsService
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool, mealSlots []string) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if len(mealSlots) == 0 {
		return nil, errors.New("at least one meal slot is required")
	}
	if location == nil {
		location = time.Local
	}

	slots := make([]string, len(mealSlots))
	copy(slots, mealSlots)

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		mealSlots:    slots,
		i18n:         i18nManager,
		now:          time.Now,
	}
	return handler.withDependencies(database), nil
}

func (handler *Handler) today() time.Time {
	return services.DateAtLocation(handler.now().In(handler.location), handler.location)
}
