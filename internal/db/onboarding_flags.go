package db

import (
	"fmt"
	"strconv"

	"github.com/terraincognita07/nutrilume/internal/logger"
	"github.com/terraincognita07/nutrilume/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// reconcileOnboardingFlags folds the untyped legacy "completed" column into the
// boolean onboarding_completed column. A row is touched at most once: the
// legacy value is cleared in the same statement that writes the boolean.
func reconcileOnboardingFlags(database *gorm.DB) (int, error) {
	hasLegacy, err := columnExists(database, "users", services.LegacyOnboardingCompletedField)
	if err != nil {
		return 0, err
	}
	if !hasLegacy {
		return 0, nil
	}

	rows := make([]legacyOnboardingFlagRow, 0)
	if err := database.Raw(
		`SELECT id, typeof(completed) AS completed_type, CAST(completed AS TEXT) AS completed_text, onboarding_completed
		FROM users WHERE completed IS NOT NULL ORDER BY id`,
	).Scan(&rows).Error; err != nil {
		return 0, fmt.Errorf("load legacy onboarding flags: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	err = database.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			completed := services.IsOnboardingCompletedRecord(map[string]any{
				services.OnboardingCompletedField:       row.OnboardingCompleted,
				services.LegacyOnboardingCompletedField: row.legacyValue(),
			})
			if err := tx.Exec(
				`UPDATE users SET onboarding_completed = ?, completed = NULL WHERE id = ?`,
				completed,
				row.ID,
			).Error; err != nil {
				return fmt.Errorf("reconcile onboarding flag for user %d: %w", row.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Info("reconciled legacy onboarding flags", zap.Int("users", len(rows)))
	return len(rows), nil
}

// legacyOnboardingFlagRow carries the sqlite storage class next to the text
// form of the untyped legacy column, so each row keeps its own type.
type legacyOnboardingFlagRow struct {
	ID                  uint   `gorm:"column:id"`
	CompletedType       string `gorm:"column:completed_type"`
	CompletedText       string `gorm:"column:completed_text"`
	OnboardingCompleted bool   `gorm:"column:onboarding_completed"`
}

func (row legacyOnboardingFlagRow) legacyValue() any {
	switch row.CompletedType {
	case "integer":
		if value, err := strconv.ParseInt(row.CompletedText, 10, 64); err == nil {
			return value
		}
	case "real":
		if value, err := strconv.ParseFloat(row.CompletedText, 64); err == nil {
			return value
		}
	}
	return row.CompletedText
}
