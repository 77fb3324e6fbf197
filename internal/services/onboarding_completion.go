package services

import "github.com/terraincognita07/nutrilume/internal/models"

// Field names the onboarding completion flag has been stored under.
const (
	OnboardingCompletedField       = "onboarding_completed"
	LegacyOnboardingCompletedField = "completed"
)

// IsCompletedFlagValue reports whether a stored completion flag means
// "completed". Only boolean true, 't', numeric 1 and the lowercase string
// "true" qualify.
func IsCompletedFlagValue(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		return typed == "t" || typed == "true"
	case []byte:
		return IsCompletedFlagValue(string(typed))
	case int:
		return typed == 1
	case int8:
		return typed == 1
	case int16:
		return typed == 1
	case int32:
		return typed == 1
	case int64:
		return typed == 1
	case uint:
		return typed == 1
	case uint8:
		return typed == 1
	case uint16:
		return typed == 1
	case uint32:
		return typed == 1
	case uint64:
		return typed == 1
	case float32:
		return typed == 1
	case float64:
		return typed == 1
	case *bool:
		return typed != nil && *typed
	default:
		return false
	}
}

// IsOnboardingCompletedRecord checks both field names of a loosely typed record.
func IsOnboardingCompletedRecord(record map[string]any) bool {
	for _, field := range []string{OnboardingCompletedField, LegacyOnboardingCompletedField} {
		if value, ok := record[field]; ok && IsCompletedFlagValue(value) {
			return true
		}
	}
	return false
}

func IsOnboardingCompleted(user *models.User) bool {
	if user == nil {
		return false
	}
	return IsCompletedFlagValue(user.OnboardingCompleted)
}
