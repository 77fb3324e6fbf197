package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/nutrilume/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthEmailTaken        = errors.New("auth email taken")
	ErrAuthPasswordMismatch  = errors.New("auth password mismatch")
	ErrAuthWeakPassword      = errors.New("auth weak password")
	ErrAuthInvalidCredential = errors.New("auth invalid credentials")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

// Register creates an account that still has to go through onboarding.
func (service *AuthService) Register(emailRaw string, password string, confirmPassword string, now time.Time) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, password)
	if err != nil {
		return models.User{}, err
	}
	if password != confirmPassword {
		return models.User{}, ErrAuthPasswordMismatch
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, ErrAuthWeakPassword
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, ErrAuthEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:           email,
		PasswordHash:    string(passwordHash),
		OnboardingDraft: NewOnboardingState(),
		CreatedAt:       now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrAuthInvalidCredential
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrAuthInvalidCredential
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthInvalidCredential
	}
	return user, nil
}
