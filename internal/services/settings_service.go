package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSettingsPasswordMissing = errors.New("settings password missing")
	ErrSettingsPasswordInvalid = errors.New("settings password invalid")

	ErrSettingsPasswordUpdateFailed = errors.New("settings password update failed")
	ErrSettingsAccountDeleteFailed  = errors.New("settings account delete failed")
)

type SettingsUserRepository interface {
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
	DeleteAccountAndRelatedData(userID uint) error
}

type SettingsService struct {
	users SettingsUserRepository
}

func NewSettingsService(users SettingsUserRepository) *SettingsService {
	return &SettingsService{users: users}
}

func (service *SettingsService) ChangePassword(userID uint, passwordHash string, currentPassword string, newPassword string, confirmPassword string) error {
	if err := service.ValidatePasswordChange(passwordHash, currentPassword, newPassword, confirmPassword); err != nil {
		return err
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPassword)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := service.users.UpdatePassword(userID, string(newHash), false); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsPasswordUpdateFailed, err)
	}
	return nil
}

func (service *SettingsService) ValidateDeleteAccountPassword(passwordHash string, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrSettingsPasswordMissing
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return ErrSettingsPasswordInvalid
	}
	return nil
}

func (service *SettingsService) DeleteAccount(userID uint) error {
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsAccountDeleteFailed, err)
	}
	return nil
}
