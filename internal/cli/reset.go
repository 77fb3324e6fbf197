package cli

import (
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/terraincognita07/nutrilume/internal/db"
	"github.com/terraincognita07/nutrilume/internal/logger"
	"github.com/terraincognita07/nutrilume/internal/security"
	"github.com/terraincognita07/nutrilume/internal/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

// ResetPasswordOptions selects the account and how the new password is chosen.
// With ReadPassword nil a temporary password is generated and the user must
// change it on next login.
type ResetPasswordOptions struct {
	Email        string
	ReadPassword func() ([]byte, error)
}

func RunResetPasswordCommand(out io.Writer, database *gorm.DB, options ResetPasswordOptions) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(options.Email))
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(normalizedEmail); err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	users := db.NewUserRepository(database)
	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	password := ""
	mustChangePassword := options.ReadPassword == nil
	if mustChangePassword {
		password, err = generateTemporaryPassword(12)
		if err != nil {
			return fmt.Errorf("generate temporary password: %w", err)
		}
	} else {
		password, err = promptNewPassword(out, options.ReadPassword)
		if err != nil {
			return err
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePassword(user.ID, string(passwordHash), mustChangePassword); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	logger.Info("password reset from cli", zap.Uint("user_id", user.ID), zap.Bool("must_change_password", mustChangePassword))

	fmt.Fprintln(out, "Password reset successful")
	if mustChangePassword {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
		fmt.Fprintln(out, "User must change password on next login.")
	}
	return nil
}

func promptNewPassword(out io.Writer, readPassword func() ([]byte, error)) (string, error) {
	fmt.Fprint(out, "New password: ")
	first, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := readPassword()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	password := strings.TrimSpace(string(first))
	if password != strings.TrimSpace(string(second)) {
		return "", errors.New("passwords do not match")
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return "", errors.New("password needs at least 8 characters with upper case, lower case and a digit")
	}
	return password, nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return security.RandomString(length, temporaryPasswordAlphabet)
}
