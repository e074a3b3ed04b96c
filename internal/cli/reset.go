package cli

import (
	"errors"
	"fmt"

	"github.com/hollyoak/plateful/internal/db"
	"github.com/hollyoak/plateful/internal/security"
	"github.com/hollyoak/plateful/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

// RunResetPasswordCommand replaces the account password for email with a
// temporary one and flags the account so the next login demands a change.
// With manual set the operator types the temporary password at a hidden
// prompt; otherwise one is generated and printed.
func RunResetPasswordCommand(driver string, dsn string, email string, manual bool) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return errors.New("a valid email address is required")
	}

	database, err := db.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	users := db.NewUserRepository(database)
	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := resolveTemporaryPassword(manual)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}

	if err := users.UpdatePassword(user.ID, string(passwordHash), true); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Println("Password reset successful.")
	if !manual {
		fmt.Printf("Temporary password: %s\n", temporaryPassword)
	}
	fmt.Println("The user must change it on next login.")

	return nil
}

func resolveTemporaryPassword(manual bool) (string, error) {
	if manual {
		return promptTemporaryPassword()
	}
	return generateTemporaryPassword(temporaryPasswordLength)
}

// generateTemporaryPassword draws from an alphabet without 0/O/1/l/I so the
// printed password survives being read aloud or retyped.
func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	return security.RandomString(length, alphabet)
}
