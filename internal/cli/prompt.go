package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hollyoak/plateful/internal/services"
)

var errPasswordConfirmMismatch = errors.New("passwords do not match")

// promptTemporaryPassword reads the temporary password twice from the
// terminal with echo disabled. The typed password has to pass the same
// strength policy registration applies, so the forced change that follows
// cannot be weaker than a normal signup.
func promptTemporaryPassword() (string, error) {
	fmt.Print("Temporary password: ")
	password, err := readPasswordHidden(os.Stdin)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	confirm, err := readPasswordHidden(os.Stdin)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password confirmation: %w", err)
	}

	return validateManualPassword(string(password), string(confirm))
}

func validateManualPassword(password string, confirm string) (string, error) {
	password = strings.TrimSpace(password)
	if password != strings.TrimSpace(confirm) {
		return "", errPasswordConfirmMismatch
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return "", fmt.Errorf("temporary password rejected: %w", err)
	}
	return password, nil
}
