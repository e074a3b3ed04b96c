package services

import (
	"errors"
	"strings"

	"github.com/hollyoak/plateful/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAccountPasswordMissing = errors.New("account password missing")
	ErrAccountPasswordInvalid = errors.New("account password invalid")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error
	DeleteAccountAndRelatedData(userID uint) error
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

func (service *AuthService) RegistrationEmailExists(email string) (bool, error) {
	return service.users.ExistsByNormalizedEmail(email)
}

func (service *AuthService) CreateUser(user *models.User) error {
	return service.users.Create(user)
}

func (service *AuthService) FindByNormalizedEmail(email string) (models.User, error) {
	return service.users.FindByNormalizedEmail(email)
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	return service.users.FindByID(userID)
}

func (service *AuthService) SaveUser(user *models.User) error {
	return service.users.Save(user)
}

func (service *AuthService) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	return service.users.UpdatePassword(userID, passwordHash, mustChangePassword)
}

// ValidateAccountPassword guards destructive operations with the
// account password. The caller supplies the stored hash.
func (service *AuthService) ValidateAccountPassword(passwordHash string, rawPassword string) error {
	password := strings.TrimSpace(rawPassword)
	if password == "" {
		return ErrAccountPasswordMissing
	}
	if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) != nil {
		return ErrAccountPasswordInvalid
	}
	return nil
}

func (service *AuthService) DeleteAccount(userID uint) error {
	return service.users.DeleteAccountAndRelatedData(userID)
}
