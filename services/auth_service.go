package services

import (
	"errors"
	"strings"
	"time"

	"kiosk/entity"
	"kiosk/repository"
	"kiosk/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles staff service-mode login. Customers never log
// in; only staff unlocking the terminal do.
type AuthService struct {
	staffRepo *repository.StaffRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.StaffRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		staffRepo: repo,
		jwtSecret: secret,
		jwtTTL:    ttl,
	}
}

// Login checks credentials and mints a staff JWT.
func (s *AuthService) Login(username, password string) (string, *entity.Staff, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	staff, err := s.staffRepo.FindByUsername(username)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	token, err := utils.GenerateToken(staff.ID, staff.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, errors.New("cannot generate token")
	}
	return token, staff, nil
}
