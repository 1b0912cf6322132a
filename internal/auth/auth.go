package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskbuddy/internal/db"
	"taskbuddy/internal/models"
)

// ErrNoSession means nobody is signed in. Commands treat it as expected
// control flow and point the user at login.
var ErrNoSession = errors.New("no active session")

// ErrInvalidCredentials is returned for a wrong email/password pair.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service is the session gateway: local accounts, password checks, and
// a session token persisted next to the database. Signing in upserts
// the user's profile row, like an identity-provider callback would.
type Service struct {
	db          *gorm.DB
	profiles    *db.ProfileService
	tokens      *TokenManager
	sessionPath string
}

// NewService creates the auth service. sessionPath is where the current
// session token lives between runs.
func NewService(gdb *gorm.DB, profiles *db.ProfileService, tokens *TokenManager, sessionPath string) *Service {
	return &Service{
		db:          gdb,
		profiles:    profiles,
		tokens:      tokens,
		sessionPath: sessionPath,
	}
}

// SignUp creates a local account, upserts its profile, and signs in.
func (s *Service) SignUp(email, password, fullName string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	var existing models.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("account %s already exists", email)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.openSession(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SignIn verifies the credentials and opens a session.
func (s *Service) SignIn(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.openSession(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// openSession upserts the profile row keyed by the authenticated
// identity, then persists a fresh session token.
func (s *Service) openSession(user *models.User) error {
	if err := s.profiles.EnsureProfile(user.ID, user.FullName); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("failed to issue session token: %w", err)
	}
	if err := os.WriteFile(s.sessionPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// SignOut discards the current session.
func (s *Service) SignOut() error {
	if err := os.Remove(s.sessionPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// CurrentUser returns the signed-in user, or ErrNoSession.
func (s *Service) CurrentUser() (*models.User, error) {
	data, err := os.ReadFile(s.sessionPath)
	if err != nil {
		return nil, ErrNoSession
	}

	claims, err := s.tokens.Validate(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, ErrNoSession
	}

	var user models.User
	if err := s.db.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return nil, ErrNoSession
	}
	return &user, nil
}
