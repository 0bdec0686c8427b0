package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 64
	minPasswordLength = 6
	// bcrypt ignores everything past 72 bytes
	maxPasswordLength = 72
)

type userService struct {
	userRepo   UserRepository
	tokens     TokenIssuer
	logger     *slog.Logger
	bcryptCost int
}

// NewUserService creates a new user service
// bcryptCost <= 0 selects bcrypt.DefaultCost
func NewUserService(userRepo UserRepository, tokens TokenIssuer, bcryptCost int, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &userService{
		userRepo:   userRepo,
		tokens:     tokens,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// Register creates an account and returns a token for it
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	user, err := s.CreateAccount(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Authenticate checks credentials and returns a fresh token.
// Unknown usernames and wrong passwords produce the same error.
func (s *userService) Authenticate(ctx context.Context, req AuthenticateRequest) (*TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("authentication failed", "username", user.Username)
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetByID retrieves a user by id
func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ChangePassword replaces the password after verifying the old one
func (s *userService) ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error {
	if err := validatePassword(req.New); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Old)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.hash(req.New)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	if _, err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("password changed", "user_id", id)
	return nil
}

// CreateAccount validates and stores a new account
func (s *userService) CreateAccount(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &User{Username: username, PasswordHash: hash})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *userService) issue(user *User) (*TokenResponse, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &TokenResponse{Token: token}, nil
}

func (s *userService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func validateUsername(username string) error {
	if username == "" {
		return &InvalidFieldError{Field: "username", Reason: "is required"}
	}
	if len(username) > maxUsernameLength {
		return &InvalidFieldError{Field: "username", Reason: fmt.Sprintf("must be at most %d characters", maxUsernameLength)}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &InvalidFieldError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	if len(password) > maxPasswordLength {
		return &InvalidFieldError{Field: "password", Reason: fmt.Sprintf("must be at most %d bytes", maxPasswordLength)}
	}
	return nil
}
