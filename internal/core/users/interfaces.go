package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// Create assigns an id to user and stores it. Returns ErrUsernameTaken on duplicates.
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
}

// TokenIssuer signs bearer tokens for an account id
type TokenIssuer interface {
	Generate(userID int64) (string, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error)
	Authenticate(ctx context.Context, req AuthenticateRequest) (*TokenResponse, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error

	// CreateAccount stores an account without issuing a token. Used for seeding.
	CreateAccount(ctx context.Context, username, password string) (*User, error)
}
