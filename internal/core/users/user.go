package users

import "Postwall/internal/core/posts"

// User is a registered account. PasswordHash is a bcrypt hash and never leaves the server.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	ID           int64  `json:"id"`
}

// Actor returns the identity the post service authorises against
func (u *User) Actor() posts.Actor {
	return posts.Actor{ID: u.ID, Username: u.Username}
}

// UserResponse is the public view of an account
type UserResponse struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
}

// Response returns the public view of u
func (u *User) Response() UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

// RegisterRequest is the input for creating an account
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthenticateRequest is the input for logging in
type AuthenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest replaces a password after checking the old one
type ChangePasswordRequest struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// TokenResponse carries a bearer token for the account
type TokenResponse struct {
	Token string `json:"token"`
}
