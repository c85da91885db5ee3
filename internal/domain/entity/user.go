package entity

import (
	"errors"
	"strings"
)

// User is the profile returned by the auth endpoints
type User struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	CreatedAt   string `json:"created_at"`
}

// LoginCredentials is the body of a login call
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that both fields are set
func (l LoginCredentials) Validate() error {
	if strings.TrimSpace(l.Email) == "" {
		return errors.New("email is required")
	}
	if l.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// RegisterData is the body of a register call
type RegisterData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Validate checks the required registration fields
func (r RegisterData) Validate() error {
	if err := (LoginCredentials{Email: r.Email, Password: r.Password}).Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("full name is required")
	}
	return nil
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Credentials extracts the token pair
func (a AuthResponse) Credentials() Credentials {
	return Credentials{AccessToken: a.AccessToken, RefreshToken: a.RefreshToken}
}

// RefreshRequest is the body of a token refresh call
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse carries the replacement access token
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}
