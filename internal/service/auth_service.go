package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Paballo854/wings-cafe/internal/domain"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// adminUserID is the id of the single configured principal.
	adminUserID = 1
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService authenticates the single configured credential set: a bcrypt
// checked admin login that hands out the shared API token, and equality
// comparison of that token on every protected request. The interface is
// the seam where a real token-issuance scheme could slot in later.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
	VerifyToken(token string) (*domain.User, error)
}

type authService struct {
	token        string
	admin        domain.User
	passwordHash []byte
}

// NewAuthService builds the authenticator from configuration. The admin
// password is hashed once up front so login attempts always go through a
// bcrypt comparison.
func NewAuthService(token, adminName, adminEmail, adminPassword string) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), BcryptCost)
	if err != nil {
		return nil, err
	}

	return &authService{
		token: token,
		admin: domain.User{
			ID:    adminUserID,
			Name:  adminName,
			Email: adminEmail,
			Role:  "admin",
		},
		passwordHash: hash,
	}, nil
}

// Login checks the credentials and returns the API token with the user
// profile.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email != s.admin.Email {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	user := s.admin
	return s.token, &user, nil
}

// VerifyToken resolves a bearer token to its principal.
func (s *authService) VerifyToken(token string) (*domain.User, error) {
	if token != s.token {
		return nil, ErrInvalidToken
	}
	user := s.admin
	return &user, nil
}
