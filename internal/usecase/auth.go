package usecase

import (
	"context"
	"crypto/subtle"
	"strings"

	domainErrors "github.com/polkiloo/storebot/internal/domain/errors"
	pkgAuth "github.com/polkiloo/storebot/internal/pkg/auth"
)

// AdminCredentials is the single static operator account.
type AdminCredentials struct {
	Username string
	Password string
}

// AuthUseCase guards the operator API.
type AuthUseCase struct {
	username     string
	passwordHash string
	hasher       pkgAuth.PasswordHasher
	tokens       pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase. The password is hashed once so that
// request-time comparisons go through the hasher. An empty password disables
// every login.
func NewAuthUseCase(creds AdminCredentials, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) (*AuthUseCase, error) {
	uc := &AuthUseCase{username: strings.TrimSpace(creds.Username), hasher: hasher, tokens: strategy}
	if creds.Password == "" {
		return uc, nil
	}
	hash, err := hasher.Hash(creds.Password)
	if err != nil {
		return nil, err
	}
	uc.passwordHash = hash
	return uc, nil
}

// Verify checks operator credentials.
func (u *AuthUseCase) Verify(username, password string) error {
	if u.passwordHash == "" || password == "" {
		return domainErrors.ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(u.username)) != 1 {
		return domainErrors.ErrInvalidCredentials
	}
	if err := u.hasher.Compare(u.passwordHash, password); err != nil {
		return domainErrors.ErrInvalidCredentials
	}
	return nil
}

// Authenticate validates credentials and returns a session token.
func (u *AuthUseCase) Authenticate(_ context.Context, username, password string) (string, error) {
	if err := u.Verify(username, password); err != nil {
		return "", err
	}
	return u.tokens.IssueToken(u.username)
}

// ParseToken returns the operator name encoded in a session token.
func (u *AuthUseCase) ParseToken(token string) (string, error) {
	if token == "" {
		return "", pkgAuth.ErrInvalidToken
	}
	subject, err := u.tokens.ParseToken(token)
	if err != nil {
		return "", err
	}
	if subject != u.username {
		return "", pkgAuth.ErrInvalidToken
	}
	return subject, nil
}
