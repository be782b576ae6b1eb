package auth

import (
	"context"
	"regexp"
	"time"
	"unicode/utf8"

	"api/domain"
)

const maxPasswordLength = 128

var usernameRe = regexp.MustCompile("^[a-z0-9_]{3,20}$")

type service struct {
	userRepo       UserRepo
	passwordHasher PasswordHasher
	tokenManager   TokenManager
}

func NewService(userRepo UserRepo, passwordHasher PasswordHasher, tokenManager TokenManager) *service {
	return &service{userRepo, passwordHasher, tokenManager}
}

func (as *service) Signup(ctx context.Context, username, password string) (string, error) {
	if !usernameRe.MatchString(username) {
		return "", ErrInvalidUsernameFormat
	}

	if utf8.RuneCountInString(password) < 8 {
		return "", ErrWeakPassword
	}
	if utf8.RuneCountInString(password) > maxPasswordLength {
		return "", ErrPasswordTooLong
	}

	passwordHash, err := as.passwordHasher.Hash(password)
	if err != nil {
		return "", err
	}

	id, err := as.userRepo.CreateUser(ctx, username, passwordHash)
	if err != nil {
		return "", err
	}

	return as.tokenManager.Generate(id, time.Now())
}

func (as *service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := as.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	if user.IsGuest {
		// Guests have no password; they cannot log in directly.
		return "", ErrIncorrectPassword
	}

	ok, err := as.passwordHasher.Compare(user.PasswordHash, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrIncorrectPassword
	}

	return as.tokenManager.Generate(user.Id, time.Now())
}

// GuestSession issues a token for a throwaway guest account so casual
// players can join rooms and still accumulate stats.
func (as *service) GuestSession(ctx context.Context, displayName string) (string, domain.User, error) {
	if !usernameRe.MatchString(displayName) {
		return "", domain.User{}, ErrInvalidUsernameFormat
	}

	user, err := as.userRepo.GetOrCreateGuest(ctx, displayName)
	if err != nil {
		return "", domain.User{}, err
	}

	token, err := as.tokenManager.Generate(user.Id, time.Now())
	if err != nil {
		return "", domain.User{}, err
	}
	return token, user, nil
}

// VerifyToken returns the user id if the token is valid, else an error.
func (as *service) VerifyToken(token string) (string, error) {
	return as.tokenManager.Verify(token)
}

func (as *service) GenerateToken(id string) (string, error) {
	return as.tokenManager.Generate(id, time.Now())
}
