package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"api/auth"
	"api/domain"
)

type MockUserRepo struct {
	users  []domain.User
	nextID int
}

func (mur *MockUserRepo) CreateUser(_ context.Context, username string, passwordHash string) (string, error) {
	for _, u := range mur.users {
		if u.Username == username {
			return "", domain.ErrDuplicateUsername
		}
	}
	mur.nextID++
	id := strings.Repeat("0", 35) + string(rune('a'+mur.nextID))
	mur.users = append(mur.users, domain.User{Id: id, Username: username, PasswordHash: passwordHash})
	return id, nil
}

func (mur *MockUserRepo) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	for _, u := range mur.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (mur *MockUserRepo) GetUserById(_ context.Context, id string) (domain.User, error) {
	for _, u := range mur.users {
		if u.Id == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (mur *MockUserRepo) GetOrCreateGuest(ctx context.Context, username string) (domain.User, error) {
	for _, u := range mur.users {
		if u.Username == username {
			return u, nil
		}
	}
	id, err := mur.CreateUser(ctx, username, "")
	if err != nil {
		return domain.User{}, err
	}
	u := mur.users[len(mur.users)-1]
	u.Id = id
	u.IsGuest = true
	mur.users[len(mur.users)-1] = u
	return u, nil
}

type MockPasswordHasher struct{}

func (mph *MockPasswordHasher) Hash(password string) (string, error) {
	arr := []rune(password)
	for i := range arr {
		arr[i] = arr[i] ^ 7 + 5
	}
	return string(arr), nil
}

func (mph *MockPasswordHasher) Compare(hash, password string) (bool, error) {
	hashedPassword, _ := mph.Hash(password)
	return hashedPassword == hash, nil
}

type MockTokenManager struct{}

func (mtm *MockTokenManager) Generate(id string, _ time.Time) (string, error) {
	return "tok." + id, nil
}

func (mtm *MockTokenManager) Verify(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "tok.")
	if !ok {
		return "", domain.ErrCorruptedToken
	}
	return id, nil
}

type SignupTestCase struct {
	description   string
	username      string
	password      string
	expectedError error
}

func TestAuthServiceSignup(t *testing.T) {
	userRepo := MockUserRepo{}
	passwordHasher := MockPasswordHasher{}
	tokenManager := MockTokenManager{}

	authService := auth.NewService(&userRepo, &passwordHasher, &tokenManager)

	signupTests := []SignupTestCase{
		{"normal", "oussama145", "12345678", nil},
		{"with underscore", "oussama145_two", "12345678ermtrmt", nil},
		{"duplicate username", "oussama145", "12345678", domain.ErrDuplicateUsername},
		{"short password", "oussama", "1234567", auth.ErrWeakPassword},
		{"very long password", "oussama", strings.Repeat("a", 129), auth.ErrPasswordTooLong},
		{"username too short", "ou", "12345678", auth.ErrInvalidUsernameFormat},
		{"username too long", "oussamaermtermtermtermtrtmermterm", "12345678", auth.ErrInvalidUsernameFormat},
		{"username with space", "oussama_is the best", "12345678", auth.ErrInvalidUsernameFormat},
		{"with weird symbols", "oussama-remt!#$@#$%^^&&*(()_++++====ß´í¯ß)", "12345678", auth.ErrInvalidUsernameFormat},
		{"uppercase rejected", "Oussama", "12345678", auth.ErrInvalidUsernameFormat},
		{"absent username", "", "12345678", auth.ErrInvalidUsernameFormat},
		{"absent password", "oussama", "", auth.ErrWeakPassword},
		{"absent username and password", "", "", auth.ErrInvalidUsernameFormat},
	}

	for _, tc := range signupTests {
		_, err := authService.Signup(context.Background(), tc.username, tc.password)

		assert.ErrorIs(t, err, tc.expectedError, tc.description, tc.username, tc.password)
	}
}

func TestAuthServiceLogin(t *testing.T) {
	userRepo := MockUserRepo{}
	authService := auth.NewService(&userRepo, &MockPasswordHasher{}, &MockTokenManager{})

	_, err := authService.Signup(context.Background(), "oussama145", "12345678")
	require.NoError(t, err)

	token, err := authService.Login(context.Background(), "oussama145", "12345678")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	id, err := authService.VerifyToken(token)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = authService.Login(context.Background(), "oussama145", "wrongpass")
	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)

	_, err = authService.Login(context.Background(), "nobody_here", "12345678")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthServiceGuestSession(t *testing.T) {
	userRepo := MockUserRepo{}
	authService := auth.NewService(&userRepo, &MockPasswordHasher{}, &MockTokenManager{})

	token, user, err := authService.GuestSession(context.Background(), "guest_anna")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, user.IsGuest)

	// Same name reuses the existing guest account.
	_, again, err := authService.GuestSession(context.Background(), "guest_anna")
	require.NoError(t, err)
	assert.Equal(t, user.Id, again.Id)

	_, _, err = authService.GuestSession(context.Background(), "Bad Name!")
	assert.ErrorIs(t, err, auth.ErrInvalidUsernameFormat)

	// Guests cannot password-login.
	_, err = authService.Login(context.Background(), "guest_anna", "")
	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)
}
