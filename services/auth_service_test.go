package services

import (
	"testing"
	"time"

	"github.com/algrishin88/neurocoffee/repository"
	"github.com/algrishin88/neurocoffee/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repository.NewUserRepository(db), testSecret, time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	res, err := svc.Register(&RegisterReq{
		Email:     "Anna@Example.com",
		Password:  "secret123",
		FirstName: "Анна",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "anna@example.com", res.User.Email)
	assert.Equal(t, "user", res.User.Role)
	assert.NotEqual(t, "secret123", res.User.Password)

	// Issued token carries the user id and role.
	var claims utils.Claims
	_, err = jwt.ParseWithClaims(res.Token, &claims, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)

	// Login is case-insensitive on email.
	login, err := svc.Login(&LoginReq{Email: "ANNA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&RegisterReq{Email: "a@b.c", Password: "secret123"})
	require.NoError(t, err)
	_, err = svc.Register(&RegisterReq{Email: "A@B.C", Password: "other-pass"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(&RegisterReq{Email: "a@b.c", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(&LoginReq{Email: "a@b.c", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginReq{Email: "nobody@b.c", Password: "secret123"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	res, err := svc.Register(&RegisterReq{Email: "a@b.c", Password: "secret123", FirstName: "Анна"})
	require.NoError(t, err)

	phone := "+7 900 000-00-00"
	newsletter := true
	user, err := svc.UpdateProfile(res.User.ID, &UpdateProfileReq{
		Phone:      &phone,
		Newsletter: &newsletter,
	})
	require.NoError(t, err)
	assert.Equal(t, "+7 900 000-00-00", user.Phone)
	assert.True(t, user.Newsletter)
	// Untouched fields survive.
	assert.Equal(t, "Анна", user.FirstName)
}
