package services

import (
	"testing"
	"time"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) (*testEnv, *AuthService) {
	t.Helper()
	env := newTestEnv(t)
	return env, NewAuthService(env.users, testSecret, time.Hour)
}

func Test_Register_Creates_User(t *testing.T) {
	req := require.New(t)
	_, svc := newAuthService(t)

	user, err := svc.Register("alice", "Alice@Example.com", "secret123")
	req.NoError(err)
	req.Equal(entity.RoleUser, user.Role)
	req.Equal("alice@example.com", user.Email) // normalize แล้ว
	req.NoError(bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func Test_Register_Duplicate_Email(t *testing.T) {
	req := require.New(t)
	_, svc := newAuthService(t)

	_, err := svc.Register("alice", "alice@example.com", "secret123")
	req.NoError(err)

	_, err = svc.Register("alice2", "alice@example.com", "secret456")
	req.Error(err)
	req.True(apperr.IsConflict(err))
}

func Test_Login_Issues_Token(t *testing.T) {
	req := require.New(t)
	_, svc := newAuthService(t)

	_, err := svc.Register("alice", "alice@example.com", "secret123")
	req.NoError(err)

	token, user, err := svc.Login("alice@example.com", "secret123")
	req.NoError(err)
	req.NotEmpty(token)

	claims := &utils.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	req.NoError(err)
	req.True(parsed.Valid)
	req.Equal(user.ID, claims.UserID)
	req.Equal(string(entity.RoleUser), claims.Role)
}

func Test_Login_Wrong_Password(t *testing.T) {
	req := require.New(t)
	_, svc := newAuthService(t)

	_, err := svc.Register("alice", "alice@example.com", "secret123")
	req.NoError(err)

	_, _, err = svc.Login("alice@example.com", "wrong")
	req.Error(err)
	req.True(apperr.IsInvalid(err))

	_, _, err = svc.Login("nobody@example.com", "secret123")
	req.Error(err)
	req.True(apperr.IsInvalid(err))
}

func Test_CreateAdmin_Forces_Admin_Role(t *testing.T) {
	req := require.New(t)
	_, svc := newAuthService(t)

	admin, err := svc.CreateAdmin("root", "root@example.com", "secret123")
	req.NoError(err)
	req.Equal(entity.RoleAdmin, admin.Role)
}
