package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/infrastructure/memory"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/utils"
)

func newAuth(t *testing.T) (*AuthService, *utils.JWTManager) {
	t.Helper()
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(memory.NewStore().Users(), jwt), jwt
}

func TestAuthService_LoginAndRefresh(t *testing.T) {
	auth, jwt := newAuth(t)
	ctx := context.Background()

	user, err := auth.CreateStaff(ctx, &CreateStaffInput{Name: "Front Desk", Email: "Desk@Resort.in", Password: "s3cret!", Role: entity.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, "desk@resort.in", user.Email)
	assert.NotEqual(t, "s3cret!", user.Password)

	out, err := auth.Login(ctx, &LoginInput{Email: "desk@resort.in", Password: "s3cret!"})
	require.NoError(t, err)
	claims, err := jwt.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleStaff, claims.Role)

	refreshed, err := auth.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.User.ID)

	_, err = auth.RefreshToken(ctx, out.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized, "an access token is not a refresh token")
}

func TestAuthService_LoginFailures(t *testing.T) {
	auth, _ := newAuth(t)
	ctx := context.Background()

	_, err := auth.CreateStaff(ctx, &CreateStaffInput{Name: "M", Email: "m@resort.in", Password: "pw", Role: entity.RoleManager})
	require.NoError(t, err)

	_, err = auth.Login(ctx, &LoginInput{Email: "m@resort.in", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = auth.Login(ctx, &LoginInput{Email: "nobody@resort.in", Password: "pw"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = auth.CreateStaff(ctx, &CreateStaffInput{Name: "M2", Email: "m@resort.in", Password: "pw", Role: entity.RoleStaff})
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = auth.CreateStaff(ctx, &CreateStaffInput{Name: "X", Email: "x@resort.in", Password: "pw", Role: "owner"})
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

	_, err = auth.GetCurrentUser(ctx, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
