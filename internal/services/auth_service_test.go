package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoockh/showcase/internal/utils"
)

func TestAuthLoginAndParse(t *testing.T) {
	ctx := context.Background()
	users := &fakeUsers{}
	svc := NewAuthService(users, "test-secret", time.Hour)

	created, err := svc.EnsureAdmin(ctx, "admin@example.com", "hunter2")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "admin@example.com", "other")
	require.NoError(t, err)
	assert.False(t, created)

	res, err := svc.Login(ctx, "admin@example.com", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "admin@example.com", res.User.Email)

	claims, err := svc.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.Hex(), claims.Subject)
	assert.Equal(t, "admin@example.com", claims.Email)
}

func TestAuthLoginRejects(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(&fakeUsers{}, "test-secret", time.Hour)
	_, err := svc.EnsureAdmin(ctx, "admin@example.com", "hunter2")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.Login(ctx, "nobody@example.com", "hunter2")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.Login(ctx, "", "")
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestParseTokenRejects(t *testing.T) {
	svc := NewAuthService(&fakeUsers{}, "test-secret", time.Hour)

	_, err := svc.ParseToken("garbage")
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	other := NewAuthService(&fakeUsers{}, "other-secret", time.Hour)
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "x", Issuer: tokenIssuer},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(forged)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
	_, err = other.ParseToken(forged)
	assert.NoError(t, err)

	impl := svc.(*authService)
	ctx := context.Background()
	_, err = svc.EnsureAdmin(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	res, err := svc.Login(ctx, "a@example.com", "pw")
	require.NoError(t, err)
	impl.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ParseToken(res.Token)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized), "expired token")
}
