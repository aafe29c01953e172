package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

type authFixture struct {
	env       *testEnv
	svc       AuthService
	tokens    *auth.TokenManager
	blacklist repository.TokenBlacklist
	redis     *miniredis.Miniredis
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	env := newTestEnv(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	blacklist := repository.NewTokenBlacklist(rdb)
	svc := NewAuthService(env.userRepo, tokens, blacklist, env.metrics, zap.NewNop())
	svc.(*authServiceImpl).bcryptCost = bcrypt.MinCost

	return &authFixture{env: env, svc: svc, tokens: tokens, blacklist: blacklist, redis: mr}
}

func registerReq(email string) *dto.RegisterRequest {
	return &dto.RegisterRequest{Email: email, Password: "s3cret!", FirstName: "Ada", LastName: "Lovelace"}
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Register(ctx, registerReq("Ada@Example.com"))
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.True(t, resp.User.IsActive)
	assert.NotEmpty(t, resp.AccessToken)

	claims, err := f.tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	stored, err := f.env.userRepo.FindByID(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret!")))
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerReq("ada@example.com"))
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, registerReq("ADA@example.com"))
	assertAppError(t, err, response.ErrCodeConflict)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	registered, err := f.svc.Register(ctx, registerReq("ada@example.com"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"성공: 올바른 자격 증명", "ada@example.com", "s3cret!", false},
		{"실패: 잘못된 비밀번호", "ada@example.com", "wrong", true},
		{"실패: 없는 이메일", "nobody@example.com", "s3cret!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.svc.Login(ctx, &dto.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr {
				assertAppError(t, err, response.ErrCodeUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, registered.User.ID, resp.User.ID)
			assert.NotEmpty(t, resp.AccessToken)
		})
	}
}

func TestAuthService_LoginDeactivated(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	registered, err := f.svc.Register(ctx, registerReq("ada@example.com"))
	require.NoError(t, err)

	user, err := f.env.userRepo.FindByID(ctx, registered.User.ID)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, f.env.userRepo.Update(ctx, user))

	_, err = f.svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "s3cret!"})
	assertAppError(t, err, response.ErrCodeUnauthorized)
	assert.Contains(t, err.Error(), "deactivated")
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	resp, err := f.svc.Register(ctx, registerReq("ada@example.com"))
	require.NoError(t, err)

	claims, err := f.tokens.Parse(resp.AccessToken)
	require.NoError(t, err)

	validator := auth.NewValidator(f.tokens, f.blacklist)
	_, err = validator.ValidateToken(ctx, resp.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, claims.ID, claims.ExpiresAt.Time))

	_, err = validator.ValidateToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, auth.ErrRevokedToken)

	ttl := f.redis.TTL("auth:revoked:" + claims.ID)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestAuthService_LogoutWithoutTokenID(t *testing.T) {
	f := newAuthFixture(t)
	err := f.svc.Logout(context.Background(), "", time.Now().Add(time.Hour))
	assertAppError(t, err, response.ErrCodeUnauthorized)
}

func TestAuthService_Profile(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	resp, err := f.svc.Register(ctx, registerReq("ada@example.com"))
	require.NoError(t, err)

	profile, err := f.svc.GetProfile(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.FirstName)

	updated, err := f.svc.UpdateProfile(ctx, resp.User.ID, &dto.UpdateProfileRequest{
		FirstName: strPtr("Augusta"),
		Avatar:    strPtr("avatars/x.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, "avatars/x.png", updated.Avatar)

	_, err = f.svc.GetProfile(ctx, uuid.New())
	assertAppError(t, err, response.ErrCodeNotFound)
}
