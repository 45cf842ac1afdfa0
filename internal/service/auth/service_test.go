package auth

import (
	"context"
	"testing"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-works/kintai-backend-go/internal/domain/user"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
	testPassword   = "password123"
)

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	users   map[string]user.User
	touched []string
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u := f.users[userID]
	u.PasswordHash = &passwordHash
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	for id, u := range f.users {
		if u.Email == email {
			provider := "google"
			u.OAuthProvider = &provider
			u.OAuthProviderID = &googleID
			f.users[id] = u
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) TouchLastLogin(ctx context.Context, userID string) error {
	f.touched = append(f.touched, userID)
	return nil
}

type storedToken struct {
	userID  string
	revoked bool
}

type fakeRefreshRepo struct {
	tokens map[string]*storedToken
}

func (f *fakeRefreshRepo) CreateRefreshToken(ctx context.Context, userID string, token string, expiresAt int64, session auth.SessionTrackingRequest) error {
	f.tokens[token] = &storedToken{userID: userID}
	return nil
}

func (f *fakeRefreshRepo) IsRefreshTokenRevoked(ctx context.Context, token string) (string, bool, error) {
	t, ok := f.tokens[token]
	if !ok {
		return "", false, auth.ErrInvalidToken
	}
	return t.userID, t.revoked, nil
}

func (f *fakeRefreshRepo) RevokeRefreshToken(ctx context.Context, token string) error {
	if t, ok := f.tokens[token]; ok {
		t.revoked = true
	}
	return nil
}

type fixture struct {
	svc     auth.AuthService
	users   *fakeUserRepo
	refresh *fakeRefreshRepo
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	hash, err := HashPassword(testPassword)
	require.NoError(t, err)

	users := &fakeUserRepo{users: map[string]user.User{
		"admin-1": {ID: "admin-1", Email: "admin@example.com", PasswordHash: &hash, IsActive: true},
		"admin-2": {ID: "admin-2", Email: "retired@example.com", PasswordHash: &hash, IsActive: false},
		"admin-3": {ID: "admin-3", Email: "google-only@example.com", IsActive: true},
	}}
	refresh := &fakeRefreshRepo{tokens: map[string]*storedToken{}}
	jwtService := jwt.NewJWTService(jwt.Options{
		SecretKey:                  testSecret,
		AccessTokenExpirationTime:  testAccessExp,
		RefreshTokenExpirationTime: testRefreshExp,
	})

	return fixture{
		svc:     NewAuthService(fakeTransactor{}, users, jwtService, refresh),
		users:   users,
		refresh: refresh,
	}
}

var session = auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}

func TestAuthService_Login_Success(t *testing.T) {
	fx := newFixture(t)

	response, err := fx.svc.Login(context.Background(), auth.LoginRequest{Email: " Admin@Example.com ", Password: testPassword}, session)
	require.NoError(t, err)

	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Greater(t, response.AccessTokenExpiresIn, time.Now().Unix())
	assert.Greater(t, response.RefreshTokenExpiresIn, response.AccessTokenExpiresIn)
	assert.Contains(t, fx.refresh.tokens, response.RefreshToken)
	assert.Equal(t, []string{"admin-1"}, fx.users.touched)
}

func TestAuthService_Login_Failures(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  auth.LoginRequest
	}{
		{"wrong password", auth.LoginRequest{Email: "admin@example.com", Password: "wrongpassword"}},
		{"unknown email", auth.LoginRequest{Email: "nobody@example.com", Password: testPassword}},
		{"inactive account", auth.LoginRequest{Email: "retired@example.com", Password: testPassword}},
		{"no password set", auth.LoginRequest{Email: "google-only@example.com", Password: testPassword}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.svc.Login(ctx, tt.req, session)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}

	_, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "not-an-email", Password: ""}, session)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	tokens, err := fx.svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: testPassword}, session)
	require.NoError(t, err)

	refreshed, err := fx.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = fx.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken, "access tokens cannot refresh")

	require.NoError(t, fx.svc.Logout(ctx, tokens.RefreshToken))
	_, err = fx.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	assert.NoError(t, fx.svc.Logout(ctx, tokens.RefreshToken), "logout is idempotent")
	assert.NoError(t, fx.svc.Logout(ctx, "unknown"))
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("links on first use", func(t *testing.T) {
		fx := newFixture(t)
		tokens, err := fx.svc.LoginWithGoogle(ctx, "google-only@example.com", "g-123", session)
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)

		linked := fx.users.users["admin-3"]
		require.NotNil(t, linked.OAuthProviderID)
		assert.Equal(t, "g-123", *linked.OAuthProviderID)

		_, err = fx.svc.LoginWithGoogle(ctx, "google-only@example.com", "g-999", session)
		assert.ErrorIs(t, err, auth.ErrGoogleNotRegistered, "a different google account cannot reuse the email")
	})

	t.Run("unknown email is rejected", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.svc.LoginWithGoogle(ctx, "stranger@example.com", "g-1", session)
		assert.ErrorIs(t, err, auth.ErrGoogleNotRegistered)
		assert.Len(t, fx.users.users, 3)
	})
}
