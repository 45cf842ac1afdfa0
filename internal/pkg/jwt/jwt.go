package jwt

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Token types carried in the "type" claim.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeKiosk   = "kiosk"
)

var ErrWrongTokenType = errors.New("unexpected token type")

type Service interface {
	GenerateAccessToken(userID string, email string) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// GenerateKioskToken issues a token that authorises the punch screen of one store.
	GenerateKioskToken(storeID string) (token string, expiresAt int64, err error)
	// ParseRefreshToken verifies a refresh token and returns its user ID.
	ParseRefreshToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	kioskTokenExpirationTime   string
	secureCookie               bool
	tokenAuth                  *jwtauth.JWTAuth
	now                        func() time.Time
}

type Options struct {
	SecretKey                  string
	AccessTokenExpirationTime  string
	RefreshTokenExpirationTime string
	KioskTokenExpirationTime   string
	SecureCookie               bool
}

func NewJWTService(opts Options) Service {
	return &JWTService{
		accessTokenExpirationTime:  opts.AccessTokenExpirationTime,
		refreshTokenExpirationTime: opts.RefreshTokenExpirationTime,
		kioskTokenExpirationTime:   opts.KioskTokenExpirationTime,
		secureCookie:               opts.SecureCookie,
		tokenAuth:                  jwtauth.New("HS256", []byte(opts.SecretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                        time.Now,
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) expiry(duration string) (int64, error) {
	d, err := time.ParseDuration(duration)
	if err != nil {
		return 0, err
	}
	return j.now().Add(d).Unix(), nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string) (token string, expiresAt int64, err error) {
	expiresAt, err = j.expiry(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"type":    TypeAccess,
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt, err = j.expiry(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}

	// jti keeps two refresh tokens issued in the same second distinct
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TypeRefresh,
		"jti":     uuid.NewString(),
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateKioskToken(storeID string) (token string, expiresAt int64, err error) {
	expiresAt, err = j.expiry(j.kioskTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"store_id": storeID,
		"type":     TypeKiosk,
		"jti":      uuid.NewString(),
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TypeRefresh {
		return "", ErrWrongTokenType
	}

	userID, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return id, nil
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}
