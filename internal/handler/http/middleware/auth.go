package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kintai-works/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-works/kintai-backend-go/internal/domain/kiosk"
	"github.com/kintai-works/kintai-backend-go/internal/handler/http/response"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/jwt"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the administrator set by AuthRequired.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// claimsOfType reads the verified token placed in the context by jwtauth.Verifier.
func claimsOfType(r *http.Request, tokenType string) (map[string]interface{}, bool) {
	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		return nil, false
	}
	if t, ok := claims["type"].(string); !ok || t != tokenType {
		return nil, false
	}
	return claims, true
}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsOfType(r, jwt.TypeAccess)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, _ := claims["user_id"].(string)
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// KioskRequired admits kiosk tokens whose store_id claim matches the {storeID} route parameter.
func KioskRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsOfType(r, jwt.TypeKiosk)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			storeID, _ := claims["store_id"].(string)
			if storeID == "" || storeID != chi.URLParam(r, "storeID") {
				response.HandleError(w, kiosk.ErrKioskTokenRequired)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
