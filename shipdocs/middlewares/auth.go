package middlewares

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"shipdocs/shipdocs/config"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// Identity attaches the user id from a valid bearer token to the request
// context. The chat surface is usable anonymously (the browser extension
// sends no token), so missing or invalid tokens just leave the request
// without an identity.
func Identity(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			parts := strings.Split(auth, " ")
			if auth == "" || len(parts) != 2 || parts[0] != "Bearer" || cfg.JWTSecret == "" {
				next.ServeHTTP(w, r)
				return
			}
			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				next.ServeHTTP(w, r)
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			if userID := userIDClaim(claims); userID != "" {
				ctx := context.WithValue(r.Context(), UserIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userIDClaim(claims jwt.MapClaims) string {
	switch v := claims["user_id"].(type) {
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	default:
		return ""
	}
}

// UserIDFrom returns the authenticated user id, if any.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}
