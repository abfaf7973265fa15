package privacyhttp

import (
	"fmt"
	"net/http"

	jwt "github.com/golang-jwt/jwt/v5"
)

// RequireAdmin validates an HS256 bearer token signed with the shared admin
// secret and requires a "role":"admin" claim. Expiry is enforced by the
// parser.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r.Header.Get("Authorization"))
			if tokenStr == "" {
				unauthorized(w, "missing_token")
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "invalid_token")
				return
			}
			if role, _ := claims["role"].(string); role != "admin" {
				unauthorized(w, "insufficient_role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
