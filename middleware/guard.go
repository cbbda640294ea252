package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrEthical07/ciphertoken"
	"github.com/MrEthical07/ciphertoken/revoke"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the verified claims injected by a guard.
func ClaimsFromContext(ctx context.Context) (*ciphertoken.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*ciphertoken.Claims)
	return claims, ok
}

// Guard returns middleware that verifies the bearer token on every request.
// With a nil store verification is purely stateless; with a store the
// token's jti is additionally checked against the deny list. Verified claims
// land in the request context under [ClaimsFromContext].
func Guard(engine *ciphertoken.Engine, store *revoke.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := engine.DecodeContext(r.Context(), token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if store != nil {
				if err := store.Check(r.Context(), claims.JTI); err != nil {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
