package middleware

import (
	"net/http"

	"github.com/MrEthical07/ciphertoken"
	"github.com/MrEthical07/ciphertoken/revoke"
)

// RequireUnrevoked returns middleware that verifies the token and then
// checks its jti against the deny list. One Redis round trip per request.
func RequireUnrevoked(engine *ciphertoken.Engine, store *revoke.Store) func(http.Handler) http.Handler {
	return Guard(engine, store)
}
