package middleware

import (
	"net/http"

	"github.com/MrEthical07/ciphertoken"
)

// RequireJWT returns middleware that enforces stateless verification only:
// signature and expiry, no revocation lookup.
func RequireJWT(engine *ciphertoken.Engine) func(http.Handler) http.Handler {
	return Guard(engine, nil)
}
