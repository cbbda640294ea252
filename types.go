package ciphertoken

const (
	// TokenAccess is the token-type discriminator carried by access tokens.
	TokenAccess = "access"
	// TokenRefresh is the token-type discriminator carried by refresh
	// tokens. Rotation only honors this value.
	TokenRefresh = "refresh"
)

// TokenPair is returned by [Engine.Rotate]: a freshly issued access token and
// refresh token for the same subject.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
