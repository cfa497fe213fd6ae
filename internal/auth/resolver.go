package auth

import (
	"myswamvar/backend/pkg/apperr"
	"myswamvar/backend/pkg/jwt"
)

// TokenResolver turns a bearer credential into a stable user identity. The
// messaging core and the realtime gateway depend only on this interface; the
// JWT implementation below is the production resolver.
type TokenResolver interface {
	Resolve(credential string) (uint, error)
}

// JWTResolver resolves HS256 bearer tokens signed with the shared secret.
type JWTResolver struct {
	Secret string
}

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{Secret: secret}
}

func (r *JWTResolver) Resolve(credential string) (uint, error) {
	if credential == "" {
		return 0, apperr.Unauthenticated("missing credential")
	}
	userID, err := jwt.ParseToken(credential, r.Secret)
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeUnauthenticated, "invalid or expired token", err)
	}
	return userID, nil
}
