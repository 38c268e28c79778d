package auth

import (
	"context"

	apperrors "blogapi/internal/errors"
)

// Verifier checks bearer credentials: signature, expiry and revocation.
type Verifier struct {
	jwt    *JWTService
	tokens TokenStoreInterface
}

// NewVerifier creates a credential verifier.
func NewVerifier(jwtService *JWTService, tokens TokenStoreInterface) *Verifier {
	return &Verifier{jwt: jwtService, tokens: tokens}
}

// Verify returns the caller identity encoded in token, or ErrInvalidToken.
func (v *Verifier) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := v.jwt.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if claims.ID != "" {
		revoked, err := v.tokens.IsAccessTokenBlacklisted(ctx, claims.ID)
		if err != nil || revoked {
			return nil, apperrors.ErrInvalidToken
		}
	}
	return claims, nil
}
