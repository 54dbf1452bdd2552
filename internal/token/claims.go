package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/docuforge/docgen-api/internal/core/domain"
)

// DefaultClaimsTTL is the validity window for stateless claims tokens.
const DefaultClaimsTTL = 7 * 24 * time.Hour

// Claims is the decoded view of a stateless claims token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// ClaimsCodec issues and verifies HS256-signed claims tokens. The token is
// self-contained: validity is established by signature and expiry alone.
type ClaimsCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewClaimsCodec(secret string, ttl time.Duration) *ClaimsCodec {
	if ttl <= 0 {
		ttl = DefaultClaimsTTL
	}
	return &ClaimsCodec{secret: []byte(secret), ttl: ttl}
}

// Issue signs a claims token embedding the user's identity and role.
func (c *ClaimsCodec) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies a claims token. Expired, malformed, and
// signature-mismatched input all fail with domain.ErrTokenInvalid; callers
// cannot distinguish the cases.
func (c *ClaimsCodec) Decode(tokenStr string) (*Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &Claims{UserID: sub, Email: email, Role: role}, nil
}
