package jwtauth

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/edsoncmach/cartola-paranaense/internal/domain/user"
	"github.com/edsoncmach/cartola-paranaense/internal/usecase"
	"github.com/golang-jwt/jwt/v5"
)

const defaultLeeway = 30 * time.Second

// Claims are the bearer token claims; the subject is the user id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 access tokens signed with a shared secret. Tokens are
// issued elsewhere.
type Verifier struct {
	secret []byte
	issuer string
	leeway time.Duration
	now    func() time.Time
}

func NewVerifier(secret, issuer string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, crerr.New("jwt secret is required")
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		leeway: defaultLeeway,
		now:    time.Now,
	}, nil
}

func (v *Verifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return user.Principal{}, crerr.Wrapf(usecase.ErrUnauthorized, "verify token: %s", reason(err))
	}

	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token subject is empty")
	}
	return user.Principal{
		UserID: subject,
		Email:  strings.TrimSpace(claims.Email),
	}, nil
}

func reason(err error) string {
	switch {
	case crerr.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case crerr.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad signature"
	case crerr.Is(err, jwt.ErrTokenInvalidIssuer):
		return "unexpected issuer"
	case crerr.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	default:
		return "invalid"
	}
}
