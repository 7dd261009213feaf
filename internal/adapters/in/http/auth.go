package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionKeyHeader lets a client keep several carts under one identity.
// Without it the cart is keyed by the actor id.
const SessionKeyHeader = "X-Session-Key"

const actorContextKey = "actor"

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid bearer token")
)

var signingMethod = jwt.SigningMethodHS256

// Claims is the identity carried by an access token: sub is the actor id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens issued by the identity provider.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// IssueToken signs a token for actor. Tokens are minted by the identity
// provider in production; the service uses this for tooling and tests.
func (a *Authenticator) IssueToken(actor kernel.Actor, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Role: actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(signingMethod, claims).SignedString(a.secret)
}

// ParseToken verifies the signature and expiry and resolves the actor.
func (a *Authenticator) ParseToken(token string) (kernel.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{signingMethod.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: subject: %w", ErrInvalidToken, err)
	}
	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	actor, err := kernel.NewActor(id, role)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return actor, nil
}

// Middleware rejects requests without a valid bearer token with 401 and
// stores the actor on the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			token, found := strings.CutPrefix(raw, "Bearer ")
			if !found {
				token, found = strings.CutPrefix(raw, "bearer ")
			}
			token = strings.TrimSpace(token)
			if !found || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error()).SetInternal(ErrMissingToken)
			}

			actor, err := a.ParseToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, ErrInvalidToken.Error()).SetInternal(err)
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// actorFrom returns the authenticated actor. Routes behind Middleware always
// have one.
func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, ErrMissingToken.Error())
	}
	return actor, nil
}

func sessionKey(c echo.Context, actor kernel.Actor) string {
	if key := strings.TrimSpace(c.Request().Header.Get(SessionKeyHeader)); key != "" {
		return actor.ID().String() + ":" + key
	}
	return actor.ID().String()
}
