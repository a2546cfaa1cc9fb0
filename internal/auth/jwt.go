package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kusalkumar06/eventia/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type claims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role"`
}

type JWTProvider struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewJWTProvider(secret, issuer string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), issuer: issuer, now: time.Now}
}

// Issue signs an HS256 token for p.
func (j *JWTProvider) Issue(p Principal, ttl time.Duration) (string, error) {
	if !p.Authenticated() {
		return "", errors.New("cannot issue token for anonymous principal")
	}
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: p.Role,
	})
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (j *JWTProvider) Parse(raw string) (Principal, error) {
	var parsed claims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("parse token: %w", err)
	}
	p := Principal{ID: parsed.Subject, Role: parsed.Role}
	if !p.Authenticated() {
		return Principal{}, errors.New("token has no subject or an unknown role")
	}
	return p, nil
}

// Middleware attaches the principal when a valid bearer token is present.
// Requests without a token pass through anonymously; handlers decide.
func (j *JWTProvider) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return ErrUnauthenticated
			}
			p, err := j.Parse(strings.TrimSpace(raw))
			if err != nil {
				c.Logger().Debugf("rejecting token: %v", err)
				return ErrUnauthenticated
			}
			withPrincipal(c, p)
			return next(c)
		}
	}
}

func (j *JWTProvider) RequireAuthenticated(c echo.Context) (Principal, error) {
	p, ok := FromContext(c)
	if !ok {
		return Principal{}, ErrUnauthenticated
	}
	return p, nil
}

func (j *JWTProvider) RequireRole(c echo.Context, role models.Role) (Principal, error) {
	p, err := j.RequireAuthenticated(c)
	if err != nil {
		return Principal{}, err
	}
	if !p.Role.AtLeast(role) {
		return Principal{}, ErrInsufficientRole
	}
	return p, nil
}
