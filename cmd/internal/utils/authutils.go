package utils

import (
	"errors"
	"fmt"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"strings"
	"time"
)

var ErrNoSubject = errors.New("token has no subject")

type TokenData struct {
	Sub   string
	Email string
	Exp   int64
}

type userClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenVerifier checks bearer tokens against one key source. Every token must
// carry an expiry and a subject.
type TokenVerifier struct {
	keyFn  jwt.Keyfunc
	parser *jwt.Parser
}

// NewJWKSVerifier trusts the keys Cognito publishes for the pool, and only
// tokens issued by that pool.
func NewJWKSVerifier(region, poolID string) (*TokenVerifier, error) {
	issuer := fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, poolID)
	jwksURL := issuer + "/.well-known/jwks.json"

	jwks, err := keyfunc.NewDefault([]string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS from resource at %s: %w", jwksURL, err)
	}

	log.Infof("JWKS initialized. Keys loaded from %s", jwksURL)
	return newVerifier(jwks.Keyfunc, []string{"RS256"}, jwt.WithIssuer(issuer)), nil
}

// NewSecretVerifier accepts HS256 tokens signed with secret. Local setups only.
func NewSecretVerifier(secret []byte) *TokenVerifier {
	return newVerifier(func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, []string{"HS256"})
}

func newVerifier(keyFn jwt.Keyfunc, methods []string, opts ...jwt.ParserOption) *TokenVerifier {
	opts = append(opts,
		jwt.WithValidMethods(methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	return &TokenVerifier{keyFn: keyFn, parser: jwt.NewParser(opts...)}
}

// Verify parses a raw token, with or without the "Bearer " prefix.
func (v *TokenVerifier) Verify(raw string) (*TokenData, error) {
	var claims userClaims
	if _, err := v.parser.ParseWithClaims(sanitizeToken(raw), &claims, v.keyFn); err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return nil, ErrNoSubject
	}

	data := &TokenData{Sub: claims.Subject, Email: claims.Email}
	if claims.ExpiresAt != nil {
		data.Exp = claims.ExpiresAt.Unix()
	}
	return data, nil
}

func (v *TokenVerifier) VerifyCtx(ctx echo.Context) (*TokenData, error) {
	return v.Verify(ctx.Request().Header.Get(echo.HeaderAuthorization))
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}
