package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the token's role claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Cookie names used for browser-managed token transport.
const (
	UserCookieName  = "mood_token"
	AdminCookieName = "admin_token"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoToken      = errors.New("no token in request")
)

// Claims is the payload carried inside a session token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWT issues and validates signed session tokens. A single process-wide
// secret signs both user and admin tokens; the role claim plus a shorter
// admin expiration is what separates the two tiers.
type JWT struct {
	SecretKey string        // Secret key for signing tokens
	UserExp   time.Duration // Expiration for ordinary user tokens
	AdminExp  time.Duration // Expiration for admin tokens
}

// New creates a new JWT instance.
func New(secretKey string, userExp, adminExp time.Duration) *JWT {
	return &JWT{
		SecretKey: secretKey,
		UserExp:   userExp,
		AdminExp:  adminExp,
	}
}

// Generate creates a signed token for the given identity and role.
// The expiration instant is issue time plus the role's configured TTL.
func (j *JWT) Generate(ctx context.Context, userID int64, username, role string) (string, error) {
	exp := j.UserExp
	if role == RoleAdmin {
		exp = j.AdminExp
	}

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(exp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.SecretKey))
}

// GetClaims parses the token string and returns its claims if the
// signature is valid and the token has not expired. Any failure is
// reported uniformly as an invalid token.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(j.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// Validate checks signature validity and expiration.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, tokenString)
	return err
}

// GetTokenFromRequest extracts the token string from the Authorization
// header (bearer scheme) or, failing that, from the named cookie.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request, cookieName string) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return "", errors.New("invalid authorization header format")
		}
		return parts[1], nil
	}

	if cookieName != "" {
		cookie, err := r.Cookie(cookieName)
		if err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}

	return "", ErrNoToken
}
