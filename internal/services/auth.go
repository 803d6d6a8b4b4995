package services

import (
	"context"
	"errors"

	"github.com/dkote/mood-journal/internal/jwt"
	"github.com/dkote/mood-journal/internal/logger"
	"github.com/dkote/mood-journal/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyCredentials   = errors.New("username and password are required")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash string) (int64, error)
}

// AdminReader defines read-only operations for administrators.
type AdminReader interface {
	GetByUsername(ctx context.Context, username string) (*models.AdminDB, error)
}

// TokenGenerator defines an interface for generating session tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID int64, username, role string) (string, error)
}

// AuthService handles registration and login for both ordinary users
// and administrators. A wrong password and a missing account are
// indistinguishable to callers; both surface ErrInvalidCredentials.
type AuthService struct {
	reader      UserReader
	writer      UserWriter
	adminReader AdminReader
	tokens      TokenGenerator
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, adminReader AdminReader, tokens TokenGenerator) *AuthService {
	return &AuthService{
		reader:      reader,
		writer:      writer,
		adminReader: adminReader,
		tokens:      tokens,
	}
}

// Register registers a new user. Duplicate usernames fail with
// ErrUserAlreadyExists without touching the stored account.
func (svc *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrEmptyCredentials
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username)
		return ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	if _, err := svc.writer.Save(ctx, username, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	return nil
}

// Login authenticates a user and returns a session token with the user
// role and the 12-hour expiration tier.
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Generate(ctx, user.ID, user.Username, jwt.RoleUser)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	return token, nil
}

// AdminLogin authenticates against the admin directory and returns a
// token with the admin role and the shorter 2-hour expiration tier.
func (svc *AuthService) AdminLogin(ctx context.Context, username, password string) (string, error) {
	admin, err := svc.adminReader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get admin", "err", err)
		return "", err
	}
	if admin == nil {
		logger.Log.Errorw("admin does not exist", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid admin credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.tokens.Generate(ctx, admin.ID, admin.Username, jwt.RoleAdmin)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	return token, nil
}
