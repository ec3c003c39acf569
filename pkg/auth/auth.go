package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"droscher.com/Taproom/configs"
	"droscher.com/Taproom/pkg/model"
	"droscher.com/Taproom/pkg/repository"
)

type UserKey struct{}

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyInUse   = fmt.Errorf("%w: email already in use", model.ErrValidation)
	errUnexpectedSigningFn = errors.New("unexpected signing method")
)

type userStore interface {
	AddUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserFromEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUUID(ctx context.Context, userUUID uuid.UUID) (*model.User, error)
	SetUserToken(ctx context.Context, userID uint, token string) error
}

type Manager struct {
	conf   *configs.Config
	users  userStore
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Manager)

// WithClock replaces the time source used when issuing tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewAuthManager(conf *configs.Config, users userStore, logger *zap.Logger, options ...Option) *Manager {
	manager := &Manager{conf: conf, users: users, logger: logger, now: time.Now}

	for _, option := range options {
		option(manager)
	}

	return manager
}

// Register creates a user with a hashed password and returns it with a freshly issued token.
func (a *Manager) Register(ctx context.Context, name string, email string, password string) (*model.User, string, error) {
	_, err := a.users.GetUserFromEmail(ctx, email)
	if err == nil {
		return nil, "", ErrEmailAlreadyInUse
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.conf.Auth.HashCost)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", model.ErrValidation, err)
	}

	user, err := a.users.AddUser(ctx, model.User{Name: name, Email: email, Password: string(hash)})
	if err != nil {
		return nil, "", err
	}

	token, err := a.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	a.logger.Info("user registered", zap.String("user", user.UUID.String()))

	return user, token, nil
}

// Login checks the password of the user with the given email and issues a new token, which
// replaces any token issued before.
func (a *Manager) Login(ctx context.Context, email string, password string) (*model.User, string, error) {
	user, err := a.users.GetUserFromEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		a.logger.Warn("failed login", zap.String("user", user.UUID.String()))

		return nil, "", ErrInvalidCredentials
	}

	token, err := a.startSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (a *Manager) startSession(ctx context.Context, user *model.User) (string, error) {
	token, err := a.IssueToken(user)
	if err != nil {
		return "", err
	}

	if err := a.users.SetUserToken(ctx, user.ID, token); err != nil {
		return "", err
	}

	user.Token = &token

	return token, nil
}

func (a *Manager) IssueToken(user *model.User) (string, error) {
	now := a.now()

	claims := jwt.MapClaims{
		"sub":   user.UUID.String(),
		"email": user.Email,
		"iss":   a.conf.Auth.Issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(a.conf.Auth.TokenTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.conf.Auth.SecretKey))
}

// Authenticate resolves the user owning a bearer token. The token must be signed with the
// configured secret, unexpired, and still the latest token issued to that user.
func (a *Manager) Authenticate(ctx context.Context, authorization string) (*model.User, error) {
	accessToken, err := extractToken(authorization)
	if err != nil {
		return nil, err
	}

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningFn, token.Header["alg"])
		}

		return []byte(a.conf.Auth.SecretKey), nil
	}

	token, err := jwt.ParseWithClaims(accessToken, jwt.MapClaims{}, keyFunc)
	if err != nil {
		a.logger.Info("error parsing token", zap.Error(err))

		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	claims, found := token.Claims.(jwt.MapClaims)
	if !found || !token.Valid || !claims.VerifyIssuer(a.conf.Auth.Issuer, true) {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	subject, found := claims["sub"].(string)
	if !found {
		return nil, fmt.Errorf("%w: token carries no subject", ErrUnauthenticated)
	}

	userUUID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed subject: %w", ErrUnauthenticated, err)
	}

	user, err := a.users.GetUserByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrUnauthenticated)
		}

		a.logger.Error("error authenticating user", zap.Error(err))

		return nil, err
	}

	if user.Token == nil || *user.Token != accessToken {
		return nil, fmt.Errorf("%w: token has been replaced", ErrUnauthenticated)
	}

	return user, nil
}

// Middleware rejects requests without a valid bearer token and stores the authenticated user
// in the request context under UserKey.
func (a *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := a.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			status := http.StatusUnauthorized
			kind := "unauthenticated"

			if !errors.Is(err, ErrUnauthenticated) {
				status = http.StatusInternalServerError
				kind = "store_failure"
			}

			c.AbortWithStatusJSON(status, gin.H{"error": kind, "message": err.Error()})

			return
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), UserKey{}, user))
		c.Next()
	}
}

func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserKey{}).(*model.User)

	return user, ok && user != nil
}

func extractToken(authorization string) (string, error) {
	if len(authorization) == 0 {
		return "", fmt.Errorf("%w: authorization header not found", ErrUnauthenticated)
	}

	prefix := "Bearer "
	if !strings.HasPrefix(authorization, prefix) {
		prefix = "bearer "
	}

	token, found := strings.CutPrefix(authorization, prefix)
	if !found || token == "" {
		return "", fmt.Errorf("%w: authorization format must be Bearer {token}", ErrUnauthenticated)
	}

	return token, nil
}
