package services

import (
	"context"
	"errors"
	"time"

	"snapvault/config"
	"snapvault/internal/domain/user"
	"snapvault/internal/repository"
	apperrors "snapvault/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService registers and authenticates users and issues bearer tokens.
type AuthService struct {
	userRepo  repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(cfg.JWTSecret),
		tokenTTL:  time.Duration(cfg.JWTExpiryHours) * time.Hour,
	}
}

// Claims are embedded in every issued token: the numeric user id and the
// username, which downstream handlers use for ownership checks.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if len(username) < 3 || len(username) > 50 {
		return apperrors.ErrInvalidInput
	}
	if len(password) < 8 {
		return apperrors.ErrInvalidInput
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	newUser := &user.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	return s.userRepo.Create(ctx, newUser)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.ErrUnauthorized
		}
		return "", err
	}

	if err := comparePassword(u.PasswordHash, password); err != nil {
		return "", apperrors.ErrUnauthorized
	}

	return s.newToken(u)
}

func (s *AuthService) newToken(u user.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseToken verifies an inbound bearer token. Any failure rejects the request
// before business logic runs.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrUnauthorized
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

type ctxKey string

var viewerKey ctxKey = "viewer"

// Viewer identifies the authenticated caller for the duration of a request.
type Viewer struct {
	ID       int64
	Username string
}

func WithViewerContext(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

func ViewerFromContext(ctx context.Context) (Viewer, bool) {
	value := ctx.Value(viewerKey)
	if value == nil {
		return Viewer{}, false
	}
	v, ok := value.(Viewer)
	return v, ok
}
