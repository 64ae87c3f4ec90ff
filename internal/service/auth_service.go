package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tasklist/internal/models"
	"tasklist/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTTL   = 2 * time.Hour
	bcryptCost = bcrypt.DefaultCost
)

// Domain errors for auth flows. ErrInvalidCredentials is deliberately
// the same for an unknown email and a wrong password.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("username or email already in use")
)

// TokenErrorKind classifies a verification failure for internal logging.
// Clients always see one undifferentiated rejection.
type TokenErrorKind string

const (
	TokenMissing      TokenErrorKind = "missing"
	TokenMalformed    TokenErrorKind = "malformed"
	TokenExpired      TokenErrorKind = "expired"
	TokenBadSignature TokenErrorKind = "bad_signature"
)

// TokenError wraps a token verification failure with its kind.
type TokenError struct {
	Kind  TokenErrorKind
	cause error
}

func (e *TokenError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("token %s: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("token %s", e.Kind)
}

func (e *TokenError) Unwrap() error { return e.cause }

// AuthService handles user auth logic.
type AuthService struct {
	users      repository.Users
	signingKey []byte
}

func NewAuthService(users repository.Users, signingKey []byte) *AuthService {
	return &AuthService{users: users, signingKey: signingKey}
}

// Register hashes the password and creates the user. Inputs arrive
// already normalized (trimmed username, lowercased email) from the
// validation layer.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, err
	}
	return user, nil
}

// Login verifies credentials and returns a signed token plus the user.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", models.User{}, err
	}
	if u == nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return "", models.User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, *u, nil
}

// Claims defines JWT claims: the owning user's id and nothing else
// personal.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// ParseToken verifies signature and expiry and returns the user id.
// Failures come back as *TokenError so the guard can log the kind.
func (s *AuthService) ParseToken(accessToken string) (int64, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return 0, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, &TokenError{Kind: TokenMalformed}
	}
	return claims.UserID, nil
}

func classifyTokenError(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Kind: TokenExpired, cause: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &TokenError{Kind: TokenBadSignature, cause: err}
	default:
		return &TokenError{Kind: TokenMalformed, cause: err}
	}
}

// issueToken signs a time-bounded token carrying only the user id.
func (s *AuthService) issueToken(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}

// helper: hash password safely. Each call salts anew, so equal inputs
// yield different hashes.
func hashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
