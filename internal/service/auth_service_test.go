package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"tasklist/internal/models"
	"tasklist/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

var testSigningKey = []byte("unit-test-signing-key")

// mockUserRepo is a lightweight in-test mock for repository.Users.
type mockUserRepo struct {
	CreateFn     func(username, email, hash string) (models.User, error)
	GetByEmailFn func(email string) (*models.User, error)

	createCalls []struct {
		username string
		email    string
		hash     string
	}
	getCalls []string
}

func (m *mockUserRepo) Create(_ context.Context, username, email, hash string) (models.User, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		email    string
		hash     string
	}{username, email, hash})
	return m.CreateFn(username, email, hash)
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.getCalls = append(m.getCalls, email)
	return m.GetByEmailFn(email)
}

// --- Register tests ---

func TestAuthService_Register_HashesPasswordAndCallsRepo(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, email, hash string) (models.User, error) {
			return models.User{ID: 42, Username: username, Email: email}, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	user, err := svc.Register(context.Background(), "alice123", "a@x.com", "longenough1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != 42 {
		t.Fatalf("expected id 42, got %d", user.ID)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.hash == "longenough1" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "longenough1"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_Register_FreshSaltPerCall(t *testing.T) {
	h1, err := hashPassword("samepassword")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	h2, err := hashPassword("samepassword")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if h1 == h2 {
		t.Fatal("expected different hashes for same input (fresh salt)")
	}
}

func TestAuthService_Register_DuplicateUser(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, email, hash string) (models.User, error) {
			return models.User{}, repository.ErrDuplicateUser
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	_, err := svc.Register(context.Background(), "alice123", "a@x.com", "longenough1")
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_EmptyPassword(t *testing.T) {
	mock := &mockUserRepo{
		CreateFn: func(username, email, hash string) (models.User, error) {
			t.Fatal("Create should not be called for empty password")
			return models.User{}, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	if _, err := svc.Register(context.Background(), "bob", "b@x.com", ""); err == nil {
		t.Fatal("expected error for empty password, got nil")
	}
}

// --- Login tests ---

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := hashPassword("letmein12")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: 7, Username: "diana", Email: "d@x.com", PasswordHash: hash}

	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email != "d@x.com" {
				t.Fatalf("expected email d@x.com, got %q", email)
			}
			return user, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	token, got, err := svc.Login(context.Background(), "d@x.com", "letmein12")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if got.ID != 7 {
		t.Fatalf("expected user id 7, got %d", got.ID)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 7 {
		t.Fatalf("expected user id 7 from token, got %d", uid)
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	correctHash, err := hashPassword("correct-pw")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			if email == "known@x.com" {
				return &models.User{ID: 1, Email: email, PasswordHash: correctHash}, nil
			}
			return nil, nil
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	_, _, errUnknown := svc.Login(context.Background(), "ghost@x.com", "whatever1")
	_, _, errWrongPw := svc.Login(context.Background(), "known@x.com", "wrong-pw1")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
}

func TestAuthService_Login_RepoError(t *testing.T) {
	mock := &mockUserRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := NewAuthService(mock, testSigningKey)

	_, _, err := svc.Login(context.Background(), "j@x.com", "pw123456")
	if err == nil {
		t.Fatal("expected repo error, got nil")
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("repo failure must not masquerade as bad credentials: %v", err)
	}
}

// --- ParseToken tests ---

func tokenKindOf(t *testing.T, err error) TokenErrorKind {
	t.Helper()
	var tokenErr *TokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("expected *TokenError, got %T: %v", err, err)
	}
	return tokenErr.Kind
}

func TestAuthService_ParseToken_Success(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testSigningKey)
	token, err := svc.issueToken(99)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if uid != 99 {
		t.Fatalf("expected user id 99, got %d", uid)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testSigningKey)
	_, err := svc.ParseToken("not-a-jwt")
	if kind := tokenKindOf(t, err); kind != TokenMalformed {
		t.Fatalf("expected malformed kind, got %q", kind)
	}
}

func TestAuthService_ParseToken_InvalidSignature(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testSigningKey)

	// Token signed with a different key.
	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 5,
	})
	badToken, err := tk.SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(badToken)
	if kind := tokenKindOf(t, err); kind != TokenBadSignature {
		t.Fatalf("expected bad_signature kind, got %q", kind)
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testSigningKey)

	past := time.Now().Add(-3 * time.Hour)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
		UserID: 11,
	})
	expiredToken, err := tk.SignedString(testSigningKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(expiredToken)
	if kind := tokenKindOf(t, err); kind != TokenExpired {
		t.Fatalf("expected expired kind, got %q", kind)
	}
}

func TestAuthService_ParseToken_UnexpectedAlg(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testSigningKey)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 12,
	})
	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	if _, err := svc.ParseToken(tokenStr); err == nil {
		t.Fatal("expected error due to unexpected signing method")
	}
}

func TestAuthService_TokenLifetimeIsTwoHours(t *testing.T) {
	svc := NewAuthService(&mockUserRepo{}, testSigningKey)
	raw, err := svc.issueToken(1)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	claims := &Claims{}
	if _, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return testSigningKey, nil
	}); err != nil {
		t.Fatalf("parse issued token: %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != tokenTTL {
		t.Fatalf("token lifetime: got %v, want %v", lifetime, tokenTTL)
	}
}
