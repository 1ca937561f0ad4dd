package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"task_manager/internal/models"
)

var testAuthCfg = AuthConfig{
	SigningKey: []byte("test-signing-key"),
	TokenTTL:   time.Hour,
}

// mockUsersRepo is a lightweight in-test mock for repository.Users.
type mockUsersRepo struct {
	CreateFn        func(username, hash string) (models.User, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createCalls []struct {
		username string
		hash     string
	}
	getCalls []string
}

func (m *mockUsersRepo) Create(_ context.Context, username, hash string) (models.User, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
	}{username: username, hash: hash})
	return m.CreateFn(username, hash)
}

func (m *mockUsersRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

// --- SignUp tests ---

func TestAuthService_SignUp_SuccessHashesPasswordAndCallsRepo(t *testing.T) {
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, nil // fresh username
		},
		CreateFn: func(username, hash string) (models.User, error) {
			return models.User{ID: "u-42", Username: username, PasswordHash: hash}, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	u, err := svc.SignUp(context.Background(), "alice", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if u.ID != "u-42" || u.Username != "alice" {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// Ensure Create called exactly once with hashed password (not equal to raw) and valid bcrypt.
	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.username != "alice" {
		t.Errorf("expected username 'alice', got %q", call.username)
	}
	if call.hash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.hash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}
}

func TestAuthService_SignUp_UsernameTaken(t *testing.T) {
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: "u-1", Username: username, PasswordHash: "h"}, nil
		},
		CreateFn: func(username, hash string) (models.User, error) {
			t.Fatal("Create should not be called when username exists")
			return models.User{}, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, err := svc.SignUp(context.Background(), "alice", "pw")
	if !errors.Is(err, models.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_SignUp_EmptyPassword(t *testing.T) {
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, nil
		},
		CreateFn: func(username, hash string) (models.User, error) {
			t.Fatal("Create should not be called for empty password")
			return models.User{}, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, err := svc.SignUp(context.Background(), "bob", "   ")
	if !errors.Is(err, models.ErrPasswordEmpty) {
		t.Fatalf("expected ErrPasswordEmpty, got %v", err)
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_SignUp_RepoError(t *testing.T) {
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, nil
		},
		CreateFn: func(username, hash string) (models.User, error) {
			return models.User{}, errors.New("db down")
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, err := svc.SignUp(context.Background(), "carl", "pass123")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

// --- SignIn tests ---

func TestAuthService_SignIn_Success(t *testing.T) {
	// Prepare a user with a valid bcrypt hash for the provided password.
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: "u-7", Username: "diana", PasswordHash: hash}

	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username != "diana" {
				t.Fatalf("expected username 'diana', got %q", username)
			}
			return user, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	pair, err := svc.SignIn(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if pair.Token == "" {
		t.Fatalf("expected non-empty token")
	}
	if pair.ExpiresIn != int(testAuthCfg.TokenTTL/time.Second) {
		t.Fatalf("expected expiresIn %d, got %d", int(testAuthCfg.TokenTTL/time.Second), pair.ExpiresIn)
	}

	// Validate the token parses and returns the correct identity.
	claims, err := svc.ParseToken(pair.Token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != "u-7" {
		t.Fatalf("expected user id u-7 from token, got %q", claims.UserID)
	}
	if claims.Username != "diana" {
		t.Fatalf("expected username diana from token, got %q", claims.Username)
	}

	if len(mock.getCalls) != 1 {
		t.Fatalf("expected 1 GetByUsername call, got %d", len(mock.getCalls))
	}
}

func TestAuthService_SignIn_FailurePathsAreIndistinguishable(t *testing.T) {
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}

	known := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: "u-1", Username: "eve", PasswordHash: correctHash}, nil
		},
	}
	unknown := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, nil
		},
	}

	_, errWrongPassword := NewAuthService(known, testAuthCfg).SignIn(context.Background(), "eve", "wrong")
	_, errUnknownUser := NewAuthService(unknown, testAuthCfg).SignIn(context.Background(), "ghost", "whatever")

	if !errors.Is(errWrongPassword, models.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, models.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errUnknownUser)
	}
	// A caller must not be able to enumerate usernames via the error text.
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Fatalf("failure paths differ: %q vs %q", errWrongPassword, errUnknownUser)
	}
}

func TestAuthService_SignIn_RepoError(t *testing.T) {
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, err := svc.SignIn(context.Background(), "john", "pw")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Success(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, testAuthCfg)
	token, err := svc.issueToken("u-99", "zoe")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != "u-99" || claims.Username != "zoe" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, testAuthCfg)

	_, err := svc.ParseToken("not-a-jwt")
	if !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_ParseToken_WrongKey(t *testing.T) {
	issuer := NewAuthService(&mockUsersRepo{}, testAuthCfg)
	token, err := issuer.issueToken("u-1", "mallory")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	verifier := NewAuthService(&mockUsersRepo{}, AuthConfig{
		SigningKey: []byte("a-different-key"),
		TokenTTL:   time.Hour,
	})
	if _, err := verifier.ParseToken(token); !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong key, got %v", err)
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	// A negative TTL stamps an expiry in the past, so the token arrives
	// already expired without the test having to sleep.
	expiredCfg := AuthConfig{
		SigningKey: testAuthCfg.SigningKey,
		TokenTTL:   -time.Minute,
	}
	issuer := NewAuthService(&mockUsersRepo{}, expiredCfg)
	token, err := issuer.issueToken("u-1", "pat")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	verifier := NewAuthService(&mockUsersRepo{}, testAuthCfg)
	if _, err := verifier.ParseToken(token); !errors.Is(err, models.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestAuthService_TokenStillValidBeforeExpiry(t *testing.T) {
	// Short but positive TTL: verification right after issuance must pass.
	cfg := AuthConfig{SigningKey: testAuthCfg.SigningKey, TokenTTL: 2 * time.Second}
	svc := NewAuthService(&mockUsersRepo{}, cfg)

	token, err := svc.issueToken("u-5", "kim")
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}
	if _, err := svc.ParseToken(token); err != nil {
		t.Fatalf("token rejected before expiry: %v", err)
	}
}
