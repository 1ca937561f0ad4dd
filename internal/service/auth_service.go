package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task_manager/internal/models"
	"task_manager/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed; there is no rehash path on cost change.
const bcryptCost = bcrypt.DefaultCost // 10

// AuthConfig carries the immutable signing material, built once at startup
// and passed down explicitly.
type AuthConfig struct {
	SigningKey []byte
	TokenTTL   time.Duration
}

// CreatedUser is the signup result surface: the hash never leaves the
// service layer.
type CreatedUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TokenPair is the sign-in result: a compact signed token and its lifetime
// in whole seconds.
type TokenPair struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
}

// Claims is the identity decoded from a verified token.
type Claims struct {
	UserID   string
	Username string
}

// tokenClaims is the JWT payload: registered claims plus the username.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// AuthService handles signup, credential verification, and token lifecycle.
type AuthService struct {
	users repository.Users
	cfg   AuthConfig
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

var _ Authorization = (*AuthService)(nil)

// SignUp creates a new account with a bcrypt-hashed password.
// The lookup-then-insert pair is not transactional; the UNIQUE constraint
// in the store catches the race and both paths surface ErrUsernameTaken.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (CreatedUser, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return CreatedUser{}, err
	}
	if existing != nil {
		return CreatedUser{}, models.ErrUsernameTaken
	}

	hash, err := hashPassword(password)
	if err != nil {
		return CreatedUser{}, fmt.Errorf("invalid password: %w", err)
	}

	u, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return CreatedUser{}, err
	}
	return CreatedUser{ID: u.ID, Username: u.Username}, nil
}

// SignIn validates credentials and returns a signed token. Unknown
// username and wrong password fail with the same error so the two cases
// cannot be told apart.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (TokenPair, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return TokenPair{}, err
	}
	if u == nil || verifyPassword(u.PasswordHash, password) != nil {
		return TokenPair{}, models.ErrInvalidCredentials
	}

	token, err := s.issueToken(u.ID, u.Username)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issue token: %w", err)
	}
	return TokenPair{
		Token:     token,
		ExpiresIn: int(s.cfg.TokenTTL / time.Second),
	}, nil
}

// ParseToken verifies the signature and expiry and returns the embedded
// identity. Verification is stateless; nothing is looked up server-side.
func (s *AuthService) ParseToken(accessToken string) (Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.cfg.SigningKey, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", models.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return Claims{}, models.ErrInvalidToken
	}

	return Claims{UserID: claims.Subject, Username: claims.Username}, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", models.ErrPasswordEmpty
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT carrying the user identity with an absolute
// expiry, so verification needs no session store.
func (s *AuthService) issueToken(userID, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
	})
	return token.SignedString(s.cfg.SigningKey)
}
