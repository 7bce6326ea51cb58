// Package identity supplies the per-session user identifier consumed by
// the repositories: an account registry persisted in the keyed store and
// bearer tokens carrying the user id.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"shuttersync/internal/log"
	"shuttersync/internal/store"
)

// Accounts live outside any user partition, under a reserved one.
const (
	accountsPartition = "accounts"
	accountsKey       = "users"
)

var (
	ErrEmailTaken         = errors.New("identity: email already in use")
	ErrUnknownUser        = errors.New("identity: no user with this email")
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrInvalidToken       = errors.New("identity: invalid token")
)

type (
	// User is the public identity of an account.
	User struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	account struct {
		ID           string    `json:"id"`
		PasswordHash string    `json:"passwordHash"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	// Service manages accounts and session tokens.
	Service struct {
		store  store.KeyedStore
		logger *log.Logger
		secret []byte
		ttl    time.Duration
	}
)

func NewService(ks store.KeyedStore, logger *log.Logger, secret string, ttl time.Duration) *Service {
	return &Service{
		store:  ks,
		logger: logger.WithComponent(log.ComponentIdentity),
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// users reads the account registry; a missing or unreadable registry is
// treated as empty.
func (s *Service) users(ctx context.Context) map[string]account {
	raw, err := s.store.Get(ctx, accountsPartition, accountsKey)
	if errors.Is(err, store.ErrNotFound) {
		return map[string]account{}
	}
	if err != nil {
		s.logger.WarnContext(ctx, "reading accounts failed, treating as empty", log.FieldError, err)
		return map[string]account{}
	}
	users := map[string]account{}
	if err := json.Unmarshal(raw, &users); err != nil {
		s.logger.WarnContext(ctx, "corrupt account registry, treating as empty", log.FieldError, err)
		return map[string]account{}
	}
	return users
}

func (s *Service) saveUsers(ctx context.Context, users map[string]account) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal accounts: %w", err)
	}
	if err := s.store.Set(ctx, accountsPartition, accountsKey, raw); err != nil {
		return fmt.Errorf("persist accounts: %w", err)
	}
	return nil
}

// SignUp registers a new account and returns its identity.
func (s *Service) SignUp(ctx context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	users := s.users(ctx)
	if _, taken := users[email]; taken {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	users[email] = account{
		ID:           uuid.NewString(),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.saveUsers(ctx, users); err != nil {
		return User{}, err
	}

	s.logger.InfoContext(ctx, "account created",
		log.FieldOperation, log.OpSignUp, log.FieldUserID, users[email].ID)
	return User{ID: users[email].ID, Email: email}, nil
}

// LogIn verifies the credentials and issues a signed session token.
func (s *Service) LogIn(ctx context.Context, email, password string) (string, User, error) {
	email = normalizeEmail(email)
	acct, ok := s.users(ctx)[email]
	if !ok {
		return "", User{}, ErrUnknownUser
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   acct.ID,
		"email": email,
		"exp":   time.Now().Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", User{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.InfoContext(ctx, "session opened",
		log.FieldOperation, log.OpLogIn, log.FieldUserID, acct.ID)
	return signed, User{ID: acct.ID, Email: email}, nil
}

// Verify resolves a session token back to the user it was issued for.
func (s *Service) Verify(tokenString string) (User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return User{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	if sub == "" {
		return User{}, ErrInvalidToken
	}
	return User{ID: sub, Email: email}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
