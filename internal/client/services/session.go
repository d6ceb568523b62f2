// Package services contains the client-side orchestrators of QMS Hub: the
// session manager, the chat conversation, the compliance analyzer, and the
// document registry facade. Each one wraps the api.Client with the state
// transitions the UI relies on.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hiai-demo-qms/qmshub/internal/client/api"
	"github.com/hiai-demo-qms/qmshub/internal/client/models"
	"github.com/hiai-demo-qms/qmshub/internal/client/repositories/state"
	"github.com/hiai-demo-qms/qmshub/internal/common"
	"github.com/hiai-demo-qms/qmshub/internal/logging"
)

// Persisted state keys, mirroring the keys the web client kept in the
// browser's key-value store.
const (
	KeyIsLoggedIn   = "isLoggedIn"
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
)

// TokenHolder is the single shared owner of the in-memory bearer token. It
// implements api.TokenSource; only the session service mutates it.
type TokenHolder struct {
	mu    sync.RWMutex
	token string
}

func NewTokenHolder() *TokenHolder { return &TokenHolder{} }

func (h *TokenHolder) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *TokenHolder) set(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

// accessClaims are the claims the client reads from the access token. The
// token is decoded without verification: the client holds no signing key and
// only needs the role for routing and the expiry for the startup check.
type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

func decodeClaims(token string) (*accessClaims, error) {
	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return claims, nil
}

// SessionService acquires, persists, and invalidates the bearer token and
// user profile.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, fullname, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
	IsAuthenticated() bool
	CurrentUser() models.User
}

type sessionService struct {
	client api.Client
	states state.Repository
	tokens *TokenHolder
	log    logging.Logger

	mu           sync.RWMutex
	refreshToken string
	user         models.User
}

func NewSessionService(client api.Client, states state.Repository, tokens *TokenHolder, log logging.Logger) SessionService {
	return &sessionService{client: client, states: states, tokens: tokens, log: log}
}

// Login authenticates against sign-in, extracts the role claim from the
// returned access token, fetches the full profile with that token, and only
// then persists the session. Nothing is persisted on any failure.
func (s *sessionService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}
	return s.establish(ctx, func() (*models.TokenPair, error) {
		return s.client.SignIn(ctx, email, password)
	})
}

// Register validates the password policy locally, then follows the same
// persistence contract as Login via sign-up.
func (s *sessionService) Register(ctx context.Context, fullname, email, password string) (*models.User, error) {
	if strings.TrimSpace(fullname) == "" || strings.TrimSpace(email) == "" {
		return nil, fmt.Errorf("%w: fullname and email are required", common.ErrValidation)
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	return s.establish(ctx, func() (*models.TokenPair, error) {
		return s.client.SignUp(ctx, fullname, email, password)
	})
}

func (s *sessionService) establish(ctx context.Context, signIn func() (*models.TokenPair, error)) (*models.User, error) {
	pair, err := signIn()
	if err != nil {
		return nil, err
	}

	claims, err := decodeClaims(pair.AccessToken)
	if err != nil {
		return nil, err
	}

	// The profile fetch needs the fresh token attached; roll it back if
	// anything after this point fails.
	s.tokens.set(pair.AccessToken)

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		s.tokens.set("")
		return nil, err
	}
	if user.Role == "" {
		user.Role = claims.Role
	}

	if err := s.persist(ctx, pair, *user); err != nil {
		s.tokens.set("")
		return nil, err
	}

	s.mu.Lock()
	s.refreshToken = pair.RefreshToken
	s.user = *user
	s.mu.Unlock()

	s.log.Info(ctx, "session established", "user", user.Email, "role", user.Role)
	return user, nil
}

func (s *sessionService) persist(ctx context.Context, pair *models.TokenPair, user models.User) error {
	serialized, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("serializing user: %w", err)
	}
	for key, value := range map[string]string{
		KeyIsLoggedIn:   "true",
		KeyAccessToken:  pair.AccessToken,
		KeyRefreshToken: pair.RefreshToken,
		KeyUser:         string(serialized),
	} {
		if err := s.states.Set(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

// Logout wipes the persisted state store (it holds only the session keys)
// and resets the in-memory user. Safe to call when already logged out.
func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.states.Clear(ctx); err != nil {
		return err
	}

	s.tokens.set("")
	s.mu.Lock()
	s.refreshToken = ""
	s.user = models.User{}
	s.mu.Unlock()

	s.log.Info(ctx, "session cleared")
	return nil
}

// Restore is the only startup-time state transition: when both a token and a
// profile are persisted, an expired or undecodable token logs the session
// out, otherwise the in-memory state is hydrated from storage.
func (s *sessionService) Restore(ctx context.Context) error {
	token, err := s.states.Get(ctx, KeyAccessToken)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	serialized, err := s.states.Get(ctx, KeyUser)
	if errors.Is(err, common.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	claims, err := decodeClaims(token)
	if err != nil {
		s.log.Warn(ctx, "persisted token undecodable, logging out")
		return s.Logout(ctx)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		s.log.Info(ctx, "persisted token expired, logging out")
		return s.Logout(ctx)
	}

	var user models.User
	if err := json.Unmarshal([]byte(serialized), &user); err != nil {
		return fmt.Errorf("deserializing user: %w", err)
	}

	refresh, err := s.states.Get(ctx, KeyRefreshToken)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}

	s.tokens.set(token)
	s.mu.Lock()
	s.refreshToken = refresh
	s.user = user
	s.mu.Unlock()

	s.log.Info(ctx, "session restored", "user", user.Email)
	return nil
}

func (s *sessionService) IsAuthenticated() bool {
	return s.tokens.Token() != ""
}

func (s *sessionService) CurrentUser() models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// ValidatePassword enforces the registration policy: 6-20 characters with at
// least one uppercase letter, one lowercase letter, and one special
// character.
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < 6 || len(runes) > 20 {
		return fmt.Errorf("%w: password must be 6-20 characters", common.ErrValidation)
	}

	var upper, lower, special bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			special = true
		}
	}
	if !upper || !lower || !special {
		return fmt.Errorf("%w: password needs an uppercase, a lowercase and a special character", common.ErrValidation)
	}
	return nil
}
