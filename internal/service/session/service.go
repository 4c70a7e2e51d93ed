package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/rosterhq/roster-console/internal/domain/identity"
	"github.com/rosterhq/roster-console/internal/gateway"
)

// TokenSink receives the backend session token so the gateway can attach
// it to subsequent calls.
type TokenSink interface {
	SetToken(token string)
}

type SessionService struct {
	mu      sync.RWMutex
	path    string
	caller  gateway.Caller
	tokens  TokenSink
	logger  *slog.Logger
	current *identity.Identity
}

func NewSessionService(path string, caller gateway.Caller, tokens TokenSink, logger *slog.Logger) identity.Service {
	return &SessionService{
		path:   path,
		caller: caller,
		tokens: tokens,
		logger: logger,
	}
}

// Restore loads the persisted identity record. Anything unreadable is
// treated as "not logged in" and the stale file is removed, mirroring the
// clear-on-unparseable behavior of the stored browser session.
func (s *SessionService) Restore() (identity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return identity.Identity{}, identity.ErrNotLoggedIn
	}
	if err != nil {
		return identity.Identity{}, fmt.Errorf("read identity file: %w", err)
	}

	var id identity.Identity
	if err := json.Unmarshal(raw, &id); err != nil || id.Username == "" {
		s.logger.Warn("discarding unparseable identity record", slog.String("path", s.path))
		_ = os.Remove(s.path)
		return identity.Identity{}, identity.ErrNotLoggedIn
	}

	// The token carries the authoritative role and department claims;
	// prefer them over the stored copy when it parses. The signature is
	// the backend's to verify, not ours.
	if id.Token != "" {
		if tok, err := jwt.ParseInsecure([]byte(id.Token)); err == nil {
			applyClaims(&id, tok)
		}
	}

	s.current = &id
	s.tokens.SetToken(id.Token)
	return id, nil
}

func (s *SessionService) Current() (identity.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return identity.Identity{}, false
	}
	return *s.current, true
}

func (s *SessionService) Login(ctx context.Context, username, password string) (identity.Identity, error) {
	env, err := s.caller.Call(ctx, "login", map[string]any{
		"username": username,
		"password": password,
	})
	if err != nil {
		return identity.Identity{}, err
	}
	if !env.OK() {
		return identity.Identity{}, identity.ErrInvalidSession
	}

	var id identity.Identity
	if err := env.Field("user", &id); err != nil {
		return identity.Identity{}, fmt.Errorf("login response: %w", err)
	}
	if env.HasField("token") {
		if err := env.Field("token", &id.Token); err != nil {
			return identity.Identity{}, fmt.Errorf("login response: %w", err)
		}
	}

	if err := s.persist(id); err != nil {
		return identity.Identity{}, err
	}

	s.mu.Lock()
	s.current = &id
	s.mu.Unlock()
	s.tokens.SetToken(id.Token)
	return id, nil
}

// Logout revokes the backend session best-effort: the persisted record is
// cleared and the in-memory identity dropped whether or not the remote
// call succeeds.
func (s *SessionService) Logout(ctx context.Context) error {
	_, callErr := s.caller.Call(ctx, "logout", nil)
	if callErr != nil {
		s.logger.Warn("remote logout failed, clearing local session anyway", slog.Any("error", callErr))
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	s.tokens.SetToken("")

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear identity file: %w", err)
	}
	return nil
}

func (s *SessionService) persist(id identity.Identity) error {
	raw, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create identity dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write identity file: %w", err)
	}
	return nil
}

func applyClaims(id *identity.Identity, tok jwt.Token) {
	if v, ok := tok.Get("role"); ok {
		if role, ok := v.(string); ok && role != "" {
			id.Role = identity.Role(role)
		}
	}
	if v, ok := tok.Get("department"); ok {
		if dept, ok := v.(string); ok && dept != "" {
			id.Department = dept
		}
	}
	if v, ok := tok.Get("display_name"); ok {
		if name, ok := v.(string); ok && name != "" {
			id.DisplayName = name
		}
	}
}
