package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/admin-console-api/internal/auth"
	"github.com/admin-console-api/internal/models"
	"github.com/admin-console-api/internal/repository"
	"github.com/rs/zerolog"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so login failures don't reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrAccountDisabled is returned when the account exists but is inactive
var ErrAccountDisabled = errors.New("account is disabled")

// authService is the concrete implementation of AuthService
type authService struct {
	users    repository.UserRepository
	sessions auth.SessionStore
	tokens   *auth.TokenManager
	audit    AuditService
	log      zerolog.Logger
}

// newAuthService creates a new AuthService
func newAuthService(users repository.UserRepository, sessions auth.SessionStore, tokens *auth.TokenManager, audit AuditService, log zerolog.Logger) *authService {
	return &authService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		audit:    audit,
		log:      log.With().Str("service", "auth").Logger(),
	}
}

// Login verifies credentials, issues a token, and persists the session. The
// session is stored before the token is handed back: the first guarded
// request a client makes with the new token must never observe an absent
// session.
func (s *authService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	user, hash, err := s.users.GetCredentials(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	if user == nil || !auth.CheckPassword(hash, password) {
		s.log.Warn().Str("email", email).Msg("Login rejected: bad credentials")
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		s.log.Warn().Str("user_id", user.ID).Msg("Login rejected: account disabled")
		return nil, ErrAccountDisabled
	}

	primary, ok := models.PrimaryRole(user)
	if !ok {
		s.log.Warn().Str("user_id", user.ID).Msg("Login rejected: user has no roles")
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.TenantID, primary.SystemRole)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	session := models.Session{
		Token:     token,
		User:      *user,
		CreatedAt: time.Now(),
	}
	s.sessions.Put(session)

	s.audit.Record(ctx, &session, "session", user.ID, models.AuditActionLogin, "", nil, nil)
	s.log.Info().Str("user_id", user.ID).Str("role", primary.SystemRole).Msg("Login succeeded")

	return &models.LoginResponse{Token: token, User: *user}, nil
}

// Logout destroys the session for a token. Unknown tokens are a no-op.
func (s *authService) Logout(ctx context.Context, token string) error {
	session, ok := s.sessions.Get(token)
	if !ok {
		return nil
	}

	s.sessions.Delete(token)
	s.audit.Record(ctx, session, "session", session.User.ID, models.AuditActionLogout, "", nil, nil)
	s.log.Info().Str("user_id", session.User.ID).Msg("Logout")
	return nil
}
