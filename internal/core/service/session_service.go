package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/sweetshop/storefront/internal/core/domain"
	"github.com/sweetshop/storefront/internal/core/ports"
)

// SessionService owns the logged-in/logged-out lifecycle. The session it
// holds is always derived from the credential store content; a credential
// that stops decoding forces a logout so the two can never diverge.
type SessionService struct {
	auth    ports.AuthGateway
	store   ports.CredentialStore
	session domain.Session
	logger  zerolog.Logger
}

// NewSessionService restores the startup session from whatever credential
// survived the previous process, then hands out the service.
func NewSessionService(auth ports.AuthGateway, store ports.CredentialStore, logger zerolog.Logger) *SessionService {
	s := &SessionService{auth: auth, store: store, logger: logger}
	s.restore()
	return s
}

func (s *SessionService) restore() {
	cred, err := s.store.Get()
	if err != nil {
		s.logger.Warn().Err(err).Msg("credential store unreadable, starting logged out")
		return
	}
	if cred == "" {
		return
	}

	identity, err := DecodeIdentity(cred)
	if err != nil {
		s.forceLogout("stored credential no longer decodes")
		return
	}
	s.session = domain.Session{Identity: &identity}
	s.logger.Debug().Str("principal", identity.Principal).Str("role", identity.Role).Msg("session restored")
}

// Current returns the session as derived from the stored credential.
func (s *SessionService) Current() domain.Session {
	return s.session
}

// Require rejects locally when the current session cannot issue a command
// needing the given role. This is a UX guard, not a security boundary; the
// remote service is the actual enforcement point.
func (s *SessionService) Require(role string) error {
	if !s.session.LoggedIn() {
		return domain.ErrUnauthorized
	}
	if role == domain.RoleAdmin && !s.session.Identity.IsAdmin() {
		return domain.ErrUnauthorized
	}
	return nil
}

// Login authenticates against the remote service, stores the issued
// credential, and derives the new identity from it.
func (s *SessionService) Login(ctx context.Context, username, password string) (domain.Identity, error) {
	cred, err := s.auth.Login(ctx, username, password)
	if err != nil {
		return domain.Identity{}, err
	}

	identity, err := DecodeIdentity(cred)
	if err != nil {
		// the server issued something we cannot read: refuse the session
		s.forceLogout("issued credential does not decode")
		return domain.Identity{}, err
	}

	if err := s.store.Set(cred); err != nil {
		return domain.Identity{}, err
	}
	s.session = domain.Session{Identity: &identity}
	s.logger.Info().Str("principal", identity.Principal).Str("role", identity.Role).Msg("logged in")
	return identity, nil
}

// Register creates an account. It never authenticates the new user; the
// caller logs in separately.
func (s *SessionService) Register(ctx context.Context, username, password string) error {
	if err := s.auth.Register(ctx, username, password); err != nil {
		return err
	}
	s.logger.Info().Str("principal", username).Msg("registered")
	return nil
}

// Logout clears the stored credential unconditionally.
func (s *SessionService) Logout() {
	if err := s.store.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear credential store")
	}
	s.session = domain.Session{}
	s.logger.Info().Msg("logged out")
}

func (s *SessionService) forceLogout(reason string) {
	s.logger.Warn().Str("reason", reason).Msg("forcing logout")
	if err := s.store.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear credential store")
	}
	s.session = domain.Session{}
}

// DecodeIdentity derives the principal and role from a bearer credential.
// Only the structure matters here: three dot-separated segments with a JSON
// payload in the middle carrying "sub" and "authorities". The signature is
// never checked locally; the remote service is the verifier.
func DecodeIdentity(credential string) (domain.Identity, error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return domain.Identity{}, domain.ErrMalformedCredential
	}

	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	if err != nil {
		return domain.Identity{}, domain.ErrMalformedCredential
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return domain.Identity{}, domain.ErrMalformedCredential
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return domain.Identity{}, domain.ErrMalformedCredential
	}

	role := domain.RoleUser
	if authorities, ok := claims["authorities"].([]any); ok {
		for _, a := range authorities {
			if a == domain.AdminAuthority {
				role = domain.RoleAdmin
				break
			}
		}
	}

	return domain.Identity{Principal: sub, Role: role}, nil
}
