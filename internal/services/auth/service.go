package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	ErrInvalidCode = errors.New("invalid admin code")
)

// authenticatedKey is the session key holding the admin flag
const authenticatedKey = "authenticated"

// Service gates the admin area behind a single shared code.
// Session state lives in the scs manager; the request context must have
// passed through its LoadAndSave middleware.
type Service struct {
	sessions *scs.SessionManager
	codeHash []byte
}

// HashCode hashes a plaintext admin code for use with New
func HashCode(code string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
}

// New creates an auth service comparing login attempts against codeHash
func New(sessions *scs.SessionManager, codeHash []byte) *Service {
	return &Service{
		sessions: sessions,
		codeHash: codeHash,
	}
}

// Login marks the session authenticated when code matches the admin code.
// The session token is renewed on success to prevent fixation.
func (s *Service) Login(ctx context.Context, code string) error {
	if err := bcrypt.CompareHashAndPassword(s.codeHash, []byte(code)); err != nil {
		return ErrInvalidCode
	}

	if err := s.sessions.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	s.sessions.Put(ctx, authenticatedKey, true)
	return nil
}

// IsAuthenticated reports whether the current session carries the admin flag
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	return s.sessions.GetBool(ctx, authenticatedKey)
}

// Logout destroys the current session
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.Destroy(ctx); err != nil {
		return fmt.Errorf("destroying session: %w", err)
	}
	return nil
}
