package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
)

// ErrInvalidSession indicates a missing, expired or tampered session token.
var ErrInvalidSession = errors.New("invalid session token")

const sessionIssuer = "court-dashboard"

// SessionService exchanges the admin passphrase for a signed session token.
type SessionService interface {
	Open(ctx context.Context, req dto.SessionRequest) (dto.SessionResponse, error)
	Verify(token string) (Actor, error)
}

// SessionConfig configures the admin gate.
type SessionConfig struct {
	Passphrase string
	Secret     string
	TTL        time.Duration
}

type sessionService struct {
	cfg       SessionConfig
	validator *validator.Validate
	now       Clock
	logger    zerolog.Logger
}

// NewSessionService constructs the admin gate. A passphrase starting with
// "$2" is treated as a bcrypt hash.
func NewSessionService(cfg SessionConfig, validator *validator.Validate, clock Clock, logger zerolog.Logger) SessionService {
	if cfg.TTL <= 0 {
		cfg.TTL = 12 * time.Hour
	}
	return &sessionService{
		cfg:       cfg,
		validator: validator,
		now:       clock,
		logger:    logger.With().Str("component", "session_service").Logger(),
	}
}

func (s *sessionService) Open(ctx context.Context, req dto.SessionRequest) (dto.SessionResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SessionResponse{}, err
	}
	if !s.matches(req.Passphrase) {
		s.logger.Warn().Msg("admin passphrase rejected")
		return dto.SessionResponse{}, ErrInvalidPassphrase
	}

	now := s.now()
	expiresAt := now.Add(s.cfg.TTL)
	sessionID := uuid.NewString()

	claims := jwt.MapClaims{
		"iss":  sessionIssuer,
		"jti":  sessionID,
		"role": RoleAdmin,
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return dto.SessionResponse{}, fmt.Errorf("sign session token: %w", err)
	}

	s.logger.Info().Str("session_id", sessionID).Time("expires_at", expiresAt).Msg("admin session opened")
	return dto.SessionResponse{Token: signed, Role: RoleAdmin, ExpiresAt: expiresAt}, nil
}

// Verify parses a session token into the actor it was issued for.
func (s *sessionService) Verify(token string) (Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Actor{}, ErrInvalidSession
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return Actor{}, ErrInvalidSession
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Actor{}, ErrInvalidSession
	}
	role, _ := claims["role"].(string)
	sessionID, _ := claims["jti"].(string)
	if role == "" {
		return Actor{}, ErrInvalidSession
	}
	return Actor{SessionID: sessionID, Role: strings.ToLower(role)}, nil
}

func (s *sessionService) matches(passphrase string) bool {
	if s.cfg.Passphrase == "" {
		return false
	}
	if strings.HasPrefix(s.cfg.Passphrase, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.Passphrase), []byte(passphrase)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.Passphrase), []byte(passphrase)) == 1
}
