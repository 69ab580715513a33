package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rumeysaaltintas35-ui/tenis-app/internal/dto"
	"github.com/rumeysaaltintas35-ui/tenis-app/internal/service"
)

func newSessions(t *testing.T, passphrase string, now *time.Time) service.SessionService {
	t.Helper()
	clock := service.Clock(func() time.Time { return *now })
	return service.NewSessionService(service.SessionConfig{
		Passphrase: passphrase,
		Secret:     "test-secret",
		TTL:        time.Hour,
	}, validator.New(), clock, zerolog.New(io.Discard))
}

func TestSessionOpenAndVerify(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	sessions := newSessions(t, "1234", &now)

	resp, err := sessions.Open(context.Background(), dto.SessionRequest{Passphrase: "1234"})
	require.NoError(t, err)
	assert.Equal(t, service.RoleAdmin, resp.Role)
	assert.Equal(t, now.Add(time.Hour), resp.ExpiresAt)

	actor, err := sessions.Verify(resp.Token)
	require.NoError(t, err)
	assert.True(t, actor.IsAdmin())
	assert.NotEmpty(t, actor.SessionID)

	now = now.Add(2 * time.Hour)
	_, err = sessions.Verify(resp.Token)
	assert.True(t, errors.Is(err, service.ErrInvalidSession))
}

func TestSessionRejectsWrongPassphrase(t *testing.T) {
	now := time.Now()
	sessions := newSessions(t, "1234", &now)

	_, err := sessions.Open(context.Background(), dto.SessionRequest{Passphrase: "4321"})
	assert.True(t, errors.Is(err, service.ErrInvalidPassphrase))

	_, err = sessions.Open(context.Background(), dto.SessionRequest{})
	assert.True(t, isValidation(err))

	locked := newSessions(t, "", &now)
	_, err = locked.Open(context.Background(), dto.SessionRequest{Passphrase: "anything"})
	assert.True(t, errors.Is(err, service.ErrInvalidPassphrase))
}

func TestSessionAcceptsBcryptPassphrase(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("court-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	sessions := newSessions(t, string(hash), &now)

	_, err = sessions.Open(context.Background(), dto.SessionRequest{Passphrase: "court-secret"})
	require.NoError(t, err)
	_, err = sessions.Open(context.Background(), dto.SessionRequest{Passphrase: "court"})
	assert.True(t, errors.Is(err, service.ErrInvalidPassphrase))
}

func TestSessionRejectsForeignTokens(t *testing.T) {
	now := time.Now()
	sessions := newSessions(t, "1234", &now)
	other := service.NewSessionService(service.SessionConfig{Passphrase: "1234", Secret: "other-secret"},
		validator.New(), service.Clock(func() time.Time { return now }), zerolog.New(io.Discard))

	resp, err := other.Open(context.Background(), dto.SessionRequest{Passphrase: "1234"})
	require.NoError(t, err)

	_, err = sessions.Verify(resp.Token)
	assert.True(t, errors.Is(err, service.ErrInvalidSession))
	_, err = sessions.Verify("not-a-token")
	assert.True(t, errors.Is(err, service.ErrInvalidSession))
	_, err = sessions.Verify("")
	assert.True(t, errors.Is(err, service.ErrInvalidSession))
}
