package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/amirasaad/storefront/internal/fixtures/mocks"
	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/domain/user"
	authsvc "github.com/amirasaad/storefront/pkg/service/auth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var jwtCfg = &config.Jwt{Secret: "test-secret", Expiry: time.Hour}

func newAuth(t interface {
	mock.TestingT
	Cleanup(func())
}) (*authsvc.Service, *mocks.UserRepository, *mocks.Bus) {
	repo := mocks.NewUserRepository(t)
	bus := mocks.NewBus(t)
	return authsvc.New(repo, bus, jwtCfg, slog.New(slog.NewTextHandler(io.Discard, nil))), repo, bus
}

func TestLogin_SuccessPublishesUserLoggedIn(t *testing.T) {
	t.Parallel()
	svc, repo, bus := newAuth(t)
	u, err := user.NewUser("alice", "alice@example.com", "password")
	require.NoError(t, err)

	repo.On("GetByUsername", mock.Anything, "alice").Return(u, nil).Once()
	bus.On("Publish", mock.Anything, mocks.MatchEvent(events.EventTypeUserLoggedIn, u.ID.String())).Return(nil).Once()

	got, err := svc.Login(context.Background(), "alice", "password")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestLogin_ByEmail(t *testing.T) {
	t.Parallel()
	svc, repo, bus := newAuth(t)
	u, err := user.NewUser("alice", "alice@example.com", "password")
	require.NoError(t, err)

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(u, nil).Once()
	bus.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	_, err = svc.Login(context.Background(), "alice@example.com", "password")
	require.NoError(t, err)
}

func TestLogin_InvalidPasswordDoesNotPublish(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newAuth(t)
	u, err := user.NewUser("alice", "alice@example.com", "password")
	require.NoError(t, err)
	repo.On("GetByUsername", mock.Anything, "alice").Return(u, nil).Once()

	_, err = svc.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newAuth(t)
	repo.On("GetByUsername", mock.Anything, "ghost").Return(nil, user.ErrUserNotFound).Once()

	_, err := svc.Login(context.Background(), "ghost", "password")
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)
}

func TestLogin_RepositoryError(t *testing.T) {
	t.Parallel()
	svc, repo, _ := newAuth(t)
	errDB := errors.New("db down")
	repo.On("GetByUsername", mock.Anything, "alice").Return(nil, errDB).Once()

	_, err := svc.Login(context.Background(), "alice", "password")
	assert.ErrorIs(t, err, errDB)
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuth(t)
	u, err := user.NewUser("admin", "admin@example.com", "password")
	require.NoError(t, err)
	u.Promote()

	signed, err := svc.GenerateToken(u)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) { return []byte(jwtCfg.Secret), nil })
	require.NoError(t, err)

	id, err := svc.GetCurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
	assert.True(t, svc.IsAdmin(token))
}

func TestGetCurrentUserID_InvalidToken(t *testing.T) {
	t.Parallel()
	svc, _, _ := newAuth(t)

	_, err := svc.GetCurrentUserID(nil)
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "not-a-uuid"})
	_, err = svc.GetCurrentUserID(token)
	assert.ErrorIs(t, err, user.ErrUserUnauthorized)

	token = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": uuid.NewString()})
	assert.False(t, svc.IsAdmin(token))
}
