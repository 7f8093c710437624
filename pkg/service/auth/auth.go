package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/storefront/pkg/config"
	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/domain/user"
	"github.com/amirasaad/storefront/pkg/eventbus"
	repouser "github.com/amirasaad/storefront/pkg/repository/user"
	"github.com/amirasaad/storefront/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Compared against when the identity is unknown so both paths cost one bcrypt check.
const dummyHash = "$2a$10$7zFqzDbD3RrlkMTczbXG9OWZ0FLOXjIxXzSZ.QZxkVXjXcx7QZQiC"

type Service struct {
	repo   repouser.Repository
	bus    eventbus.Publisher
	cfg    *config.Jwt
	logger *slog.Logger
}

func New(
	repo repouser.Repository,
	bus eventbus.Publisher,
	cfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{repo: repo, bus: bus, cfg: cfg, logger: logger}
}

// Login checks credentials by email or username and publishes userLoggedIn
// on success.
func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (*user.User, error) {
	log := s.logger.With("context", "Login", "identity", identity)
	log.Debug("Login called")

	var (
		u   *user.User
		err error
	)
	if utils.IsEmail(identity) {
		u, err = s.repo.GetByEmail(ctx, identity)
	} else {
		u, err = s.repo.GetByUsername(ctx, identity)
	}
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		log.Error("Login failed", "error", err)
		return nil, err
	}
	if u == nil {
		_ = utils.CheckPasswordHash(password, dummyHash)
		log.Warn("Login failed", "error", user.ErrUserUnauthorized)
		return nil, user.ErrUserUnauthorized
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		log.Warn("Login failed", "error", user.ErrUserUnauthorized)
		return nil, user.ErrUserUnauthorized
	}

	log.Info("Login successful", "user_id", u.ID)
	if err := s.bus.Publish(ctx, events.NewUserLoggedIn(u.ID.String())); err != nil {
		log.Warn("Failed to publish userLoggedIn", "error", err)
	}
	return u, nil
}

// GenerateToken signs an HS256 token carrying the user's id and role.
func (s *Service) GenerateToken(u *user.User) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = u.Username
	claims["email"] = u.Email
	claims["user_id"] = u.ID.String()
	claims["role"] = string(u.Role)
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("GenerateToken failed", "user_id", u.ID, "error", err)
		return "", err
	}
	return tokenString, nil
}

// GetCurrentUserID extracts the user id claim of a validated token.
func (s *Service) GetCurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := claimsOf(token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return userID, nil
}

// IsAdmin reports whether a validated token carries the admin role.
func (s *Service) IsAdmin(token *jwt.Token) bool {
	claims, ok := claimsOf(token)
	if !ok {
		return false
	}
	role, _ := claims["role"].(string)
	return user.Role(role) == user.RoleAdmin
}

func claimsOf(token *jwt.Token) (jwt.MapClaims, bool) {
	if token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}
