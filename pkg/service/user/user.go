// Package user provides business logic for user management operations.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/domain/user"
	"github.com/amirasaad/storefront/pkg/eventbus"
	userrepo "github.com/amirasaad/storefront/pkg/repository/user"
	"github.com/google/uuid"
)

// Service provides business logic for user operations.
type Service struct {
	repo   userrepo.Repository
	bus    eventbus.Publisher
	logger *slog.Logger
}

// New creates a new Service.
func New(
	repo userrepo.Repository,
	bus eventbus.Publisher,
	logger *slog.Logger,
) *Service {
	return &Service{repo: repo, bus: bus, logger: logger}
}

// CreateUser registers a new user and publishes userRegistered.
func (s *Service) CreateUser(
	ctx context.Context,
	username, email, password string,
) (*user.User, error) {
	log := s.logger.With("context", "CreateUser", "username", username)
	u, err := user.NewUser(username, email, password)
	if err != nil {
		return nil, err
	}
	exists, err := s.repo.ExistsByEmail(ctx, u.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrUserAlreadyExists
	}
	if err := s.repo.Create(ctx, u); err != nil {
		log.Error("Failed to create user", "error", err)
		return nil, err
	}
	log.Info("User created", "user_id", u.ID)

	if err := s.bus.Publish(ctx, events.NewUserRegistered(u.ID.String())); err != nil {
		log.Warn("Failed to publish userRegistered", "error", err)
	}
	return u, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, userID string) (*user.User, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, uid)
}

// UpdateUser changes the display names of a user.
func (s *Service) UpdateUser(ctx context.Context, userID, names string) (*user.User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Rename(names)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// MakeAdmin grants the admin role to a user.
func (s *Service) MakeAdmin(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.IsAdmin() {
		return u, nil
	}
	u.Promote()
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("User promoted to admin", "user_id", u.ID)
	return u, nil
}

func parseUserID(userID string) (uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid user id %q", domain.ErrValidation, userID)
	}
	return uid, nil
}
