// Package product provides the catalog operations. Deleting a product first
// asks every productDeleted listener to clean up and waits for them.
package product

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/domain/product"
	"github.com/amirasaad/storefront/pkg/eventbus"
	repo "github.com/amirasaad/storefront/pkg/repository/product"
	"github.com/amirasaad/storefront/pkg/utils"
	"github.com/google/uuid"
)

// Service provides business logic for catalog products.
type Service struct {
	repo   repo.Repository
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a product Service.
func New(r repo.Repository, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{repo: r, bus: bus, logger: logger}
}

// CreateParams describes a new product.
type CreateParams struct {
	Name        string
	Description string
	Category    string
	PriceCents  int64
	CreatedBy   string
}

// Create adds a draft product. Names are unique.
func (s *Service) Create(ctx context.Context, params CreateParams) (*product.Product, error) {
	log := s.logger.With("context", "CreateProduct", "name", params.Name)
	createdBy, err := uuid.Parse(params.CreatedBy)
	if err != nil {
		return nil, domain.Invalid("invalid creator id")
	}
	p, err := product.New(params.Name, params.Description, params.Category, params.PriceCents, createdBy)
	if err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByName(ctx, p.Name)
	if err != nil && !errors.Is(err, product.ErrProductNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, product.ErrProductAlreadyExists
	}
	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("Failed to create product", "error", err)
		return nil, err
	}
	log.Info("Product created", "product_id", p.ID)
	return p, nil
}

// Get returns a product by id.
func (s *Service) Get(ctx context.Context, id string) (*product.Product, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, pid)
}

// List returns one page of products matching filter and the total count.
func (s *Service) List(
	ctx context.Context,
	filter product.Filter,
	page, limit int,
) ([]*product.Product, int64, error) {
	limit, offset := utils.Offset(page, limit)
	return s.repo.List(ctx, filter, limit, offset)
}

// Update applies patch to a product.
func (s *Service) Update(ctx context.Context, id string, patch product.Patch) (*product.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// PublishProduct moves a product from draft to published.
func (s *Service) PublishProduct(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Publish()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("Product published", "product_id", p.ID)
	return p, nil
}

// Delete publishes productDeleted, waits for every listener to settle and
// then removes the product. Listener failures are logged and do not stop
// the deletion. The listener outcomes are returned in registration order.
func (s *Service) Delete(ctx context.Context, id string) ([]eventbus.Outcome, error) {
	log := s.logger.With("context", "DeleteProduct", "product_id", id)
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	log.Debug("🟢 [START] Notifying cleanup listeners",
		"listeners", s.bus.ListenerCount(events.EventTypeProductDeleted),
	)
	outcomes, err := s.bus.PublishAndAwait(ctx, events.NewProductDeleted(id))
	if err != nil {
		log.Warn("Cleanup listeners could not be notified", "error", err)
	}
	for i, out := range outcomes {
		if out.OK() {
			log.Debug("✅ [SUCCESS] Cleanup listener settled", "listener", i, "value", out.Value)
			continue
		}
		log.Warn("⚠️ [CLEANUP] Listener failed, deleting product anyway",
			"listener", i,
			"error", out.Cause(),
		)
	}

	if err := s.repo.Delete(ctx, pid); err != nil {
		log.Error("Failed to delete product", "error", err)
		return outcomes, err
	}
	log.Info("Product deleted", "listeners", len(outcomes))
	return outcomes, nil
}

func parseID(id string) (uuid.UUID, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.Invalid("invalid product id %q", id)
	}
	return pid, nil
}
