package product_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/storefront/internal/fixtures/mocks"
	"github.com/amirasaad/storefront/pkg/domain"
	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/domain/product"
	"github.com/amirasaad/storefront/pkg/eventbus"
	"github.com/amirasaad/storefront/pkg/retry"
	svc "github.com/amirasaad/storefront/pkg/service/product"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	params := svc.CreateParams{Name: "Mug", Category: "kitchen", PriceCents: 1299, CreatedBy: uuid.NewString()}

	t.Run("creates a draft", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewProductRepository(t)
		repo.On("GetByName", mock.Anything, "Mug").Return(nil, product.ErrProductNotFound).Once()
		repo.On("Create", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil).Once()

		p, err := svc.New(repo, mocks.NewBus(t), discard()).Create(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, product.StatusDraft, p.Status)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewProductRepository(t)
		repo.On("GetByName", mock.Anything, "Mug").Return(&product.Product{Name: "Mug"}, nil).Once()

		_, err := svc.New(repo, mocks.NewBus(t), discard()).Create(ctx, params)
		assert.ErrorIs(t, err, product.ErrProductAlreadyExists)
	})

	t.Run("creator must be an id", func(t *testing.T) {
		t.Parallel()
		bad := params
		bad.CreatedBy = "someone"
		_, err := svc.New(mocks.NewProductRepository(t), mocks.NewBus(t), discard()).Create(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPublishProduct(t *testing.T) {
	t.Parallel()
	repo := mocks.NewProductRepository(t)
	p, err := product.New("Mug", "", "", 100, uuid.New())
	require.NoError(t, err)
	repo.On("Get", mock.Anything, p.ID).Return(p, nil).Once()
	repo.On("Update", mock.Anything, mock.MatchedBy(func(got *product.Product) bool {
		return got.Status == product.StatusPublished
	})).Return(nil).Once()

	published, err := svc.New(repo, mocks.NewBus(t), discard()).PublishProduct(context.Background(), p.ID.String())
	require.NoError(t, err)
	assert.Equal(t, product.StatusPublished, published.Status)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("cleanup runs before the product row is removed", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewProductRepository(t)
		bus := mocks.NewBus(t)
		id := uuid.New()
		var order []string

		bus.On("ListenerCount", events.EventTypeProductDeleted).Return(1).Once()
		bus.On("PublishAndAwait", mock.Anything, mocks.MatchEvent(events.EventTypeProductDeleted, id.String())).
			Run(func(mock.Arguments) { order = append(order, "publish") }).
			Return([]eventbus.Outcome{eventbus.NewOutcome(retry.Result[bool]{Value: true, Attempts: 1}, nil)}, nil).Once()
		repo.On("Delete", mock.Anything, id).
			Run(func(mock.Arguments) { order = append(order, "delete") }).
			Return(nil).Once()

		outcomes, err := svc.New(repo, bus, discard()).Delete(ctx, id.String())
		require.NoError(t, err)
		require.Len(t, outcomes, 1)
		assert.True(t, outcomes[0].OK())
		assert.Equal(t, []string{"publish", "delete"}, order)
	})

	t.Run("failed cleanup does not block deletion", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewProductRepository(t)
		bus := mocks.NewBus(t)
		id := uuid.New()
		exhausted := retry.Result[bool]{Err: retry.ErrExhausted, Attempts: 3}

		bus.On("ListenerCount", events.EventTypeProductDeleted).Return(2).Once()
		bus.On("PublishAndAwait", mock.Anything, mock.Anything).
			Return([]eventbus.Outcome{
				eventbus.NewOutcome(exhausted, nil),
				eventbus.NewOutcome(nil, errors.New("listener crashed")),
			}, nil).Once()
		repo.On("Delete", mock.Anything, id).Return(nil).Once()

		outcomes, err := svc.New(repo, bus, discard()).Delete(ctx, id.String())
		require.NoError(t, err)
		assert.False(t, outcomes[0].OK())
		assert.False(t, outcomes[1].OK())
	})

	t.Run("no listeners still deletes", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewProductRepository(t)
		bus := mocks.NewBus(t)
		id := uuid.New()
		bus.On("ListenerCount", events.EventTypeProductDeleted).Return(0).Once()
		bus.On("PublishAndAwait", mock.Anything, mock.Anything).Return([]eventbus.Outcome{}, nil).Once()
		repo.On("Delete", mock.Anything, id).Return(nil).Once()

		outcomes, err := svc.New(repo, bus, discard()).Delete(ctx, id.String())
		require.NoError(t, err)
		assert.Empty(t, outcomes)
	})

	t.Run("missing product is reported after cleanup", func(t *testing.T) {
		t.Parallel()
		repo := mocks.NewProductRepository(t)
		bus := mocks.NewBus(t)
		id := uuid.New()
		bus.On("ListenerCount", events.EventTypeProductDeleted).Return(0).Once()
		bus.On("PublishAndAwait", mock.Anything, mock.Anything).Return([]eventbus.Outcome{}, nil).Once()
		repo.On("Delete", mock.Anything, id).Return(product.ErrProductNotFound).Once()

		_, err := svc.New(repo, bus, discard()).Delete(ctx, id.String())
		assert.ErrorIs(t, err, product.ErrProductNotFound)
	})

	t.Run("invalid id never publishes", func(t *testing.T) {
		t.Parallel()
		_, err := svc.New(mocks.NewProductRepository(t), mocks.NewBus(t), discard()).Delete(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
