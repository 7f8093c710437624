// Package mocks holds testify mocks for repositories and the event bus.
package mocks

import (
	"context"

	"github.com/amirasaad/storefront/pkg/domain/events"
	"github.com/amirasaad/storefront/pkg/domain/inventory"
	"github.com/amirasaad/storefront/pkg/domain/notification"
	"github.com/amirasaad/storefront/pkg/domain/product"
	"github.com/amirasaad/storefront/pkg/domain/user"
	"github.com/amirasaad/storefront/pkg/eventbus"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func ptr[T any](args mock.Arguments, i int) *T {
	if v := args.Get(i); v != nil {
		return v.(*T)
	}
	return nil
}

// UserRepository mocks pkg/repository/user.Repository.
type UserRepository struct{ mock.Mock }

func NewUserRepository(t testingT) *UserRepository {
	m := &UserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	return ptr[user.User](args, 0), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	return ptr[user.User](args, 0), args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	return ptr[user.User](args, 0), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// ProductRepository mocks pkg/repository/product.Repository.
type ProductRepository struct{ mock.Mock }

func NewProductRepository(t testingT) *ProductRepository {
	m := &ProductRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *ProductRepository) Get(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	return ptr[product.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) GetByName(ctx context.Context, name string) (*product.Product, error) {
	args := m.Called(ctx, name)
	return ptr[product.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) List(
	ctx context.Context,
	filter product.Filter,
	limit, offset int,
) ([]*product.Product, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	var items []*product.Product
	if v := args.Get(0); v != nil {
		items = v.([]*product.Product)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// InventoryRepository mocks pkg/repository/inventory.Repository.
type InventoryRepository struct{ mock.Mock }

func NewInventoryRepository(t testingT) *InventoryRepository {
	m := &InventoryRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *InventoryRepository) Create(ctx context.Context, inv *inventory.Inventory) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *InventoryRepository) Update(ctx context.Context, inv *inventory.Inventory) error {
	return m.Called(ctx, inv).Error(0)
}

func (m *InventoryRepository) GetByProduct(ctx context.Context, productID uuid.UUID) (*inventory.Inventory, error) {
	args := m.Called(ctx, productID)
	return ptr[inventory.Inventory](args, 0), args.Error(1)
}

func (m *InventoryRepository) List(ctx context.Context, limit, offset int) ([]*inventory.Inventory, int64, error) {
	args := m.Called(ctx, limit, offset)
	var items []*inventory.Inventory
	if v := args.Get(0); v != nil {
		items = v.([]*inventory.Inventory)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *InventoryRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	return m.Called(ctx, productID).Error(0)
}

// NotificationRepository mocks pkg/repository/notification.Repository.
type NotificationRepository struct{ mock.Mock }

func NewNotificationRepository(t testingT) *NotificationRepository {
	m := &NotificationRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	return ptr[notification.Notification](args, 0), args.Error(1)
}

func (m *NotificationRepository) ListByUser(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID, limit, offset)
	var items []*notification.Notification
	if v := args.Get(0); v != nil {
		items = v.([]*notification.Notification)
	}
	return items, args.Error(1)
}

func (m *NotificationRepository) MarkAsRead(ctx context.Context, id string) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	return ptr[notification.Notification](args, 0), args.Error(1)
}

// Bus mocks eventbus.Bus.
type Bus struct{ mock.Mock }

func NewBus(t testingT) *Bus {
	m := &Bus{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Bus) Register(eventType events.EventType, handler eventbus.HandlerFunc) {
	m.Called(eventType, handler)
}

func (m *Bus) Publish(ctx context.Context, e events.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *Bus) PublishAndAwait(ctx context.Context, e events.Event) ([]eventbus.Outcome, error) {
	args := m.Called(ctx, e)
	var outcomes []eventbus.Outcome
	if v := args.Get(0); v != nil {
		outcomes = v.([]eventbus.Outcome)
	}
	return outcomes, args.Error(1)
}

func (m *Bus) ListenerCount(eventType events.EventType) int {
	return m.Called(eventType).Int(0)
}

// MatchEvent matches an event of the given type carrying entityID.
func MatchEvent(eventType events.EventType, entityID string) any {
	return mock.MatchedBy(func(e events.Event) bool {
		id, err := e.EntityID()
		return err == nil && e.Type == eventType && id == entityID
	})
}
