package app

import (
	inventoryhandler "github.com/amirasaad/storefront/pkg/handler/inventory"
	notificationhandler "github.com/amirasaad/storefront/pkg/handler/notification"
)

// setupEventBus registers all event listeners with the shared bus.
func (a *App) setupEventBus() {
	bus := a.Deps.EventBus
	logger := a.Deps.Logger

	notificationhandler.Register(
		bus,
		a.NotificationService,
		a.Executor,
		a.Deps.Tracker,
		logger,
	)
	inventoryhandler.Register(
		bus,
		a.InventoryService,
		a.Executor,
		a.InventoryService.Threshold(),
		logger,
	)
}
