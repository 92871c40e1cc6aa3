package app

import (
	"context"

	"github.com/klokku/eventcal/internal/config"
	"github.com/klokku/eventcal/internal/event_bus"
	"github.com/klokku/eventcal/internal/storage"
	"github.com/klokku/eventcal/internal/utils"
	"github.com/klokku/eventcal/pkg/calendar"
	"github.com/klokku/eventcal/pkg/event"
	"github.com/klokku/eventcal/pkg/export"
	"github.com/klokku/eventcal/pkg/view"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	EventStore   *event.Store
	EventService *event.ServiceImpl
	EventHandler *event.Handler

	ViewSession *view.Session
	ViewHandler *view.Handler

	CalendarHandler *calendar.Handler
	ExportHandler   *export.Handler

	Clock utils.Clock
}

// BuildDependencies rehydrates the event store and wires all services and handlers.
func BuildDependencies(ctx context.Context, s storage.LocalStorage, cfg config.Application, clock utils.Clock) (*Dependencies, error) {
	deps := &Dependencies{Clock: clock}

	deps.EventBus = event_bus.NewEventBus()
	event_bus.SubscribeTyped(deps.EventBus, event_bus.EventsChangedType, logChange)

	store, err := event.NewStore(ctx, s, cfg.Storage.Key, deps.EventBus)
	if err != nil {
		return nil, err
	}
	deps.EventStore = store
	deps.EventService = event.NewService(store)
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.ViewSession = view.NewSession(view.NewState(utils.Today(clock)))
	deps.ViewHandler = view.NewHandler(deps.ViewSession, store.Get)

	deps.CalendarHandler = calendar.NewHandler(store.DateKeys, deps.ViewSession.DisplayedMonth, clock)
	deps.ExportHandler = export.NewHandler(store.Snapshot, func() string {
		return deps.ViewSession.State().ExportBaseName()
	}, clock)

	return deps, nil
}

func logChange(e event_bus.EventT[event_bus.EventsChanged]) error {
	log.Infof("Event %s %s on %s", e.Data.EventID, e.Data.Kind, e.Data.DateKey)
	return nil
}
