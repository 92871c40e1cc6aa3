package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/klokku/eventcal/internal/event_bus"
	"github.com/klokku/eventcal/internal/storage"
	log "github.com/sirupsen/logrus"
)

// Store is the in-memory mapping of date-keys to events, mirrored as a whole
// to a single key of a LocalStorage after every mutation. It performs no
// validation; see Validate and Service.
type Store struct {
	mu      sync.RWMutex
	events  map[string][]Event
	storage storage.LocalStorage
	key     string
	bus     *event_bus.EventBus
}

// NewStore rehydrates a store from the item stored under key. A missing
// item yields an empty store. bus may be nil.
func NewStore(ctx context.Context, s storage.LocalStorage, key string, bus *event_bus.EventBus) (*Store, error) {
	events, err := load(ctx, s, key)
	if err != nil {
		return nil, err
	}
	log.Debugf("loaded events for %d dates from storage key %s", len(events), key)

	return &Store{
		events:  events,
		storage: s,
		key:     key,
		bus:     bus,
	}, nil
}

func load(ctx context.Context, s storage.LocalStorage, key string) (map[string][]Event, error) {
	raw, err := s.GetItem(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return make(map[string][]Event), nil
		}
		return nil, fmt.Errorf("failed to read events from storage: %w", err)
	}

	var events map[string][]Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("failed to decode stored events: %w", err)
	}
	if events == nil {
		events = make(map[string][]Event)
	}
	for dateKey, list := range events {
		if len(list) == 0 {
			delete(events, dateKey)
		}
	}
	return events, nil
}

// Get returns a copy of the events stored for dateKey, never nil.
func (s *Store) Get(dateKey string) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.events[dateKey]
	if len(list) == 0 {
		return []Event{}
	}
	return slices.Clone(list)
}

// DateKeys returns the sorted date-keys that have at least one event.
func (s *Store) DateKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.events))
	for k := range s.events {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a deep copy of the whole mapping.
func (s *Store) Snapshot() map[string][]Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string][]Event, len(s.events))
	for k, list := range s.events {
		snapshot[k] = slices.Clone(list)
	}
	return snapshot
}

// Check inspects the current events of a date before a mutation is committed.
// It runs while the store is locked, so it sees exactly the list that is
// changed; a non-nil error aborts the mutation and is returned as is.
type Check func(existing []Event) error

// Add appends a new event with a freshly generated id to dateKey.
func (s *Store) Add(ctx context.Context, dateKey string, fields Fields) (Event, error) {
	return s.AddIf(ctx, dateKey, fields, nil)
}

// AddIf is Add guarded by check, which may be nil.
func (s *Store) AddIf(ctx context.Context, dateKey string, fields Fields, check Check) (Event, error) {
	if err := validDateKey(dateKey); err != nil {
		return Event{}, err
	}
	// version 7 UUIDs embed the creation time and sort by it
	id, err := uuid.NewV7()
	if err != nil {
		return Event{}, fmt.Errorf("failed to generate event id: %w", err)
	}
	event := fields.withID(id.String())

	s.mu.Lock()
	previous := s.events[dateKey]
	if check != nil {
		if err := check(slices.Clone(previous)); err != nil {
			s.mu.Unlock()
			return Event{}, err
		}
	}
	s.events[dateKey] = append(slices.Clone(previous), event)
	if err := s.saveLocked(ctx); err != nil {
		s.restoreLocked(dateKey, previous)
		s.mu.Unlock()
		return Event{}, err
	}
	s.mu.Unlock()

	log.Debugf("added event %s on %s", event.ID, dateKey)
	s.publish(ctx, event_bus.EventAdded, dateKey, event.ID)
	return event, nil
}

// Update replaces the event id of dateKey wholesale, keeping its id and position.
func (s *Store) Update(ctx context.Context, dateKey string, id string, fields Fields) (Event, error) {
	return s.UpdateIf(ctx, dateKey, id, fields, nil)
}

// UpdateIf is Update guarded by check, which may be nil. A missing id is
// reported before check runs.
func (s *Store) UpdateIf(ctx context.Context, dateKey string, id string, fields Fields, check Check) (Event, error) {
	event := fields.withID(id)

	s.mu.Lock()
	previous := s.events[dateKey]
	idx := slices.IndexFunc(previous, func(e Event) bool { return e.ID == id })
	if idx < 0 {
		s.mu.Unlock()
		return Event{}, fmt.Errorf("%w: %s on %s", ErrEventNotFound, id, dateKey)
	}
	if check != nil {
		if err := check(slices.Clone(previous)); err != nil {
			s.mu.Unlock()
			return Event{}, err
		}
	}
	updated := slices.Clone(previous)
	updated[idx] = event
	s.events[dateKey] = updated
	if err := s.saveLocked(ctx); err != nil {
		s.restoreLocked(dateKey, previous)
		s.mu.Unlock()
		return Event{}, err
	}
	s.mu.Unlock()

	log.Debugf("updated event %s on %s", id, dateKey)
	s.publish(ctx, event_bus.EventUpdated, dateKey, id)
	return event, nil
}

// Remove deletes the event id from dateKey. Removing an unknown id is a no-op.
func (s *Store) Remove(ctx context.Context, dateKey string, id string) error {
	s.mu.Lock()
	previous := s.events[dateKey]
	remaining := slices.DeleteFunc(slices.Clone(previous), func(e Event) bool { return e.ID == id })
	if len(remaining) == len(previous) {
		s.mu.Unlock()
		log.Tracef("event %s not present on %s, nothing to remove", id, dateKey)
		return nil
	}
	if len(remaining) == 0 {
		delete(s.events, dateKey)
	} else {
		s.events[dateKey] = remaining
	}
	if err := s.saveLocked(ctx); err != nil {
		s.restoreLocked(dateKey, previous)
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	log.Debugf("removed event %s from %s", id, dateKey)
	s.publish(ctx, event_bus.EventRemoved, dateKey, id)
	return nil
}

// Save writes the whole mapping to storage.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	raw, err := json.Marshal(s.events)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if err := s.storage.SetItem(ctx, s.key, raw); err != nil {
		log.Errorf("failed to persist events: %v", err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (s *Store) restoreLocked(dateKey string, previous []Event) {
	if len(previous) == 0 {
		delete(s.events, dateKey)
		return
	}
	s.events[dateKey] = previous
}

func (s *Store) publish(ctx context.Context, kind event_bus.ChangeKind, dateKey string, id string) {
	if s.bus == nil {
		return
	}
	change := event_bus.EventsChanged{Kind: kind, DateKey: dateKey, EventID: id}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.EventsChangedType, change)); err != nil {
		log.Warnf("events changed notification failed: %v", err)
	}
}
