package event

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Service is the form layer in front of the Store: every add and edit is
// validated against the events of the same date, atomically with its commit.
type Service interface {
	GetEvents(dateKey string) ([]Event, error)
	AddEvent(ctx context.Context, dateKey string, fields Fields) (Event, error)
	UpdateEvent(ctx context.Context, dateKey string, id string, fields Fields) (Event, error)
	DeleteEvent(ctx context.Context, dateKey string, id string) error
}

type ServiceImpl struct {
	store *Store
}

func NewService(store *Store) *ServiceImpl {
	return &ServiceImpl{store: store}
}

func (s *ServiceImpl) GetEvents(dateKey string) ([]Event, error) {
	if err := validDateKey(dateKey); err != nil {
		return nil, err
	}
	return s.store.Get(dateKey), nil
}

func (s *ServiceImpl) AddEvent(ctx context.Context, dateKey string, fields Fields) (Event, error) {
	if err := validDateKey(dateKey); err != nil {
		return Event{}, err
	}

	event, err := s.store.AddIf(ctx, dateKey, fields, func(existing []Event) error {
		return Validate(fields, existing, "")
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			log.Debugf("rejected new event on %s: %v", dateKey, err)
			return Event{}, err
		}
		return Event{}, fmt.Errorf("failed to add event: %w", err)
	}
	return event, nil
}

func (s *ServiceImpl) UpdateEvent(ctx context.Context, dateKey string, id string, fields Fields) (Event, error) {
	if err := validDateKey(dateKey); err != nil {
		return Event{}, err
	}

	event, err := s.store.UpdateIf(ctx, dateKey, id, fields, func(existing []Event) error {
		return Validate(fields, existing, id)
	})
	if err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrEventNotFound) {
			log.Debugf("rejected edit of event %s on %s: %v", id, dateKey, err)
			return Event{}, err
		}
		return Event{}, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (s *ServiceImpl) DeleteEvent(ctx context.Context, dateKey string, id string) error {
	if err := validDateKey(dateKey); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, dateKey, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
