package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"campusevents_backend/internals/features/events/dto"
	"campusevents_backend/internals/features/events/model"
	"campusevents_backend/internals/features/events/store"
	helper "campusevents_backend/internals/helpers"
)

// EventService: admin CRUD + listing over the storage interface.
type EventService struct {
	store store.EventStore
}

func NewEventService(st store.EventStore) *EventService {
	return &EventService{store: st}
}

func (s *EventService) ListEvents(ctx context.Context, f dto.EventFilter) ([]dto.EventWithCount, error) {
	rows, err := s.store.ListEvents(ctx, f)
	if err != nil {
		return nil, helper.ErrInternal("event list failed", err)
	}
	return rows, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*dto.EventWithCount, error) {
	row, err := s.store.GetEventWithCount(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, helper.ErrNotFound("event not found")
		}
		return nil, helper.ErrInternal("event lookup failed", err)
	}
	return row, nil
}

func (s *EventService) CreateEvent(ctx context.Context, req *dto.EventRequest, collegeID, creatorID uuid.UUID) (*model.EventModel, error) {
	m := req.ToModel(collegeID, creatorID)
	if m.EventStatus != "" && !model.IsValidEventStatus(m.EventStatus) {
		return nil, helper.ErrInvalidInput("invalid event status")
	}
	if m.EventMaxCapacity <= 0 {
		return nil, helper.ErrInvalidInput("max capacity must be greater than zero")
	}
	if err := s.store.CreateEvent(ctx, m); err != nil {
		return nil, helper.ErrInternal("event create failed", err)
	}
	return m, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, id uuid.UUID, req *dto.EventUpdateRequest) (*model.EventModel, error) {
	ev, err := s.store.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, helper.ErrNotFound("event not found")
		}
		return nil, helper.ErrInternal("event lookup failed", err)
	}

	req.ApplyToModel(ev)
	if !model.IsValidEventStatus(ev.EventStatus) {
		return nil, helper.ErrInvalidInput("invalid event status")
	}
	if ev.EventMaxCapacity <= 0 {
		return nil, helper.ErrInvalidInput("max capacity must be greater than zero")
	}

	if err := s.store.UpdateEvent(ctx, ev); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, helper.ErrNotFound("event not found")
		}
		return nil, helper.ErrInternal("event update failed", err)
	}
	return ev, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return helper.ErrNotFound("event not found")
		}
		return helper.ErrInternal("event delete failed", err)
	}
	return nil
}

func (s *EventService) RegistrationsForEvent(ctx context.Context, eventID uuid.UUID) ([]dto.RegistrationWithStudent, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, helper.ErrNotFound("event not found")
		}
		return nil, helper.ErrInternal("event lookup failed", err)
	}
	rows, err := s.store.RegistrationsForEvent(ctx, eventID)
	if err != nil {
		return nil, helper.ErrInternal("registrants list failed", err)
	}
	return rows, nil
}

func (s *EventService) AttendanceForEvent(ctx context.Context, eventID uuid.UUID) ([]dto.AttendanceWithStudent, error) {
	if _, err := s.store.GetEvent(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, helper.ErrNotFound("event not found")
		}
		return nil, helper.ErrInternal("event lookup failed", err)
	}
	rows, err := s.store.AttendanceForEvent(ctx, eventID)
	if err != nil {
		return nil, helper.ErrInternal("attendance list failed", err)
	}
	return rows, nil
}
