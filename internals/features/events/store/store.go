package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"campusevents_backend/internals/features/events/dto"
	"campusevents_backend/internals/features/events/model"
)

/* =========================================================
   EventStore

   The lifecycle engine and analytics run against this interface, never
   against a concrete schema. Two adapters exist: PostgresStore (server
   hosted, enum-typed columns, FK cascades) and EmbeddedStore (single-file
   SQLite, string enums, manual joins).
========================================================= */

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicate    = errors.New("duplicate record")
	ErrCapacityFull = errors.New("capacity exceeded")
)

type EventStore interface {
	// Events
	GetEvent(ctx context.Context, id uuid.UUID) (*model.EventModel, error)
	GetEventWithCount(ctx context.Context, id uuid.UUID) (*dto.EventWithCount, error)
	ListEvents(ctx context.Context, f dto.EventFilter) ([]dto.EventWithCount, error)
	CreateEvent(ctx context.Context, m *model.EventModel) error
	UpdateEvent(ctx context.Context, m *model.EventModel) error
	DeleteEvent(ctx context.Context, id uuid.UUID) error

	// Lifecycle rows
	FindRegistration(ctx context.Context, eventID, studentID uuid.UUID) (*model.RegistrationModel, error)
	CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error)
	// RegisterLocked performs the capacity check and the insert as one atomic
	// unit, so concurrent registrations can never push the count past
	// event_max_capacity.
	RegisterLocked(ctx context.Context, eventID, studentID uuid.UUID) (*model.RegistrationModel, error)
	DeleteRegistration(ctx context.Context, eventID, studentID uuid.UUID) error
	ListRegistrationsByStudent(ctx context.Context, studentID uuid.UUID) ([]model.RegistrationModel, error)

	FindAttendance(ctx context.Context, eventID, studentID uuid.UUID) (*model.AttendanceModel, error)
	CreateAttendance(ctx context.Context, m *model.AttendanceModel) error

	FindFeedback(ctx context.Context, eventID, studentID uuid.UUID) (*model.FeedbackModel, error)
	CreateFeedback(ctx context.Context, m *model.FeedbackModel) error

	// Denormalized views for admin reporting
	RegistrationsForEvent(ctx context.Context, eventID uuid.UUID) ([]dto.RegistrationWithStudent, error)
	AttendanceForEvent(ctx context.Context, eventID uuid.UUID) ([]dto.AttendanceWithStudent, error)

	// Read-only rollups
	PopularityReport(ctx context.Context, limit int) ([]dto.EventPopularityRow, error)
	TopParticipants(ctx context.Context, limit int) ([]dto.ParticipantRow, error)
	FeedbackReport(ctx context.Context, limit int) ([]dto.EventFeedbackRow, error)
}
