package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"campusevents_backend/internals/features/events/model"
	"campusevents_backend/internals/features/events/store"
	helper "campusevents_backend/internals/helpers"
)

/* =========================================================
   Lifecycle rules engine

   Per (event, student) pair the state machine is
     Unregistered → Registered → Attended → Feedback-given
   moving forward only; Registered → Unregistered is the single backward
   transition and is blocked once attendance exists.
========================================================= */

type LifecycleService struct {
	store store.EventStore
}

func NewLifecycleService(st store.EventStore) *LifecycleService {
	return &LifecycleService{store: st}
}

// Register reserves a capacity-gated slot for the student.
func (s *LifecycleService) Register(ctx context.Context, eventID, studentID uuid.UUID) (*model.RegistrationModel, error) {
	// Duplicate first, so a re-register on a full event still reads
	// "already registered" rather than "capacity exceeded".
	if _, err := s.store.FindRegistration(ctx, eventID, studentID); err == nil {
		return nil, helper.ErrConflict("already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, helper.ErrInternal("registration lookup failed", err)
	}

	reg, err := s.store.RegisterLocked(ctx, eventID, studentID)
	switch {
	case err == nil:
		return reg, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, helper.ErrNotFound("event not found")
	case errors.Is(err, store.ErrCapacityFull):
		return nil, helper.ErrConflict("capacity exceeded")
	case errors.Is(err, store.ErrDuplicate):
		// lost the race against our own duplicate
		return nil, helper.ErrConflict("already registered")
	default:
		return nil, helper.ErrInternal("registration failed", err)
	}
}

// Unregister cancels a registration. Strict policy: once the student has
// checked in the registration is a historical fact and can no longer be
// cancelled.
func (s *LifecycleService) Unregister(ctx context.Context, eventID, studentID uuid.UUID) error {
	if _, err := s.store.FindRegistration(ctx, eventID, studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return helper.ErrNotFound("registration not found")
		}
		return helper.ErrInternal("registration lookup failed", err)
	}

	if _, err := s.store.FindAttendance(ctx, eventID, studentID); err == nil {
		return helper.ErrConflict("cannot unregister after check-in")
	} else if !errors.Is(err, store.ErrNotFound) {
		return helper.ErrInternal("attendance lookup failed", err)
	}

	if err := s.store.DeleteRegistration(ctx, eventID, studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return helper.ErrNotFound("registration not found")
		}
		return helper.ErrInternal("unregister failed", err)
	}
	return nil
}

// CheckIn records confirmed presence. Attendance without a registration is
// never permitted.
func (s *LifecycleService) CheckIn(ctx context.Context, eventID, studentID uuid.UUID, method string) (*model.AttendanceModel, error) {
	if !model.IsValidCheckinMethod(method) {
		return nil, helper.ErrInvalidInput("checkin method must be one of: manual, qr, self")
	}

	if _, err := s.store.FindRegistration(ctx, eventID, studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, helper.ErrConflict("not registered")
		}
		return nil, helper.ErrInternal("registration lookup failed", err)
	}

	if _, err := s.store.FindAttendance(ctx, eventID, studentID); err == nil {
		return nil, helper.ErrConflict("already checked in")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, helper.ErrInternal("attendance lookup failed", err)
	}

	att := &model.AttendanceModel{
		AttendanceEventID:       eventID,
		AttendanceStudentID:     studentID,
		AttendanceCheckinMethod: method,
	}
	if err := s.store.CreateAttendance(ctx, att); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, helper.ErrConflict("already checked in")
		}
		return nil, helper.ErrInternal("check-in failed", err)
	}
	return att, nil
}

// SubmitFeedback records a rating/comment, gated on attendance.
func (s *LifecycleService) SubmitFeedback(ctx context.Context, eventID, studentID uuid.UUID, rating int, comment *string) (*model.FeedbackModel, error) {
	if rating < 1 || rating > 5 {
		return nil, helper.ErrInvalidInput("rating must be between 1 and 5")
	}

	if _, err := s.store.FindAttendance(ctx, eventID, studentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, helper.ErrConflict("must attend to give feedback")
		}
		return nil, helper.ErrInternal("attendance lookup failed", err)
	}

	if _, err := s.store.FindFeedback(ctx, eventID, studentID); err == nil {
		return nil, helper.ErrConflict("feedback already submitted")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, helper.ErrInternal("feedback lookup failed", err)
	}

	fb := &model.FeedbackModel{
		FeedbackEventID:   eventID,
		FeedbackStudentID: studentID,
		FeedbackRating:    rating,
		FeedbackComment:   comment,
	}
	if err := s.store.CreateFeedback(ctx, fb); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, helper.ErrConflict("feedback already submitted")
		}
		return nil, helper.ErrInternal("feedback submit failed", err)
	}
	return fb, nil
}

// MyRegistrations lists the caller's registrations with event detail.
func (s *LifecycleService) MyRegistrations(ctx context.Context, studentID uuid.UUID) ([]model.RegistrationModel, error) {
	regs, err := s.store.ListRegistrationsByStudent(ctx, studentID)
	if err != nil {
		return nil, helper.ErrInternal("registration list failed", err)
	}
	return regs, nil
}
