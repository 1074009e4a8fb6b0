package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"campusevents_backend/internals/features/events/model"
)

/* =========================================================
   Request / Response
========================================================= */

// 🔹 Request to create an event (college + creator come from the token)
type EventRequest struct {
	EventTitle       string `json:"event_title" validate:"required,max=255"`
	EventDescription string `json:"event_description,omitempty"`
	EventDate        string `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime        string `json:"event_time,omitempty" validate:"omitempty,max=20"`
	EventLocation    string `json:"event_location,omitempty" validate:"omitempty,max=255"`
	EventOrganizer   string `json:"event_organizer,omitempty" validate:"omitempty,max=255"`
	EventMaxCapacity int    `json:"event_max_capacity" validate:"required,gt=0"`
	EventStatus      string `json:"event_status,omitempty" validate:"omitempty,oneof=upcoming active completed cancelled"`
}

// 🔹 Partial update request (pointers distinguish "not sent" from zero value)
type EventUpdateRequest struct {
	EventTitle       *string `json:"event_title" validate:"omitempty,max=255"`
	EventDescription *string `json:"event_description"`
	EventDate        *string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	EventTime        *string `json:"event_time" validate:"omitempty,max=20"`
	EventLocation    *string `json:"event_location" validate:"omitempty,max=255"`
	EventOrganizer   *string `json:"event_organizer" validate:"omitempty,max=255"`
	EventMaxCapacity *int    `json:"event_max_capacity" validate:"omitempty,gt=0"`
	EventStatus      *string `json:"event_status" validate:"omitempty,oneof=upcoming active completed cancelled"`
}

type CheckinRequest struct {
	CheckinMethod string `json:"checkin_method" validate:"required,oneof=manual qr self"`
}

type FeedbackRequest struct {
	FeedbackRating  int     `json:"feedback_rating" validate:"required,min=1,max=5"`
	FeedbackComment *string `json:"feedback_comment"`
}

// Filters compose with AND semantics; all empty → full date-ordered list.
type EventFilter struct {
	Search    string
	Date      *time.Time
	CollegeID *uuid.UUID
	Status    string
}

/* =========================================================
   Converters
========================================================= */

func (r *EventRequest) ToModel(collegeID, creatorID uuid.UUID) *model.EventModel {
	date, _ := time.Parse("2006-01-02", r.EventDate) // format already validated
	return &model.EventModel{
		EventTitle:       r.EventTitle,
		EventDescription: r.EventDescription,
		EventDate:        datatypes.Date(date),
		EventTime:        r.EventTime,
		EventLocation:    r.EventLocation,
		EventOrganizer:   r.EventOrganizer,
		EventMaxCapacity: r.EventMaxCapacity,
		EventStatus:      r.EventStatus,
		EventCollegeID:   collegeID,
		EventCreatedBy:   creatorID,
	}
}

// ApplyToModel writes only the fields that were sent.
func (r *EventUpdateRequest) ApplyToModel(m *model.EventModel) {
	if r.EventTitle != nil {
		m.EventTitle = *r.EventTitle
	}
	if r.EventDescription != nil {
		m.EventDescription = *r.EventDescription
	}
	if r.EventDate != nil {
		if date, err := time.Parse("2006-01-02", *r.EventDate); err == nil {
			m.EventDate = datatypes.Date(date)
		}
	}
	if r.EventTime != nil {
		m.EventTime = *r.EventTime
	}
	if r.EventLocation != nil {
		m.EventLocation = *r.EventLocation
	}
	if r.EventOrganizer != nil {
		m.EventOrganizer = *r.EventOrganizer
	}
	if r.EventMaxCapacity != nil {
		m.EventMaxCapacity = *r.EventMaxCapacity
	}
	if r.EventStatus != nil {
		m.EventStatus = *r.EventStatus
	}
}
