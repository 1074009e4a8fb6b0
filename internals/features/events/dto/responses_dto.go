package dto

import (
	"time"

	"github.com/google/uuid"

	"campusevents_backend/internals/features/events/model"
)

/* =========================================================
   Read models (rows scanned straight from the store)
========================================================= */

// EventWithCount is an event row plus its live registration count.
type EventWithCount struct {
	model.EventModel  `gorm:"embedded"`
	RegistrationCount int64 `gorm:"column:registration_count" json:"registration_count"`
}

// RegistrationWithStudent: registration row denormalized with student detail.
type RegistrationWithStudent struct {
	RegistrationID           uuid.UUID `gorm:"column:registration_id" json:"registration_id"`
	RegistrationEventID      uuid.UUID `gorm:"column:registration_event_id" json:"registration_event_id"`
	RegistrationStudentID    uuid.UUID `gorm:"column:registration_student_id" json:"registration_student_id"`
	RegistrationRegisteredAt time.Time `gorm:"column:registration_registered_at" json:"registration_registered_at"`
	UserName                 string    `gorm:"column:user_name" json:"user_name"`
	UserFullName             string    `gorm:"column:user_full_name" json:"user_full_name"`
	UserEmail                string    `gorm:"column:user_email" json:"user_email"`
}

// AttendanceWithStudent: attendance row denormalized with student detail.
type AttendanceWithStudent struct {
	AttendanceID            uuid.UUID `gorm:"column:attendance_id" json:"attendance_id"`
	AttendanceEventID       uuid.UUID `gorm:"column:attendance_event_id" json:"attendance_event_id"`
	AttendanceStudentID     uuid.UUID `gorm:"column:attendance_student_id" json:"attendance_student_id"`
	AttendanceCheckinMethod string    `gorm:"column:attendance_checkin_method" json:"attendance_checkin_method"`
	AttendanceCheckedInAt   time.Time `gorm:"column:attendance_checked_in_at" json:"attendance_checked_in_at"`
	UserName                string    `gorm:"column:user_name" json:"user_name"`
	UserFullName            string    `gorm:"column:user_full_name" json:"user_full_name"`
	UserEmail               string    `gorm:"column:user_email" json:"user_email"`
}

/* =========================================================
   Report rows (analytics rollups)
========================================================= */

type EventPopularityRow struct {
	EventID           uuid.UUID `gorm:"column:event_id" json:"event_id"`
	EventTitle        string    `gorm:"column:event_title" json:"event_title"`
	RegistrationCount int64     `gorm:"column:registration_count" json:"registration_count"`
}

type ParticipantRow struct {
	StudentID       uuid.UUID `gorm:"column:user_id" json:"student_id"`
	UserName        string    `gorm:"column:user_name" json:"user_name"`
	UserFullName    string    `gorm:"column:user_full_name" json:"user_full_name"`
	AttendanceCount int64     `gorm:"column:attendance_count" json:"attendance_count"`
}

// AverageRating is 0 (never SQL NULL) when an event has no feedback yet.
type EventFeedbackRow struct {
	EventID       uuid.UUID `gorm:"column:event_id" json:"event_id"`
	EventTitle    string    `gorm:"column:event_title" json:"event_title"`
	AverageRating float64   `gorm:"column:average_rating" json:"average_rating"`
	FeedbackCount int64     `gorm:"column:feedback_count" json:"feedback_count"`
}

/* =========================================================
   Event response (API shape; date flattened to YYYY-MM-DD)
========================================================= */

type EventResponse struct {
	EventID           uuid.UUID `json:"event_id"`
	EventTitle        string    `json:"event_title"`
	EventDescription  string    `json:"event_description,omitempty"`
	EventDate         string    `json:"event_date"`
	EventTime         string    `json:"event_time,omitempty"`
	EventLocation     string    `json:"event_location,omitempty"`
	EventOrganizer    string    `json:"event_organizer,omitempty"`
	EventMaxCapacity  int       `json:"event_max_capacity"`
	EventStatus       string    `json:"event_status"`
	EventCollegeID    uuid.UUID `json:"event_college_id"`
	EventCreatedBy    uuid.UUID `json:"event_created_by"`
	EventCreatedAt    time.Time `json:"event_created_at"`
	RegistrationCount int64     `json:"registration_count"`
}

func ToEventResponse(row EventWithCount) EventResponse {
	return EventResponse{
		EventID:           row.EventID,
		EventTitle:        row.EventTitle,
		EventDescription:  row.EventDescription,
		EventDate:         time.Time(row.EventDate).Format("2006-01-02"),
		EventTime:         row.EventTime,
		EventLocation:     row.EventLocation,
		EventOrganizer:    row.EventOrganizer,
		EventMaxCapacity:  row.EventMaxCapacity,
		EventStatus:       row.EventStatus,
		EventCollegeID:    row.EventCollegeID,
		EventCreatedBy:    row.EventCreatedBy,
		EventCreatedAt:    row.EventCreatedAt,
		RegistrationCount: row.RegistrationCount,
	}
}

func ToEventResponseList(rows []EventWithCount) []EventResponse {
	out := make([]EventResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToEventResponse(r))
	}
	return out
}
