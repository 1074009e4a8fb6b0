package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	collegeModel "campusevents_backend/internals/features/campus/colleges/model"
	userModel "campusevents_backend/internals/features/users/user/model"
)

// Event lifecycle statuses
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusActive    = "active"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

func IsValidEventStatus(s string) bool {
	switch s {
	case EventStatusUpcoming, EventStatusActive, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

type EventModel struct {
	EventID          uuid.UUID      `gorm:"column:event_id;primaryKey;type:uuid" json:"event_id"`
	EventTitle       string         `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventDescription string         `gorm:"column:event_description;type:text" json:"event_description,omitempty"`
	EventDate        datatypes.Date `gorm:"column:event_date;not null;index" json:"event_date"`
	EventTime        string         `gorm:"column:event_time;type:varchar(20)" json:"event_time,omitempty"`
	EventLocation    string         `gorm:"column:event_location;type:varchar(255)" json:"event_location,omitempty"`
	EventOrganizer   string         `gorm:"column:event_organizer;type:varchar(255)" json:"event_organizer,omitempty"`
	EventMaxCapacity int            `gorm:"column:event_max_capacity;not null;check:event_max_capacity > 0" json:"event_max_capacity"`
	EventStatus      string         `gorm:"column:event_status;type:varchar(20);not null;default:'upcoming'" json:"event_status"`
	EventCollegeID   uuid.UUID      `gorm:"column:event_college_id;type:uuid;not null;index" json:"event_college_id"`
	EventCreatedBy   uuid.UUID      `gorm:"column:event_created_by;type:uuid;not null" json:"event_created_by"`
	EventCreatedAt   time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt   time.Time      `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`

	College *collegeModel.CollegeModel `gorm:"foreignKey:EventCollegeID;references:CollegeID" json:"college,omitempty"`
	Creator *userModel.UserModel       `gorm:"foreignKey:EventCreatedBy;references:UserID" json:"creator,omitempty"`

	// Dependent rows removed with the event (referential cascade)
	Registrations []RegistrationModel `gorm:"foreignKey:RegistrationEventID;constraint:OnDelete:CASCADE" json:"-"`
	Attendance    []AttendanceModel   `gorm:"foreignKey:AttendanceEventID;constraint:OnDelete:CASCADE" json:"-"`
	Feedback      []FeedbackModel     `gorm:"foreignKey:FeedbackEventID;constraint:OnDelete:CASCADE" json:"-"`
}

func (EventModel) TableName() string {
	return "events"
}

func (m *EventModel) BeforeCreate(tx *gorm.DB) error {
	if m.EventID == uuid.Nil {
		m.EventID = uuid.New()
	}
	if m.EventStatus == "" {
		m.EventStatus = EventStatusUpcoming
	}
	return nil
}
