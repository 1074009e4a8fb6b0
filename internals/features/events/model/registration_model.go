package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "campusevents_backend/internals/features/users/user/model"
)

// RegistrationModel: a student's reserved intent to attend an event.
// At most one row per (event, student).
type RegistrationModel struct {
	RegistrationID           uuid.UUID `gorm:"column:registration_id;primaryKey;type:uuid" json:"registration_id"`
	RegistrationEventID      uuid.UUID `gorm:"column:registration_event_id;type:uuid;not null;uniqueIndex:uq_registrations_event_student" json:"registration_event_id"`
	RegistrationStudentID    uuid.UUID `gorm:"column:registration_student_id;type:uuid;not null;uniqueIndex:uq_registrations_event_student" json:"registration_student_id"`
	RegistrationRegisteredAt time.Time `gorm:"column:registration_registered_at;autoCreateTime" json:"registration_registered_at"`

	Student *userModel.UserModel `gorm:"foreignKey:RegistrationStudentID;references:UserID" json:"student,omitempty"`
	Event   *EventModel          `gorm:"foreignKey:RegistrationEventID;references:EventID" json:"event,omitempty"`
}

func (RegistrationModel) TableName() string {
	return "event_registrations"
}

func (m *RegistrationModel) BeforeCreate(tx *gorm.DB) error {
	if m.RegistrationID == uuid.Nil {
		m.RegistrationID = uuid.New()
	}
	return nil
}
