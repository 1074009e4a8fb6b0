package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "campusevents_backend/internals/features/users/user/model"
)

// Check-in methods
const (
	CheckinMethodManual = "manual"
	CheckinMethodQR     = "qr"
	CheckinMethodSelf   = "self"
)

func IsValidCheckinMethod(m string) bool {
	switch m {
	case CheckinMethodManual, CheckinMethodQR, CheckinMethodSelf:
		return true
	}
	return false
}

// AttendanceModel: confirmed presence. Only ever created when a registration
// for the same (event, student) pair exists; never deleted by users.
type AttendanceModel struct {
	AttendanceID            uuid.UUID `gorm:"column:attendance_id;primaryKey;type:uuid" json:"attendance_id"`
	AttendanceEventID       uuid.UUID `gorm:"column:attendance_event_id;type:uuid;not null;uniqueIndex:uq_attendance_event_student" json:"attendance_event_id"`
	AttendanceStudentID     uuid.UUID `gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendance_event_student" json:"attendance_student_id"`
	AttendanceCheckinMethod string    `gorm:"column:attendance_checkin_method;type:varchar(20);not null" json:"attendance_checkin_method"`
	AttendanceCheckedInAt   time.Time `gorm:"column:attendance_checked_in_at;autoCreateTime" json:"attendance_checked_in_at"`

	Student *userModel.UserModel `gorm:"foreignKey:AttendanceStudentID;references:UserID" json:"student,omitempty"`
}

func (AttendanceModel) TableName() string {
	return "event_attendance"
}

func (m *AttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}
