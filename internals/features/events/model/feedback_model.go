package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "campusevents_backend/internals/features/users/user/model"
)

// FeedbackModel: post-event rating/comment, gated on attendance.
type FeedbackModel struct {
	FeedbackID          uuid.UUID `gorm:"column:feedback_id;primaryKey;type:uuid" json:"feedback_id"`
	FeedbackEventID     uuid.UUID `gorm:"column:feedback_event_id;type:uuid;not null;uniqueIndex:uq_feedback_event_student" json:"feedback_event_id"`
	FeedbackStudentID   uuid.UUID `gorm:"column:feedback_student_id;type:uuid;not null;uniqueIndex:uq_feedback_event_student" json:"feedback_student_id"`
	FeedbackRating      int       `gorm:"column:feedback_rating;not null;check:feedback_rating >= 1 AND feedback_rating <= 5" json:"feedback_rating"`
	FeedbackComment     *string   `gorm:"column:feedback_comment;type:text" json:"feedback_comment,omitempty"`
	FeedbackSubmittedAt time.Time `gorm:"column:feedback_submitted_at;autoCreateTime" json:"feedback_submitted_at"`

	Student *userModel.UserModel `gorm:"foreignKey:FeedbackStudentID;references:UserID" json:"student,omitempty"`
}

func (FeedbackModel) TableName() string {
	return "event_feedback"
}

func (m *FeedbackModel) BeforeCreate(tx *gorm.DB) error {
	if m.FeedbackID == uuid.Nil {
		m.FeedbackID = uuid.New()
	}
	return nil
}
