package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusevents_backend/internals/constants"
	collegeModel "campusevents_backend/internals/features/campus/colleges/model"
)

// UserModel represents the users table
type UserModel struct {
	UserID           uuid.UUID `gorm:"column:user_id;primaryKey;type:uuid" json:"user_id"`
	UserName         string    `gorm:"column:user_name;type:varchar(50);uniqueIndex;not null" json:"user_name"`
	UserEmail        string    `gorm:"column:user_email;type:varchar(255);uniqueIndex;not null" json:"user_email"`
	UserPasswordHash string    `gorm:"column:user_password_hash;not null" json:"-"`
	UserFullName     string    `gorm:"column:user_full_name;type:varchar(100);not null" json:"user_full_name"`
	UserRole         string    `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"`
	UserCollegeID    uuid.UUID `gorm:"column:user_college_id;type:uuid;not null" json:"user_college_id"`
	UserCreatedAt    time.Time `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt    time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`

	College *collegeModel.CollegeModel `gorm:"foreignKey:UserCollegeID;references:CollegeID" json:"college,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.UserID == uuid.Nil {
		m.UserID = uuid.New()
	}
	if m.UserRole == "" {
		m.UserRole = constants.RoleStudent
	}
	return nil
}
