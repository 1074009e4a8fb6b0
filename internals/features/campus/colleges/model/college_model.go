package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CollegeModel is created once (seed/admin) and immutable afterwards;
// users and events reference it.
type CollegeModel struct {
	CollegeID        uuid.UUID `gorm:"column:college_id;primaryKey;type:uuid" json:"college_id"`
	CollegeName      string    `gorm:"column:college_name;type:varchar(255);uniqueIndex;not null" json:"college_name"`
	CollegeLocation  string    `gorm:"column:college_location;type:varchar(255)" json:"college_location"`
	CollegeCreatedAt time.Time `gorm:"column:college_created_at;autoCreateTime" json:"college_created_at"`
}

func (CollegeModel) TableName() string {
	return "colleges"
}

// App-side UUID so the same model works on Postgres and the embedded store.
func (m *CollegeModel) BeforeCreate(tx *gorm.DB) error {
	if m.CollegeID == uuid.Nil {
		m.CollegeID = uuid.New()
	}
	return nil
}
