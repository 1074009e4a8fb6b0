package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusevents_backend/internals/features/events/dto"
	"campusevents_backend/internals/features/events/model"
)

// PostgresStore targets the server-hosted schema: typed columns, FK
// relations with ON DELETE CASCADE, row locks for the capacity gate.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Detect Postgres unique violations (SQLSTATE 23505)
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

/* =========================
   Events
========================= */

func (s *PostgresStore) GetEvent(ctx context.Context, id uuid.UUID) (*model.EventModel, error) {
	var ev model.EventModel
	if err := s.db.WithContext(ctx).Where("event_id = ?", id).Take(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (s *PostgresStore) countSubquery() *gorm.DB {
	return s.db.Model(&model.RegistrationModel{}).
		Select("COUNT(*)").
		Where("registration_event_id = events.event_id")
}

func (s *PostgresStore) GetEventWithCount(ctx context.Context, id uuid.UUID) (*dto.EventWithCount, error) {
	var row dto.EventWithCount
	err := s.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Select("events.*, (?) AS registration_count", s.countSubquery()).
		Where("events.event_id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *PostgresStore) ListEvents(ctx context.Context, f dto.EventFilter) ([]dto.EventWithCount, error) {
	q := s.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Select("events.*, (?) AS registration_count", s.countSubquery())

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + search + "%"
		q = q.Where(
			"event_title ILIKE ? OR event_description ILIKE ? OR event_location ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if f.Date != nil {
		q = q.Where("event_date = ?", f.Date.Format("2006-01-02"))
	}
	if f.CollegeID != nil {
		q = q.Where("event_college_id = ?", *f.CollegeID)
	}
	if f.Status != "" {
		q = q.Where("event_status = ?", f.Status)
	}

	var rows []dto.EventWithCount
	if err := q.Order("event_date ASC, event_created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostgresStore) CreateEvent(ctx context.Context, m *model.EventModel) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *PostgresStore) UpdateEvent(ctx context.Context, m *model.EventModel) error {
	res := s.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Where("event_id = ?", m.EventID).
		Updates(map[string]any{
			"event_title":        m.EventTitle,
			"event_description":  m.EventDescription,
			"event_date":         m.EventDate,
			"event_time":         m.EventTime,
			"event_location":     m.EventLocation,
			"event_organizer":    m.EventOrganizer,
			"event_max_capacity": m.EventMaxCapacity,
			"event_status":       m.EventStatus,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteEvent relies on ON DELETE CASCADE for registrations, attendance and
// feedback rows.
func (s *PostgresStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("event_id = ?", id).Delete(&model.EventModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

/* =========================
   Registrations
========================= */

func (s *PostgresStore) FindRegistration(ctx context.Context, eventID, studentID uuid.UUID) (*model.RegistrationModel, error) {
	var reg model.RegistrationModel
	err := s.db.WithContext(ctx).
		Where("registration_event_id = ? AND registration_student_id = ?", eventID, studentID).
		Take(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (s *PostgresStore) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.RegistrationModel{}).
		Where("registration_event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// RegisterLocked: SELECT ... FOR UPDATE on the event row serializes
// concurrent registrations for the same event, so check-then-insert cannot
// overshoot the capacity.
func (s *PostgresStore) RegisterLocked(ctx context.Context, eventID, studentID uuid.UUID) (*model.RegistrationModel, error) {
	var created *model.RegistrationModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev model.EventModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", eventID).
			Take(&ev).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&model.RegistrationModel{}).
			Where("registration_event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(ev.EventMaxCapacity) {
			return ErrCapacityFull
		}

		reg := &model.RegistrationModel{
			RegistrationEventID:   eventID,
			RegistrationStudentID: studentID,
		}
		if err := tx.Create(reg).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicate
			}
			return err
		}
		created = reg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *PostgresStore) DeleteRegistration(ctx context.Context, eventID, studentID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("registration_event_id = ? AND registration_student_id = ?", eventID, studentID).
		Delete(&model.RegistrationModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListRegistrationsByStudent(ctx context.Context, studentID uuid.UUID) ([]model.RegistrationModel, error) {
	var regs []model.RegistrationModel
	err := s.db.WithContext(ctx).
		Preload("Event").
		Where("registration_student_id = ?", studentID).
		Order("registration_registered_at DESC").
		Find(&regs).Error
	if err != nil {
		return nil, err
	}
	return regs, nil
}

/* =========================
   Attendance
========================= */

func (s *PostgresStore) FindAttendance(ctx context.Context, eventID, studentID uuid.UUID) (*model.AttendanceModel, error) {
	var att model.AttendanceModel
	err := s.db.WithContext(ctx).
		Where("attendance_event_id = ? AND attendance_student_id = ?", eventID, studentID).
		Take(&att).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &att, nil
}

func (s *PostgresStore) CreateAttendance(ctx context.Context, m *model.AttendanceModel) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

/* =========================
   Feedback
========================= */

func (s *PostgresStore) FindFeedback(ctx context.Context, eventID, studentID uuid.UUID) (*model.FeedbackModel, error) {
	var fb model.FeedbackModel
	err := s.db.WithContext(ctx).
		Where("feedback_event_id = ? AND feedback_student_id = ?", eventID, studentID).
		Take(&fb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &fb, nil
}

func (s *PostgresStore) CreateFeedback(ctx context.Context, m *model.FeedbackModel) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

/* =========================
   Denormalized admin views
========================= */

func (s *PostgresStore) RegistrationsForEvent(ctx context.Context, eventID uuid.UUID) ([]dto.RegistrationWithStudent, error) {
	var rows []dto.RegistrationWithStudent
	err := s.db.WithContext(ctx).
		Table("event_registrations").
		Select("event_registrations.*, users.user_name, users.user_full_name, users.user_email").
		Joins("JOIN users ON users.user_id = event_registrations.registration_student_id").
		Where("event_registrations.registration_event_id = ?", eventID).
		Order("event_registrations.registration_registered_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostgresStore) AttendanceForEvent(ctx context.Context, eventID uuid.UUID) ([]dto.AttendanceWithStudent, error) {
	var rows []dto.AttendanceWithStudent
	err := s.db.WithContext(ctx).
		Table("event_attendance").
		Select("event_attendance.*, users.user_name, users.user_full_name, users.user_email").
		Joins("JOIN users ON users.user_id = event_attendance.attendance_student_id").
		Where("event_attendance.attendance_event_id = ?", eventID).
		Order("event_attendance.attendance_checked_in_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

/* =========================
   Rollups
========================= */

func (s *PostgresStore) PopularityReport(ctx context.Context, limit int) ([]dto.EventPopularityRow, error) {
	var rows []dto.EventPopularityRow
	err := s.db.WithContext(ctx).
		Table("events").
		Select("events.event_id, events.event_title, COUNT(r.registration_id) AS registration_count").
		Joins("LEFT JOIN event_registrations r ON r.registration_event_id = events.event_id").
		Group("events.event_id, events.event_title").
		Order("registration_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostgresStore) TopParticipants(ctx context.Context, limit int) ([]dto.ParticipantRow, error) {
	var rows []dto.ParticipantRow
	err := s.db.WithContext(ctx).
		Table("users").
		Select("users.user_id, users.user_name, users.user_full_name, COUNT(a.attendance_id) AS attendance_count").
		Joins("LEFT JOIN event_attendance a ON a.attendance_student_id = users.user_id").
		Where("users.user_role = ?", "student").
		Group("users.user_id, users.user_name, users.user_full_name").
		Order("attendance_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *PostgresStore) FeedbackReport(ctx context.Context, limit int) ([]dto.EventFeedbackRow, error) {
	var rows []dto.EventFeedbackRow
	err := s.db.WithContext(ctx).
		Table("events").
		Select("events.event_id, events.event_title, COALESCE(AVG(f.feedback_rating), 0) AS average_rating, COUNT(f.feedback_id) AS feedback_count").
		Joins("LEFT JOIN event_feedback f ON f.feedback_event_id = events.event_id").
		Group("events.event_id, events.event_title").
		Order("average_rating DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
