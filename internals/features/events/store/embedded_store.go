package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"campusevents_backend/internals/features/events/dto"
	"campusevents_backend/internals/features/events/model"
)

// EmbeddedStore targets the single-file SQLite variant: enums live as plain
// strings, joins are written out by hand and the event cascade is performed
// explicitly inside one transaction. SQLite serializes writers, which is
// what makes the capacity gate atomic here.
type EmbeddedStore struct {
	db *gorm.DB
}

func NewEmbeddedStore(db *gorm.DB) *EmbeddedStore {
	return &EmbeddedStore{db: db}
}

// SQLite reports uniqueness violations as "UNIQUE constraint failed: ..."
func isSQLiteDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

/* =========================
   Events
========================= */

func (s *EmbeddedStore) GetEvent(ctx context.Context, id uuid.UUID) (*model.EventModel, error) {
	var ev model.EventModel
	if err := s.db.WithContext(ctx).Where("event_id = ?", id).Take(&ev).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (s *EmbeddedStore) GetEventWithCount(ctx context.Context, id uuid.UUID) (*dto.EventWithCount, error) {
	var row dto.EventWithCount
	err := s.db.WithContext(ctx).Raw(`
		SELECT events.*,
		       (SELECT COUNT(*) FROM event_registrations r
		         WHERE r.registration_event_id = events.event_id) AS registration_count
		  FROM events
		 WHERE events.event_id = ?`, id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.EventID == uuid.Nil {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (s *EmbeddedStore) ListEvents(ctx context.Context, f dto.EventFilter) ([]dto.EventWithCount, error) {
	sql := `
		SELECT events.*,
		       (SELECT COUNT(*) FROM event_registrations r
		         WHERE r.registration_event_id = events.event_id) AS registration_count
		  FROM events`
	var conds []string
	var args []any

	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := "%" + search + "%"
		conds = append(conds, "(event_title LIKE ? OR event_description LIKE ? OR event_location LIKE ?)")
		args = append(args, pattern, pattern, pattern)
	}
	if f.Date != nil {
		conds = append(conds, "DATE(event_date) = ?")
		args = append(args, f.Date.Format("2006-01-02"))
	}
	if f.CollegeID != nil {
		conds = append(conds, "event_college_id = ?")
		args = append(args, *f.CollegeID)
	}
	if f.Status != "" {
		conds = append(conds, "event_status = ?")
		args = append(args, f.Status)
	}
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY event_date ASC, event_created_at ASC"

	var rows []dto.EventWithCount
	if err := s.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EmbeddedStore) CreateEvent(ctx context.Context, m *model.EventModel) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *EmbeddedStore) UpdateEvent(ctx context.Context, m *model.EventModel) error {
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

// DeleteEvent: SQLite builds ship with foreign_keys off unless the pragma is
// set, so the cascade is written out explicitly inside one transaction.
func (s *EmbeddedStore) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feedback_event_id = ?", id).Delete(&model.FeedbackModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attendance_event_id = ?", id).Delete(&model.AttendanceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("registration_event_id = ?", id).Delete(&model.RegistrationModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("event_id = ?", id).Delete(&model.EventModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

/* =========================
   Registrations
========================= */

func (s *EmbeddedStore) FindRegistration(ctx context.Context, eventID, studentID uuid.UUID) (*model.RegistrationModel, error) {
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

func (s *EmbeddedStore) CountRegistrations(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.RegistrationModel{}).
		Where("registration_event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// RegisterLocked: the whole check-then-insert runs in one write transaction;
// SQLite allows a single writer at a time, which serializes the gate.
func (s *EmbeddedStore) RegisterLocked(ctx context.Context, eventID, studentID uuid.UUID) (*model.RegistrationModel, error) {
	var created *model.RegistrationModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev model.EventModel
		if err := tx.Where("event_id = ?", eventID).Take(&ev).Error; err != nil {
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
			if isSQLiteDuplicate(err) {
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

func (s *EmbeddedStore) DeleteRegistration(ctx context.Context, eventID, studentID uuid.UUID) error {
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

func (s *EmbeddedStore) ListRegistrationsByStudent(ctx context.Context, studentID uuid.UUID) ([]model.RegistrationModel, error) {
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

func (s *EmbeddedStore) FindAttendance(ctx context.Context, eventID, studentID uuid.UUID) (*model.AttendanceModel, error) {
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

func (s *EmbeddedStore) CreateAttendance(ctx context.Context, m *model.AttendanceModel) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if isSQLiteDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

/* =========================
   Feedback
========================= */

func (s *EmbeddedStore) FindFeedback(ctx context.Context, eventID, studentID uuid.UUID) (*model.FeedbackModel, error) {
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

func (s *EmbeddedStore) CreateFeedback(ctx context.Context, m *model.FeedbackModel) error {
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		if isSQLiteDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

/* =========================
   Denormalized admin views (hand-written joins)
========================= */

func (s *EmbeddedStore) RegistrationsForEvent(ctx context.Context, eventID uuid.UUID) ([]dto.RegistrationWithStudent, error) {
	var rows []dto.RegistrationWithStudent
	err := s.db.WithContext(ctx).Raw(`
		SELECT r.registration_id, r.registration_event_id, r.registration_student_id,
		       r.registration_registered_at,
		       u.user_name, u.user_full_name, u.user_email
		  FROM event_registrations r
		  JOIN users u ON u.user_id = r.registration_student_id
		 WHERE r.registration_event_id = ?
		 ORDER BY r.registration_registered_at ASC`, eventID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EmbeddedStore) AttendanceForEvent(ctx context.Context, eventID uuid.UUID) ([]dto.AttendanceWithStudent, error) {
	var rows []dto.AttendanceWithStudent
	err := s.db.WithContext(ctx).Raw(`
		SELECT a.attendance_id, a.attendance_event_id, a.attendance_student_id,
		       a.attendance_checkin_method, a.attendance_checked_in_at,
		       u.user_name, u.user_full_name, u.user_email
		  FROM event_attendance a
		  JOIN users u ON u.user_id = a.attendance_student_id
		 WHERE a.attendance_event_id = ?
		 ORDER BY a.attendance_checked_in_at ASC`, eventID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

/* =========================
   Rollups
========================= */

func (s *EmbeddedStore) PopularityReport(ctx context.Context, limit int) ([]dto.EventPopularityRow, error) {
	var rows []dto.EventPopularityRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT events.event_id, events.event_title,
		       COUNT(r.registration_id) AS registration_count
		  FROM events
		  LEFT JOIN event_registrations r ON r.registration_event_id = events.event_id
		 GROUP BY events.event_id, events.event_title
		 ORDER BY registration_count DESC
		 LIMIT ?`, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EmbeddedStore) TopParticipants(ctx context.Context, limit int) ([]dto.ParticipantRow, error) {
	var rows []dto.ParticipantRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT u.user_id, u.user_name, u.user_full_name,
		       COUNT(a.attendance_id) AS attendance_count
		  FROM users u
		  LEFT JOIN event_attendance a ON a.attendance_student_id = u.user_id
		 WHERE u.user_role = 'student'
		 GROUP BY u.user_id, u.user_name, u.user_full_name
		 ORDER BY attendance_count DESC
		 LIMIT ?`, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *EmbeddedStore) FeedbackReport(ctx context.Context, limit int) ([]dto.EventFeedbackRow, error) {
	var rows []dto.EventFeedbackRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT events.event_id, events.event_title,
		       COALESCE(AVG(f.feedback_rating), 0) AS average_rating,
		       COUNT(f.feedback_id) AS feedback_count
		  FROM events
		  LEFT JOIN event_feedback f ON f.feedback_event_id = events.event_id
		 GROUP BY events.event_id, events.event_title
		 ORDER BY average_rating DESC
		 LIMIT ?`, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
