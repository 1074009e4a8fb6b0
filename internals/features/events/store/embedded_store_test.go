package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	collegeModel "campusevents_backend/internals/features/campus/colleges/model"
	"campusevents_backend/internals/features/events/dto"
	"campusevents_backend/internals/features/events/model"
	userModel "campusevents_backend/internals/features/users/user/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	// one connection, so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&collegeModel.CollegeModel{},
		&userModel.UserModel{},
		&model.EventModel{},
		&model.RegistrationModel{},
		&model.AttendanceModel{},
		&model.FeedbackModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type fixture struct {
	db      *gorm.DB
	store   *EmbeddedStore
	college collegeModel.CollegeModel
	admin   userModel.UserModel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	f := &fixture{db: db, store: NewEmbeddedStore(db)}

	f.college = collegeModel.CollegeModel{CollegeName: "REVA University", CollegeLocation: "Bengaluru"}
	if err := db.Create(&f.college).Error; err != nil {
		t.Fatalf("seed college: %v", err)
	}
	f.admin = f.newUser(t, "admin_reva", "admin@reva.edu.in", "admin")
	return f
}

func (f *fixture) newUser(t *testing.T, name, email, role string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserName:         name,
		UserEmail:        email,
		UserPasswordHash: "x",
		UserFullName:     name,
		UserRole:         role,
		UserCollegeID:    f.college.CollegeID,
	}
	if err := f.db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return u
}

func (f *fixture) newStudent(t *testing.T, name string) userModel.UserModel {
	return f.newUser(t, name, name+"@reva.edu.in", "student")
}

func (f *fixture) newEvent(t *testing.T, title string, capacity int) model.EventModel {
	t.Helper()
	ev := model.EventModel{
		EventTitle:       title,
		EventDescription: "annual tech fest",
		EventDate:        datatypes.Date(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)),
		EventTime:        "10:00",
		EventLocation:    "Main Auditorium",
		EventOrganizer:   "Tech Club",
		EventMaxCapacity: capacity,
		EventStatus:      model.EventStatusUpcoming,
		EventCollegeID:   f.college.CollegeID,
		EventCreatedBy:   f.admin.UserID,
	}
	if err := f.store.CreateEvent(context.Background(), &ev); err != nil {
		t.Fatalf("create event %s: %v", title, err)
	}
	return ev
}

func TestEmbeddedStoreEventCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := f.newEvent(t, "Hackathon 2026", 100)

	got, err := f.store.GetEvent(ctx, ev.EventID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.EventTitle != "Hackathon 2026" {
		t.Errorf("title = %q, want Hackathon 2026", got.EventTitle)
	}

	got.EventTitle = "Hackathon 2026 (rescheduled)"
	got.EventStatus = model.EventStatusActive
	if err := f.store.UpdateEvent(ctx, got); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	again, err := f.store.GetEvent(ctx, ev.EventID)
	if err != nil {
		t.Fatalf("GetEvent after update: %v", err)
	}
	if again.EventTitle != "Hackathon 2026 (rescheduled)" || again.EventStatus != model.EventStatusActive {
		t.Errorf("update not applied: %q / %q", again.EventTitle, again.EventStatus)
	}

	if err := f.store.DeleteEvent(ctx, ev.EventID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := f.store.GetEvent(ctx, ev.EventID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEvent after delete = %v, want ErrNotFound", err)
	}
}

func TestEmbeddedStoreGetEventNotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.store.GetEvent(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := f.store.GetEventWithCount(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("with-count err = %v, want ErrNotFound", err)
	}
	if err := f.store.UpdateEvent(context.Background(), &model.EventModel{EventID: uuid.New(), EventMaxCapacity: 1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update err = %v, want ErrNotFound", err)
	}
	if err := f.store.DeleteEvent(context.Background(), uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete err = %v, want ErrNotFound", err)
	}
}

func TestEmbeddedStoreListEventsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hack := f.newEvent(t, "Hackathon 2026", 100)
	f.newEvent(t, "Cultural Night", 50)

	cancelled := f.newEvent(t, "Cancelled Workshop", 30)
	cancelled.EventStatus = model.EventStatusCancelled
	if err := f.store.UpdateEvent(ctx, &cancelled); err != nil {
		t.Fatalf("cancel event: %v", err)
	}

	all, err := f.store.ListEvents(ctx, dto.EventFilter{})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len(all) = %d, want 3", len(all))
	}

	bySearch, err := f.store.ListEvents(ctx, dto.EventFilter{Search: "hackathon"})
	if err != nil {
		t.Fatalf("ListEvents search: %v", err)
	}
	if len(bySearch) != 1 || bySearch[0].EventID != hack.EventID {
		t.Errorf("search matched %d events, want the hackathon only", len(bySearch))
	}

	byStatus, err := f.store.ListEvents(ctx, dto.EventFilter{Status: model.EventStatusCancelled})
	if err != nil {
		t.Fatalf("ListEvents status: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].EventID != cancelled.EventID {
		t.Errorf("status filter matched %d events, want the cancelled one", len(byStatus))
	}

	byCollege, err := f.store.ListEvents(ctx, dto.EventFilter{CollegeID: &f.college.CollegeID})
	if err != nil {
		t.Fatalf("ListEvents college: %v", err)
	}
	if len(byCollege) != 3 {
		t.Errorf("college filter matched %d events, want 3", len(byCollege))
	}

	otherCollege := uuid.New()
	none, err := f.store.ListEvents(ctx, dto.EventFilter{CollegeID: &otherCollege})
	if err != nil {
		t.Fatalf("ListEvents other college: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown college matched %d events, want 0", len(none))
	}
}

func TestEmbeddedStoreRegistrationCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := f.newEvent(t, "Robotics Demo", 10)
	s1 := f.newStudent(t, "asha")
	s2 := f.newStudent(t, "rahul")

	for _, s := range []userModel.UserModel{s1, s2} {
		if _, err := f.store.RegisterLocked(ctx, ev.EventID, s.UserID); err != nil {
			t.Fatalf("register %s: %v", s.UserName, err)
		}
	}

	row, err := f.store.GetEventWithCount(ctx, ev.EventID)
	if err != nil {
		t.Fatalf("GetEventWithCount: %v", err)
	}
	if row.RegistrationCount != 2 {
		t.Errorf("registration_count = %d, want 2", row.RegistrationCount)
	}

	n, err := f.store.CountRegistrations(ctx, ev.EventID)
	if err != nil {
		t.Fatalf("CountRegistrations: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestEmbeddedStoreRegisterLockedCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := f.newEvent(t, "Small Workshop", 2)
	s1 := f.newStudent(t, "asha")
	s2 := f.newStudent(t, "rahul")
	s3 := f.newStudent(t, "meera")

	if _, err := f.store.RegisterLocked(ctx, ev.EventID, s1.UserID); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := f.store.RegisterLocked(ctx, ev.EventID, s2.UserID); err != nil {
		t.Fatalf("second register: %v", err)
	}
	if _, err := f.store.RegisterLocked(ctx, ev.EventID, s3.UserID); !errors.Is(err, ErrCapacityFull) {
		t.Errorf("third register err = %v, want ErrCapacityFull", err)
	}

	n, _ := f.store.CountRegistrations(ctx, ev.EventID)
	if n != 2 {
		t.Errorf("count after full = %d, capacity gate leaked", n)
	}
}

func TestEmbeddedStoreRegisterLockedDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := f.newEvent(t, "Seminar", 10)
	s := f.newStudent(t, "asha")

	if _, err := f.store.RegisterLocked(ctx, ev.EventID, s.UserID); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := f.store.RegisterLocked(ctx, ev.EventID, s.UserID); !errors.Is(err, ErrDuplicate) {
		t.Errorf("re-register err = %v, want ErrDuplicate", err)
	}
	if _, err := f.store.RegisterLocked(ctx, uuid.New(), s.UserID); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown event err = %v, want ErrNotFound", err)
	}
}

func TestEmbeddedStoreAttendanceAndFeedbackUniqueness(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := f.newEvent(t, "Seminar", 10)
	s := f.newStudent(t, "asha")

	att := &model.AttendanceModel{
		AttendanceEventID:       ev.EventID,
		AttendanceStudentID:     s.UserID,
		AttendanceCheckinMethod: model.CheckinMethodQR,
	}
	if err := f.store.CreateAttendance(ctx, att); err != nil {
		t.Fatalf("CreateAttendance: %v", err)
	}
	dup := &model.AttendanceModel{
		AttendanceEventID:       ev.EventID,
		AttendanceStudentID:     s.UserID,
		AttendanceCheckinMethod: model.CheckinMethodManual,
	}
	if err := f.store.CreateAttendance(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("dup attendance err = %v, want ErrDuplicate", err)
	}

	comment := "great event"
	fb := &model.FeedbackModel{
		FeedbackEventID:   ev.EventID,
		FeedbackStudentID: s.UserID,
		FeedbackRating:    5,
		FeedbackComment:   &comment,
	}
	if err := f.store.CreateFeedback(ctx, fb); err != nil {
		t.Fatalf("CreateFeedback: %v", err)
	}
	dupFb := &model.FeedbackModel{
		FeedbackEventID:   ev.EventID,
		FeedbackStudentID: s.UserID,
		FeedbackRating:    3,
	}
	if err := f.store.CreateFeedback(ctx, dupFb); !errors.Is(err, ErrDuplicate) {
		t.Errorf("dup feedback err = %v, want ErrDuplicate", err)
	}
}

func TestEmbeddedStoreDeleteEventCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := f.newEvent(t, "Seminar", 10)
	s := f.newStudent(t, "asha")

	if _, err := f.store.RegisterLocked(ctx, ev.EventID, s.UserID); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := f.store.CreateAttendance(ctx, &model.AttendanceModel{
		AttendanceEventID:       ev.EventID,
		AttendanceStudentID:     s.UserID,
		AttendanceCheckinMethod: model.CheckinMethodSelf,
	}); err != nil {
		t.Fatalf("attendance: %v", err)
	}
	if err := f.store.CreateFeedback(ctx, &model.FeedbackModel{
		FeedbackEventID:   ev.EventID,
		FeedbackStudentID: s.UserID,
		FeedbackRating:    4,
	}); err != nil {
		t.Fatalf("feedback: %v", err)
	}

	if err := f.store.DeleteEvent(ctx, ev.EventID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}

	if _, err := f.store.FindRegistration(ctx, ev.EventID, s.UserID); !errors.Is(err, ErrNotFound) {
		t.Errorf("registration survived delete: %v", err)
	}
	if _, err := f.store.FindAttendance(ctx, ev.EventID, s.UserID); !errors.Is(err, ErrNotFound) {
		t.Errorf("attendance survived delete: %v", err)
	}
	if _, err := f.store.FindFeedback(ctx, ev.EventID, s.UserID); !errors.Is(err, ErrNotFound) {
		t.Errorf("feedback survived delete: %v", err)
	}
}

func TestEmbeddedStoreAdminViews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev := f.newEvent(t, "Seminar", 10)
	s := f.newStudent(t, "asha")

	if _, err := f.store.RegisterLocked(ctx, ev.EventID, s.UserID); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := f.store.CreateAttendance(ctx, &model.AttendanceModel{
		AttendanceEventID:       ev.EventID,
		AttendanceStudentID:     s.UserID,
		AttendanceCheckinMethod: model.CheckinMethodManual,
	}); err != nil {
		t.Fatalf("attendance: %v", err)
	}

	regs, err := f.store.RegistrationsForEvent(ctx, ev.EventID)
	if err != nil {
		t.Fatalf("RegistrationsForEvent: %v", err)
	}
	if len(regs) != 1 || regs[0].UserName != "asha" {
		t.Errorf("registrants = %+v, want asha", regs)
	}

	atts, err := f.store.AttendanceForEvent(ctx, ev.EventID)
	if err != nil {
		t.Fatalf("AttendanceForEvent: %v", err)
	}
	if len(atts) != 1 || atts[0].AttendanceCheckinMethod != model.CheckinMethodManual {
		t.Errorf("attendance view = %+v", atts)
	}
}

func TestEmbeddedStoreRollups(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	popular := f.newEvent(t, "Hackathon 2026", 100)
	quiet := f.newEvent(t, "Cultural Night", 100)

	s1 := f.newStudent(t, "asha")
	s2 := f.newStudent(t, "rahul")

	for _, s := range []userModel.UserModel{s1, s2} {
		if _, err := f.store.RegisterLocked(ctx, popular.EventID, s.UserID); err != nil {
			t.Fatalf("register: %v", err)
		}
		if err := f.store.CreateAttendance(ctx, &model.AttendanceModel{
			AttendanceEventID:       popular.EventID,
			AttendanceStudentID:     s.UserID,
			AttendanceCheckinMethod: model.CheckinMethodQR,
		}); err != nil {
			t.Fatalf("attendance: %v", err)
		}
	}
	if err := f.store.CreateFeedback(ctx, &model.FeedbackModel{
		FeedbackEventID: popular.EventID, FeedbackStudentID: s1.UserID, FeedbackRating: 5,
	}); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if err := f.store.CreateFeedback(ctx, &model.FeedbackModel{
		FeedbackEventID: popular.EventID, FeedbackStudentID: s2.UserID, FeedbackRating: 4,
	}); err != nil {
		t.Fatalf("feedback: %v", err)
	}

	pop, err := f.store.PopularityReport(ctx, 10)
	if err != nil {
		t.Fatalf("PopularityReport: %v", err)
	}
	if len(pop) != 2 {
		t.Fatalf("popularity rows = %d, want 2 (zero-registration event included)", len(pop))
	}
	if pop[0].EventID != popular.EventID || pop[0].RegistrationCount != 2 {
		t.Errorf("top event = %+v, want hackathon with 2", pop[0])
	}
	if pop[1].EventID != quiet.EventID || pop[1].RegistrationCount != 0 {
		t.Errorf("quiet event = %+v, want 0 registrations", pop[1])
	}

	top, err := f.store.TopParticipants(ctx, 10)
	if err != nil {
		t.Fatalf("TopParticipants: %v", err)
	}
	// two students, admin excluded by role filter
	if len(top) != 2 {
		t.Fatalf("participant rows = %d, want 2", len(top))
	}
	for _, row := range top {
		if row.AttendanceCount != 1 {
			t.Errorf("participant %s count = %d, want 1", row.UserName, row.AttendanceCount)
		}
	}

	fb, err := f.store.FeedbackReport(ctx, 10)
	if err != nil {
		t.Fatalf("FeedbackReport: %v", err)
	}
	if len(fb) != 2 {
		t.Fatalf("feedback rows = %d, want 2", len(fb))
	}
	if fb[0].EventID != popular.EventID || fb[0].AverageRating != 4.5 || fb[0].FeedbackCount != 2 {
		t.Errorf("feedback top row = %+v, want avg 4.5 count 2", fb[0])
	}
	if fb[1].AverageRating != 0 || fb[1].FeedbackCount != 0 {
		t.Errorf("no-feedback row = %+v, want avg 0 count 0", fb[1])
	}
}

func TestEmbeddedStoreListRegistrationsByStudent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev1 := f.newEvent(t, "Hackathon 2026", 10)
	ev2 := f.newEvent(t, "Cultural Night", 10)
	s := f.newStudent(t, "asha")

	for _, ev := range []model.EventModel{ev1, ev2} {
		if _, err := f.store.RegisterLocked(ctx, ev.EventID, s.UserID); err != nil {
			t.Fatalf("register: %v", err)
		}
	}

	regs, err := f.store.ListRegistrationsByStudent(ctx, s.UserID)
	if err != nil {
		t.Fatalf("ListRegistrationsByStudent: %v", err)
	}
	if len(regs) != 2 {
		t.Fatalf("len = %d, want 2", len(regs))
	}
	for _, r := range regs {
		if r.Event == nil {
			t.Errorf("registration %s missing preloaded event", r.RegistrationID)
		}
	}
}
