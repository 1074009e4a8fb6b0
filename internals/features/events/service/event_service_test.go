package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"campusevents_backend/internals/features/events/dto"
	"campusevents_backend/internals/features/events/model"
	helper "campusevents_backend/internals/helpers"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestEventServiceCreate(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewEventService(f.store)

	ev, err := svc.CreateEvent(context.Background(), &dto.EventRequest{
		EventTitle:       "Hackathon 2026",
		EventDate:        "2026-09-15",
		EventMaxCapacity: 100,
	}, f.college.CollegeID, f.admin.UserID)
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if ev.EventID == uuid.Nil {
		t.Error("event id not assigned")
	}
	if ev.EventStatus != model.EventStatusUpcoming {
		t.Errorf("status = %q, want default upcoming", ev.EventStatus)
	}
	if time.Time(ev.EventDate).Format("2006-01-02") != "2026-09-15" {
		t.Errorf("date = %v", ev.EventDate)
	}
}

func TestEventServiceCreateRejectsBadInput(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewEventService(f.store)
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, &dto.EventRequest{
		EventTitle:       "Bad",
		EventDate:        "2026-09-15",
		EventMaxCapacity: 0,
	}, f.college.CollegeID, f.admin.UserID)
	if !helper.IsKind(err, helper.KindInvalidInput) {
		t.Errorf("zero capacity err = %v, want InvalidInput", err)
	}

	_, err = svc.CreateEvent(ctx, &dto.EventRequest{
		EventTitle:       "Bad",
		EventDate:        "2026-09-15",
		EventMaxCapacity: 10,
		EventStatus:      "archived",
	}, f.college.CollegeID, f.admin.UserID)
	if !helper.IsKind(err, helper.KindInvalidInput) {
		t.Errorf("bad status err = %v, want InvalidInput", err)
	}
}

func TestEventServicePartialUpdate(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewEventService(f.store)
	ctx := context.Background()

	ev := f.newEvent(t, "Hackathon 2026", 100)

	updated, err := svc.UpdateEvent(ctx, ev.EventID, &dto.EventUpdateRequest{
		EventStatus:      strPtr(model.EventStatusActive),
		EventMaxCapacity: intPtr(150),
	})
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if updated.EventStatus != model.EventStatusActive || updated.EventMaxCapacity != 150 {
		t.Errorf("updated = %+v", updated)
	}
	// untouched fields keep their values
	if updated.EventTitle != "Hackathon 2026" {
		t.Errorf("title changed to %q on partial update", updated.EventTitle)
	}
}

func TestEventServiceUpdateValidation(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewEventService(f.store)
	ctx := context.Background()

	ev := f.newEvent(t, "Hackathon 2026", 100)

	if _, err := svc.UpdateEvent(ctx, ev.EventID, &dto.EventUpdateRequest{
		EventMaxCapacity: intPtr(0),
	}); !helper.IsKind(err, helper.KindInvalidInput) {
		t.Errorf("zero capacity err = %v, want InvalidInput", err)
	}

	if _, err := svc.UpdateEvent(ctx, uuid.New(), &dto.EventUpdateRequest{
		EventStatus: strPtr(model.EventStatusActive),
	}); !helper.IsKind(err, helper.KindNotFound) {
		t.Errorf("unknown event err = %v, want NotFound", err)
	}
}

func TestEventServiceGetAndDelete(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewEventService(f.store)
	ctx := context.Background()

	ev := f.newEvent(t, "Hackathon 2026", 100)

	row, err := svc.GetEvent(ctx, ev.EventID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if row.RegistrationCount != 0 {
		t.Errorf("count = %d, want 0", row.RegistrationCount)
	}

	if err := svc.DeleteEvent(ctx, ev.EventID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if _, err := svc.GetEvent(ctx, ev.EventID); !helper.IsKind(err, helper.KindNotFound) {
		t.Errorf("get after delete err = %v, want NotFound", err)
	}
	if err := svc.DeleteEvent(ctx, ev.EventID); !helper.IsKind(err, helper.KindNotFound) {
		t.Errorf("second delete err = %v, want NotFound", err)
	}
}

func TestEventServiceAdminViewsRequireEvent(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewEventService(f.store)
	ctx := context.Background()

	if _, err := svc.RegistrationsForEvent(ctx, uuid.New()); !helper.IsKind(err, helper.KindNotFound) {
		t.Errorf("registrants err = %v, want NotFound", err)
	}
	if _, err := svc.AttendanceForEvent(ctx, uuid.New()); !helper.IsKind(err, helper.KindNotFound) {
		t.Errorf("attendance err = %v, want NotFound", err)
	}
}
