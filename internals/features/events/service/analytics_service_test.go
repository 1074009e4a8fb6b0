package service

import (
	"context"
	"testing"

	"campusevents_backend/internals/features/events/model"
	userModel "campusevents_backend/internals/features/users/user/model"
)

func TestNormalizeLimit(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 10},
		{-5, 10},
		{1, 1},
		{100, 100},
		{250, 100},
	}
	for _, c := range cases {
		if got := normalizeLimit(c.in); got != c.want {
			t.Errorf("normalizeLimit(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestAnalyticsReports(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewAnalyticsService(f.store)
	ctx := context.Background()

	big := f.newEvent(t, "Hackathon 2026", 100)
	small := f.newEvent(t, "Cultural Night", 100)

	s1 := f.newStudent(t, "asha")
	s2 := f.newStudent(t, "rahul")
	s3 := f.newStudent(t, "meera")

	lc := f.lifecycle
	for _, s := range []userModel.UserModel{s1, s2, s3} {
		if _, err := lc.Register(ctx, big.EventID, s.UserID); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	if _, err := lc.Register(ctx, small.EventID, s1.UserID); err != nil {
		t.Fatalf("register: %v", err)
	}

	// asha attends both, rahul attends the big one
	for _, ev := range []model.EventModel{big, small} {
		if _, err := lc.CheckIn(ctx, ev.EventID, s1.UserID, model.CheckinMethodQR); err != nil {
			t.Fatalf("checkin: %v", err)
		}
	}
	if _, err := lc.CheckIn(ctx, big.EventID, s2.UserID, model.CheckinMethodManual); err != nil {
		t.Fatalf("checkin: %v", err)
	}

	if _, err := lc.SubmitFeedback(ctx, big.EventID, s1.UserID, 5, nil); err != nil {
		t.Fatalf("feedback: %v", err)
	}
	if _, err := lc.SubmitFeedback(ctx, big.EventID, s2.UserID, 2, nil); err != nil {
		t.Fatalf("feedback: %v", err)
	}

	pop, err := svc.PopularityReport(ctx, 0)
	if err != nil {
		t.Fatalf("PopularityReport: %v", err)
	}
	if len(pop) != 2 || pop[0].EventID != big.EventID || pop[0].RegistrationCount != 3 {
		t.Errorf("popularity = %+v", pop)
	}

	top, err := svc.TopParticipants(ctx, 0)
	if err != nil {
		t.Fatalf("TopParticipants: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("participants = %d rows, want 3", len(top))
	}
	if top[0].UserName != "asha" || top[0].AttendanceCount != 2 {
		t.Errorf("top participant = %+v, want asha with 2", top[0])
	}

	fb, err := svc.FeedbackReport(ctx, 0)
	if err != nil {
		t.Fatalf("FeedbackReport: %v", err)
	}
	if len(fb) != 2 {
		t.Fatalf("feedback rows = %d, want 2", len(fb))
	}
	if fb[0].EventID != big.EventID || fb[0].AverageRating != 3.5 || fb[0].FeedbackCount != 2 {
		t.Errorf("feedback top = %+v, want avg 3.5 count 2", fb[0])
	}
}

func TestReportLimitApplied(t *testing.T) {
	f := newLifecycleFixture(t)
	svc := NewAnalyticsService(f.store)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		f.newEvent(t, title, 10)
	}

	pop, err := svc.PopularityReport(ctx, 2)
	if err != nil {
		t.Fatalf("PopularityReport: %v", err)
	}
	if len(pop) != 2 {
		t.Errorf("rows = %d, want limit 2 applied", len(pop))
	}
}
