package attendance

import (
	"context"
	"testing"
	"time"

	"collegems/internal/apperr"
	"collegems/internal/model"
)

func rec(day int, subject string, entries ...model.AttendanceEntry) model.AttendanceRecord {
	return model.AttendanceRecord{
		Date:       time.Date(2024, 8, day, 0, 0, 0, 0, IST),
		Branch:     "CSE",
		Semester:   3,
		Subject:    subject,
		Attendance: entries,
	}
}

func TestExtractStudentRecords(t *testing.T) {
	records := []model.AttendanceRecord{
		rec(5, "DBMS", model.AttendanceEntry{EnrollmentNo: 101, IsPresent: true}),
		rec(6, "OS", model.AttendanceEntry{EnrollmentNo: 101, IsPresent: false}),
		rec(7, "DBMS", model.AttendanceEntry{EnrollmentNo: 102, IsPresent: true}),
	}

	views := ExtractStudentRecords(records, 101)
	if len(views) != 3 {
		t.Fatalf("got %d views, want 3", len(views))
	}
	if !views[0].IsPresent {
		t.Error("present entry reported as absent")
	}
	if views[1].IsPresent {
		t.Error("absent entry reported as present")
	}
	// No entry for the student counts as absent.
	if views[2].IsPresent {
		t.Error("missing entry reported as present")
	}
	if views[2].Subject != "DBMS" {
		t.Errorf("subject = %q", views[2].Subject)
	}
}

func TestStatsOf(t *testing.T) {
	views := []RecordView{
		{IsPresent: true},
		{IsPresent: true},
		{IsPresent: false},
	}
	st := StatsOf(views)
	if st.TotalClasses != 3 || st.PresentClasses != 2 {
		t.Fatalf("totals = %d/%d", st.PresentClasses, st.TotalClasses)
	}
	if st.AttendancePercentage != 66.67 {
		t.Errorf("percentage = %v, want 66.67", st.AttendancePercentage)
	}
}

func TestStatsOfEmpty(t *testing.T) {
	st := StatsOf(nil)
	if st.TotalClasses != 0 || st.PresentClasses != 0 || st.AttendancePercentage != 0 {
		t.Fatalf("empty stats = %+v", st)
	}
}

func TestStatsOfBounds(t *testing.T) {
	for present := 0; present <= 10; present++ {
		views := make([]RecordView, 10)
		for i := 0; i < present; i++ {
			views[i].IsPresent = true
		}
		st := StatsOf(views)
		if st.PresentClasses > st.TotalClasses {
			t.Fatalf("present %d exceeds total %d", st.PresentClasses, st.TotalClasses)
		}
		if st.AttendancePercentage < 0 || st.AttendancePercentage > 100 {
			t.Fatalf("percentage out of range: %v", st.AttendancePercentage)
		}
	}
}

type fakeStore struct {
	existing  *model.AttendanceRecord
	insertErr error
	inserted  []model.AttendanceRecord
}

func (f *fakeStore) FindByKey(ctx context.Context, date time.Time, branch string, semester int, subject string) (*model.AttendanceRecord, error) {
	return f.existing, nil
}

func (f *fakeStore) Insert(ctx context.Context, rec model.AttendanceRecord) (model.AttendanceRecord, error) {
	if f.insertErr != nil {
		return model.AttendanceRecord{}, f.insertErr
	}
	f.inserted = append(f.inserted, rec)
	return rec, nil
}

func (f *fakeStore) List(ctx context.Context, fl ListFilter) ([]model.AttendanceRecord, error) {
	return nil, nil
}

func (f *fakeStore) ListForStudent(ctx context.Context, branch string, semester, enrollmentNo int, w Window) ([]model.AttendanceRecord, error) {
	return nil, nil
}

func markReq() MarkRequest {
	return MarkRequest{
		Date:      time.Date(2024, 8, 5, 10, 30, 0, 0, IST),
		Branch:    "CSE",
		Semester:  3,
		Subject:   "DBMS",
		FacultyID: 789012,
		Attendance: []model.AttendanceEntry{
			{EnrollmentNo: 101, IsPresent: true},
			{EnrollmentNo: 102, IsPresent: false},
		},
	}
}

func TestMarkCanonicalizesDate(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, nil)

	saved, err := svc.Mark(context.Background(), markReq())
	if err != nil {
		t.Fatalf("Mark: %v", err)
	}
	want := time.Date(2024, 8, 5, 0, 0, 0, 0, IST)
	if !saved.Date.Equal(want) {
		t.Errorf("stored date = %v, want %v", saved.Date, want)
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted %d records, want 1", len(store.inserted))
	}
	// Entries are stored verbatim, without roster validation.
	if len(saved.Attendance) != 2 {
		t.Errorf("stored %d entries, want 2", len(saved.Attendance))
	}
}

func TestMarkConflictOnExistingRecord(t *testing.T) {
	existing := rec(5, "DBMS")
	store := &fakeStore{existing: &existing}
	svc := NewService(store, nil)

	_, err := svc.Mark(context.Background(), markReq())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want conflict", apperr.KindOf(err))
	}
	if got := apperr.MessageOf(err); got != "Attendance already marked for this class on this date" {
		t.Errorf("message = %q", got)
	}
	if len(store.inserted) != 0 {
		t.Errorf("conflicting mark wrote %d records", len(store.inserted))
	}
}

func TestMarkConflictOnDuplicateKeyInsert(t *testing.T) {
	// Two requests race past FindByKey; the unique index rejects the second
	// insert and it must answer with the same conflict message.
	store := &fakeStore{insertErr: ErrDuplicateKey}
	svc := NewService(store, nil)

	_, err := svc.Mark(context.Background(), markReq())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("kind = %v, want conflict", apperr.KindOf(err))
	}
	if got := apperr.MessageOf(err); got != "Attendance already marked for this class on this date" {
		t.Errorf("message = %q", got)
	}
}

func TestMarkValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*MarkRequest)
	}{
		{"missing branch", func(r *MarkRequest) { r.Branch = "" }},
		{"missing subject", func(r *MarkRequest) { r.Subject = "" }},
		{"semester too low", func(r *MarkRequest) { r.Semester = 0 }},
		{"semester too high", func(r *MarkRequest) { r.Semester = 9 }},
		{"zero date", func(r *MarkRequest) { r.Date = time.Time{} }},
		{"empty attendance", func(r *MarkRequest) { r.Attendance = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeStore{}
			req := markReq()
			tc.mutate(&req)

			_, err := NewService(store, nil).Mark(context.Background(), req)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
			}
			if len(store.inserted) != 0 {
				t.Errorf("invalid mark wrote %d records", len(store.inserted))
			}
		})
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(2.0 / 3.0 * 100); got != 66.67 {
		t.Errorf("Round2 = %v", got)
	}
	if got := Round2(50); got != 50 {
		t.Errorf("Round2(50) = %v", got)
	}
}
