package attendance

import (
	"context"
	"errors"
	"math"
	"time"

	"collegems/internal/apperr"
	"collegems/internal/model"
)

// StudentFinder resolves a student's branch and semester.
type StudentFinder interface {
	FindByEnrollment(ctx context.Context, enrollmentNo int) (*model.Student, error)
}

// RecordStore is the attendance persistence the service runs on.
// *Repository is the production implementation.
type RecordStore interface {
	FindByKey(ctx context.Context, date time.Time, branch string, semester int, subject string) (*model.AttendanceRecord, error)
	Insert(ctx context.Context, rec model.AttendanceRecord) (model.AttendanceRecord, error)
	List(ctx context.Context, f ListFilter) ([]model.AttendanceRecord, error)
	ListForStudent(ctx context.Context, branch string, semester, enrollmentNo int, w Window) ([]model.AttendanceRecord, error)
}

// Service coordinates marking and the per-student attendance view.
type Service struct {
	repo     RecordStore
	students StudentFinder
	now      func() time.Time
}

// NewService creates a service backed by the attendance repo.
func NewService(repo RecordStore, students StudentFinder) *Service {
	return &Service{repo: repo, students: students, now: time.Now}
}

// MarkRequest is the validated input for marking one class session.
type MarkRequest struct {
	Date       time.Time
	Branch     string
	Semester   int
	Subject    string
	FacultyID  int
	Attendance []model.AttendanceEntry
}

// Mark canonicalizes the date, rejects duplicates for the
// (date, branch, semester, subject) key, and inserts the record verbatim.
// The entry list is not validated against the student roster.
func (s *Service) Mark(ctx context.Context, req MarkRequest) (model.AttendanceRecord, error) {
	if req.Branch == "" || req.Subject == "" {
		return model.AttendanceRecord{}, apperr.Validation("branch and subject are required")
	}
	if req.Semester < 1 || req.Semester > 8 {
		return model.AttendanceRecord{}, apperr.Validation("semester must be between 1 and 8")
	}
	if req.Date.IsZero() {
		return model.AttendanceRecord{}, apperr.Validation("date is required")
	}
	if len(req.Attendance) == 0 {
		return model.AttendanceRecord{}, apperr.Validation("attendance list is required")
	}

	date := NormalizeDate(req.Date)

	existing, err := s.repo.FindByKey(ctx, date, req.Branch, req.Semester, req.Subject)
	if err != nil {
		return model.AttendanceRecord{}, apperr.Internal(err)
	}
	if existing != nil {
		return model.AttendanceRecord{}, apperr.Conflict("Attendance already marked for this class on this date")
	}

	rec, err := s.repo.Insert(ctx, model.AttendanceRecord{
		Date:       date,
		Branch:     req.Branch,
		Semester:   req.Semester,
		Subject:    req.Subject,
		FacultyID:  req.FacultyID,
		Attendance: req.Attendance,
	})
	if err != nil {
		// The unique index is the backstop for two requests racing past FindByKey.
		if errors.Is(err, ErrDuplicateKey) {
			return model.AttendanceRecord{}, apperr.Conflict("Attendance already marked for this class on this date")
		}
		return model.AttendanceRecord{}, apperr.Internal(err)
	}
	return rec, nil
}

// Records lists stored records for the marking/records UI.
func (s *Service) Records(ctx context.Context, f ListFilter) ([]model.AttendanceRecord, error) {
	if f.Branch == "" {
		return nil, apperr.Validation("branch is required")
	}
	records, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return records, nil
}

// RecordView is one class session from a single student's perspective.
type RecordView struct {
	Date      time.Time `json:"date"`
	Subject   string    `json:"subject"`
	IsPresent bool      `json:"isPresent"`
}

// Stats summarizes a student's attendance over a window.
type Stats struct {
	TotalClasses         int     `json:"totalClasses"`
	PresentClasses       int     `json:"presentClasses"`
	AttendancePercentage float64 `json:"attendancePercentage"`
}

// StudentView resolves the student, applies the view window, and extracts the
// student's own entries from the matching records.
func (s *Service) StudentView(ctx context.Context, enrollmentNo int, view ViewType) ([]RecordView, Stats, error) {
	student, err := s.students.FindByEnrollment(ctx, enrollmentNo)
	if err != nil {
		return nil, Stats{}, apperr.Internal(err)
	}
	if student == nil {
		return nil, Stats{}, apperr.NotFound("Student not found")
	}

	window, ok := WindowFor(view, s.now())
	if !ok {
		return nil, Stats{}, apperr.Validation("viewType must be daily, monthly or semester")
	}

	records, err := s.repo.ListForStudent(ctx, student.Branch, student.Semester, enrollmentNo, window)
	if err != nil {
		return nil, Stats{}, apperr.Internal(err)
	}

	views := ExtractStudentRecords(records, enrollmentNo)
	return views, StatsOf(views), nil
}

// ExtractStudentRecords pulls {date, subject, isPresent} for one student out
// of full class records. A record without an entry for the student counts as
// absent, matching the stored behavior.
func ExtractStudentRecords(records []model.AttendanceRecord, enrollmentNo int) []RecordView {
	views := make([]RecordView, 0, len(records))
	for _, rec := range records {
		entry, _ := rec.EntryFor(enrollmentNo)
		views = append(views, RecordView{
			Date:      rec.Date,
			Subject:   rec.Subject,
			IsPresent: entry.IsPresent,
		})
	}
	return views
}

// StatsOf computes totals and the percentage rounded to 2 decimal places.
func StatsOf(views []RecordView) Stats {
	st := Stats{TotalClasses: len(views)}
	for _, v := range views {
		if v.IsPresent {
			st.PresentClasses++
		}
	}
	if st.TotalClasses > 0 {
		st.AttendancePercentage = Round2(float64(st.PresentClasses) / float64(st.TotalClasses) * 100)
	}
	return st
}

// Round2 rounds to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
