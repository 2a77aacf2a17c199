package reports

import (
	"context"
	"fmt"
	"time"

	"collegems/internal/apperr"
	"collegems/internal/attendance"
	"collegems/internal/store"
	"collegems/internal/students"
)

// Service builds attendance reports over the roster of a branch+semester.
type Service struct {
	records  *attendance.Repository
	students *students.Repository
	cache    *store.Redis
	cacheTTL time.Duration
}

// NewService creates the report service. cache may be nil.
func NewService(records *attendance.Repository, st *students.Repository, cache *store.Redis, cacheTTL time.Duration) *Service {
	return &Service{records: records, students: st, cache: cache, cacheTTL: cacheTTL}
}

// rosterPrefix namespaces cached roster aggregations in redis.
const rosterPrefix = "reports:roster:"

// Roster runs the class-roster aggregation for a branch+semester and optional
// inclusive date range. Results are cached briefly; marking attendance for the
// branch+semester and student roster mutations invalidate the cache.
func (s *Service) Roster(ctx context.Context, branch string, semester int, start, end *time.Time) ([]Row, error) {
	if branch == "" {
		return nil, apperr.Validation("Branch and semester are required")
	}
	if semester < 1 || semester > 8 {
		return nil, apperr.Validation("semester must be between 1 and 8")
	}

	key := rosterCacheKey(branch, semester, start, end)
	var cached []Row
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	roster, err := s.students.ListByBranchSemester(ctx, branch, semester)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	records, err := s.records.ListForClass(ctx, branch, semester, start, end)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	rows := Aggregate(roster, records)
	s.cache.SetJSON(ctx, key, rows, s.cacheTTL)
	return rows, nil
}

// DetailedRecord is one class session from a named student's perspective.
type DetailedRecord struct {
	Date      time.Time `json:"date"`
	Subject   string    `json:"subject"`
	IsPresent bool      `json:"isPresent"`
}

// StudentDetail lists every class record for the student's branch+semester in
// the optional range, marking presence per record. Records without an entry
// for the student count as absent.
func (s *Service) StudentDetail(ctx context.Context, enrollmentNo int, start, end *time.Time) ([]DetailedRecord, error) {
	student, err := s.students.FindByEnrollment(ctx, enrollmentNo)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if student == nil {
		return nil, apperr.NotFound("Student not found")
	}

	records, err := s.records.ListForClass(ctx, student.Branch, student.Semester, start, end)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	detail := make([]DetailedRecord, 0, len(records))
	for _, rec := range records {
		entry, _ := rec.EntryFor(enrollmentNo)
		detail = append(detail, DetailedRecord{
			Date:      rec.Date,
			Subject:   rec.Subject,
			IsPresent: entry.IsPresent,
		})
	}
	return detail, nil
}

// InvalidateRoster drops cached reports for a branch+semester.
func (s *Service) InvalidateRoster(ctx context.Context, branch string, semester int) {
	s.cache.DeletePrefix(ctx, fmt.Sprintf("%s%s:%d:", rosterPrefix, branch, semester))
}

// InvalidateAllRosters drops every cached roster report. Used after student
// updates and deletes, where the affected branch+semester is not known.
func (s *Service) InvalidateAllRosters(ctx context.Context) {
	s.cache.DeletePrefix(ctx, rosterPrefix)
}

func rosterCacheKey(branch string, semester int, start, end *time.Time) string {
	from, to := "all", "all"
	if start != nil && end != nil {
		from = start.UTC().Format("2006-01-02")
		to = end.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("%s%s:%d:%s:%s", rosterPrefix, branch, semester, from, to)
}
