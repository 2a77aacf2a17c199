package students

import (
	"context"
	"errors"
	"log"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"collegems/internal/apperr"
	"collegems/internal/auth"
	"collegems/internal/model"
)

// Service implements student record operations.
type Service struct {
	repo  *Repository
	creds *auth.Credentials
}

// NewService creates a service backed by the students repo and the
// credential store (a new student gets a login with the enrollment number
// as default password).
func NewService(repo *Repository, creds *auth.Credentials) *Service {
	return &Service{repo: repo, creds: creds}
}

// SearchQuery selects students by enrollment number or by branch+semester.
type SearchQuery struct {
	EnrollmentNo *int
	Branch       string
	Semester     *int
}

// Search returns matching students; at least one criterion is required.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]model.Student, error) {
	filter := bson.M{}
	switch {
	case q.EnrollmentNo != nil:
		filter["enrollmentNo"] = *q.EnrollmentNo
	case q.Branch != "" && q.Semester != nil:
		filter["branch"] = q.Branch
		filter["semester"] = *q.Semester
	default:
		return nil, apperr.Validation("Please provide enrollment number or branch and semester")
	}

	found, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(found) == 0 {
		return nil, apperr.NotFound("No Student Found")
	}
	return found, nil
}

// Add validates and inserts one student, then registers a default credential.
// A credential failure does not roll the student back; it is only logged.
func (s *Service) Add(ctx context.Context, rec Record, profile string) (model.Student, error) {
	if errs := rec.Validate(); len(errs) > 0 {
		return model.Student{}, apperr.Validation("%s", errs[0])
	}
	student, err := recordToStudent(rec)
	if err != nil {
		return model.Student{}, apperr.Validation("%s", err.Error())
	}
	student.Profile = profile

	inserted, err := s.repo.Insert(ctx, student)
	if err != nil {
		if errors.Is(err, ErrDuplicateEnrollment) {
			return model.Student{}, apperr.Conflict("Student With This Enrollment Already Exists")
		}
		return model.Student{}, apperr.Internal(err)
	}

	if _, err := s.creds.Create(ctx, auth.RoleStudent, inserted.EnrollmentNo, strconv.Itoa(inserted.EnrollmentNo)); err != nil {
		log.Printf("credential create failed for enrollment %d: %v", inserted.EnrollmentNo, err)
	}
	return inserted, nil
}

// Update applies partial fields to a student by document id.
func (s *Service) Update(ctx context.Context, id string, fields bson.M, profile string) error {
	if profile != "" {
		fields["profile"] = profile
	}
	delete(fields, "_id")
	matched, err := s.repo.UpdateByID(ctx, id, fields)
	if err != nil {
		return apperr.Internal(err)
	}
	if !matched {
		return apperr.NotFound("No Student Found")
	}
	return nil
}

// Delete removes a student by document id.
func (s *Service) Delete(ctx context.Context, id string) error {
	matched, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !matched {
		return apperr.NotFound("No Student Found")
	}
	return nil
}

// Count counts students matching an exact-match filter.
func (s *Service) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := s.repo.Count(ctx, filter)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}

// RosterEntry is the slim student view used by the marking UI.
type RosterEntry struct {
	EnrollmentNo int    `json:"enrollmentNo"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
}

// Roster lists the students of a branch+semester sorted by enrollment number.
func (s *Service) Roster(ctx context.Context, branch string, semester int) ([]RosterEntry, error) {
	found, err := s.repo.ListByBranchSemester(ctx, branch, semester)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(found) == 0 {
		return nil, apperr.NotFound("No students found for this branch and semester")
	}
	roster := make([]RosterEntry, 0, len(found))
	for _, st := range found {
		roster = append(roster, RosterEntry{
			EnrollmentNo: st.EnrollmentNo,
			FirstName:    st.FirstName,
			LastName:     st.LastName,
		})
	}
	return roster, nil
}

// ItemResult is one student's outcome in a bulk add.
type ItemResult struct {
	EnrollmentNo string `json:"enrollmentNo"`
	Message      string `json:"message"`
}

// BulkResult accumulates per-item outcomes; a bulk add never fails as a whole.
type BulkResult struct {
	Success []ItemResult `json:"success"`
	Errors  []ItemResult `json:"errors"`
}

// AddMultiple inserts students one at a time, accumulating per-item results.
func (s *Service) AddMultiple(ctx context.Context, records []Record) BulkResult {
	var res BulkResult
	for _, rec := range records {
		if errs := rec.Validate(); len(errs) > 0 {
			res.Errors = append(res.Errors, ItemResult{EnrollmentNo: rec.EnrollmentNo, Message: errs[0]})
			continue
		}
		if _, err := s.Add(ctx, rec, ""); err != nil {
			res.Errors = append(res.Errors, ItemResult{EnrollmentNo: rec.EnrollmentNo, Message: apperr.MessageOf(err)})
			continue
		}
		res.Success = append(res.Success, ItemResult{EnrollmentNo: rec.EnrollmentNo, Message: "Student added successfully"})
	}
	return res
}

func recordToStudent(rec Record) (model.Student, error) {
	enrollment, err := strconv.Atoi(rec.EnrollmentNo)
	if err != nil {
		return model.Student{}, errors.New("Enrollment number must be a valid number")
	}
	semester, err := strconv.Atoi(rec.Semester)
	if err != nil {
		return model.Student{}, errors.New("Semester must be a valid number")
	}
	var phone int64
	if rec.PhoneNumber != "" {
		phone, err = strconv.ParseInt(rec.PhoneNumber, 10, 64)
		if err != nil {
			return model.Student{}, errors.New("Phone number must be a valid number")
		}
	}
	return model.Student{
		EnrollmentNo: enrollment,
		FirstName:    rec.FirstName,
		MiddleName:   rec.MiddleName,
		LastName:     rec.LastName,
		Email:        rec.Email,
		PhoneNumber:  phone,
		Semester:     semester,
		Branch:       rec.Branch,
		Gender:       rec.Gender,
	}, nil
}
