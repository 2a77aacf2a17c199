package faculty

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"collegems/internal/apperr"
	"collegems/internal/model"
)

// DefaultProfile is used when no profile image is uploaded.
const DefaultProfile = "default-profile.png"

// Service implements faculty record operations.
type Service struct {
	repo *Repository
}

// NewService creates a service backed by the faculty repo.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Search returns faculties matching an exact-match filter.
func (s *Service) Search(ctx context.Context, filter bson.M) ([]model.Faculty, error) {
	found, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(found) == 0 {
		return nil, apperr.NotFound("No Faculty Found")
	}
	return found, nil
}

// Add validates and inserts one faculty document.
func (s *Service) Add(ctx context.Context, f model.Faculty, profile string) (model.Faculty, error) {
	missing := missingFields(f)
	if len(missing) > 0 {
		return model.Faculty{}, apperr.Validation("Missing required fields: %s", strings.Join(missing, ", "))
	}

	existing, err := s.repo.FindByEmployeeID(ctx, f.EmployeeID)
	if err != nil {
		return model.Faculty{}, apperr.Internal(err)
	}
	if existing != nil {
		return model.Faculty{}, apperr.Conflict("Faculty With This EmployeeId Already Exists")
	}

	if profile == "" {
		profile = DefaultProfile
	}
	f.Profile = profile

	inserted, err := s.repo.Insert(ctx, f)
	if err != nil {
		return model.Faculty{}, apperr.Internal(err)
	}
	return inserted, nil
}

// Update applies partial fields to a faculty by document id.
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
		return apperr.NotFound("No Faculty Found")
	}
	return nil
}

// Delete removes a faculty by document id.
func (s *Service) Delete(ctx context.Context, id string) error {
	matched, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if !matched {
		return apperr.NotFound("No Faculty Found")
	}
	return nil
}

// Count counts faculties matching an exact-match filter.
func (s *Service) Count(ctx context.Context, filter bson.M) (int64, error) {
	n, err := s.repo.Count(ctx, filter)
	if err != nil {
		return 0, apperr.Internal(err)
	}
	return n, nil
}

func missingFields(f model.Faculty) []string {
	var missing []string
	check := []struct {
		name  string
		empty bool
	}{
		{"employeeId", f.EmployeeID == ""},
		{"firstName", f.FirstName == ""},
		{"middleName", f.MiddleName == ""},
		{"lastName", f.LastName == ""},
		{"email", f.Email == ""},
		{"phoneNumber", f.PhoneNumber == ""},
		{"department", f.Department == ""},
		{"gender", f.Gender == ""},
		{"experience", f.Experience == 0},
		{"post", f.Post == ""},
	}
	for _, c := range check {
		if c.empty {
			missing = append(missing, c.name)
		}
	}
	return missing
}
