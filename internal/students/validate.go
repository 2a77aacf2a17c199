package students

import (
	"fmt"
	"regexp"
	"strconv"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var phoneRe = regexp.MustCompile(`^\d{10}$`)

// Record is one student's raw fields as supplied by a client or an import
// sheet, prior to validation.
type Record struct {
	EnrollmentNo string `json:"enrollmentNo"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	Semester     string `json:"semester"`
	Branch       string `json:"branch"`
	Gender       string `json:"gender"`
}

// Validate reports every problem with the record, in field order.
func (r Record) Validate() []string {
	var errs []string

	required := []struct{ name, value string }{
		{"enrollmentNo", r.EnrollmentNo},
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
		{"email", r.Email},
		{"phoneNumber", r.PhoneNumber},
		{"semester", r.Semester},
		{"branch", r.Branch},
		{"gender", r.Gender},
	}
	for _, f := range required {
		if f.value == "" {
			errs = append(errs, "Missing required field: "+f.name)
		}
	}

	if r.EnrollmentNo != "" {
		if _, err := strconv.Atoi(r.EnrollmentNo); err != nil {
			errs = append(errs, "Enrollment number must be a valid number: "+r.EnrollmentNo)
		}
	}
	if r.Email != "" && !emailRe.MatchString(r.Email) {
		errs = append(errs, "Invalid email format: "+r.Email)
	}
	if r.PhoneNumber != "" && !phoneRe.MatchString(r.PhoneNumber) {
		errs = append(errs, fmt.Sprintf("Invalid phone number format: %s. Must be 10 digits.", r.PhoneNumber))
	}
	if r.Semester != "" {
		sem, err := strconv.Atoi(r.Semester)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Invalid semester value: %s. Must be a number.", r.Semester))
		} else if sem < 1 || sem > 8 {
			errs = append(errs, fmt.Sprintf("Invalid semester value: %d. Must be between 1 and 8.", sem))
		}
	}
	return errs
}
