package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student is one document in the students collection.
// enrollmentNo is unique across the store.
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	EnrollmentNo int                `bson:"enrollmentNo" json:"enrollmentNo"`
	FirstName    string             `bson:"firstName" json:"firstName"`
	MiddleName   string             `bson:"middleName,omitempty" json:"middleName,omitempty"`
	LastName     string             `bson:"lastName" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PhoneNumber  int64              `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Semester     int                `bson:"semester" json:"semester"`
	Branch       string             `bson:"branch" json:"branch"`
	Gender       string             `bson:"gender" json:"gender"`
	Profile      string             `bson:"profile,omitempty" json:"profile,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Faculty is one document in the faculties collection.
type Faculty struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	EmployeeID  string             `bson:"employeeId" json:"employeeId"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	MiddleName  string             `bson:"middleName,omitempty" json:"middleName,omitempty"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Department  string             `bson:"department" json:"department"`
	Gender      string             `bson:"gender" json:"gender"`
	Experience  int                `bson:"experience" json:"experience"`
	Post        string             `bson:"post" json:"post"`
	Profile     string             `bson:"profile,omitempty" json:"profile,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Admin is one document in the admins collection.
type Admin struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	EmployeeID  string             `bson:"employeeId" json:"employeeId"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	MiddleName  string             `bson:"middleName,omitempty" json:"middleName,omitempty"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Gender      string             `bson:"gender" json:"gender"`
	Type        string             `bson:"type,omitempty" json:"type,omitempty"`
	Profile     string             `bson:"profile,omitempty" json:"profile,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Credential pairs a numeric login id with a password. One collection per role.
// Student passwords default to the enrollment number as a string.
type Credential struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LoginID  int                `bson:"loginid" json:"loginid"`
	Password string             `bson:"password" json:"-"`
}

// Subject is one document in the subjects collection. code is unique.
type Subject struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Code     string             `bson:"code" json:"code"`
	Branch   string             `bson:"branch" json:"branch"`
	Semester int                `bson:"semester" json:"semester"`
}

// AttendanceEntry records one student's presence in a class session.
type AttendanceEntry struct {
	EnrollmentNo int  `bson:"enrollmentNo" json:"enrollmentNo"`
	IsPresent    bool `bson:"isPresent" json:"isPresent"`
}

// AttendanceRecord is one class session. The composite key
// (date, branch, semester, subject) is unique; records are created once
// and never updated in place.
type AttendanceRecord struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Date       time.Time          `bson:"date" json:"date"`
	Branch     string             `bson:"branch" json:"branch"`
	Semester   int                `bson:"semester" json:"semester"`
	Subject    string             `bson:"subject" json:"subject"`
	FacultyID  int                `bson:"facultyId" json:"facultyId"`
	Attendance []AttendanceEntry  `bson:"attendance" json:"attendance"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// EntryFor returns the student's entry in the record, if any.
func (r AttendanceRecord) EntryFor(enrollmentNo int) (AttendanceEntry, bool) {
	for _, e := range r.Attendance {
		if e.EnrollmentNo == enrollmentNo {
			return e, true
		}
	}
	return AttendanceEntry{}, false
}
