package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	ColStudents           = "students"
	ColFaculties          = "faculties"
	ColAdmins             = "admins"
	ColSubjects           = "subjects"
	ColAttendance         = "attendance"
	ColStudentCredentials = "studentCredentials"
	ColFacultyCredentials = "facultyCredentials"
	ColAdminCredentials   = "adminCredentials"
)

// Mongo wraps the database handle.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewMongo connects and pings with a short deadline.
func NewMongo(uri, dbName string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Mongo{Client: client, DB: client.Database(dbName)}, nil
}

// Collection returns a handle by name.
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.DB.Collection(name)
}

// EnsureIndexes builds the uniqueness constraints the application relies on.
// The compound attendance index closes the check-then-insert race in marking.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := m.Collection(ColAttendance).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "date", Value: 1},
			{Key: "branch", Value: 1},
			{Key: "semester", Value: 1},
			{Key: "subject", Value: 1},
		},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = m.Collection(ColStudents).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "enrollmentNo", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = m.Collection(ColSubjects).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	for _, col := range []string{ColStudentCredentials, ColFacultyCredentials, ColAdminCredentials} {
		_, err = m.Collection(col).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "loginid", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Healthy verifies connectivity.
func (m *Mongo) Healthy(ctx context.Context) bool {
	if m == nil || m.Client == nil {
		return false
	}
	return m.Client.Ping(ctx, nil) == nil
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	if m == nil || m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(ctx)
}
