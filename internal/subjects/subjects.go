// Package subjects manages the subject catalogue. Subject codes are unique.
package subjects

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"collegems/internal/apperr"
	"collegems/internal/model"
	"collegems/internal/store"
)

// Service implements subject catalogue operations directly over Mongo.
type Service struct {
	col *mongo.Collection
}

// NewService creates the subject service.
func NewService(m *store.Mongo) *Service {
	return &Service{col: m.Collection(store.ColSubjects)}
}

// ListAll returns every subject.
func (s *Service) ListAll(ctx context.Context) ([]model.Subject, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer cur.Close(ctx)

	var subjects []model.Subject
	if err := cur.All(ctx, &subjects); err != nil {
		return nil, apperr.Internal(err)
	}
	return subjects, nil
}

// ListByBranchSemester returns the subjects taught to a branch+semester.
func (s *Service) ListByBranchSemester(ctx context.Context, branch string, semester int) ([]model.Subject, error) {
	if branch == "" {
		return nil, apperr.Validation("Branch and semester are required")
	}
	cur, err := s.col.Find(ctx, bson.M{"branch": branch, "semester": semester})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer cur.Close(ctx)

	var subjects []model.Subject
	if err := cur.All(ctx, &subjects); err != nil {
		return nil, apperr.Internal(err)
	}
	return subjects, nil
}

// Add inserts a subject; a duplicate code is a conflict.
func (s *Service) Add(ctx context.Context, subject model.Subject) (model.Subject, error) {
	if subject.Name == "" || subject.Code == "" || subject.Branch == "" {
		return model.Subject{}, apperr.Validation("name, code and branch are required")
	}
	if subject.Semester < 1 || subject.Semester > 8 {
		return model.Subject{}, apperr.Validation("semester must be between 1 and 8")
	}

	err := s.col.FindOne(ctx, bson.M{"code": subject.Code}).Err()
	if err == nil {
		return model.Subject{}, apperr.Conflict("Subject with this code already exists")
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return model.Subject{}, apperr.Internal(err)
	}

	res, err := s.col.InsertOne(ctx, subject)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Subject{}, apperr.Conflict("Subject with this code already exists")
		}
		return model.Subject{}, apperr.Internal(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		subject.ID = oid
	}
	return subject, nil
}

// Delete removes a subject by document id.
func (s *Service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFound("No Subject Found")
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperr.Internal(err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("No Subject Found")
	}
	return nil
}
