package students

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"collegems/internal/model"
	"collegems/internal/store"
)

// ErrDuplicateEnrollment is returned when an insert trips the unique
// enrollmentNo index.
var ErrDuplicateEnrollment = errors.New("enrollment number already exists")

// Repository persists student documents in Mongo.
type Repository struct {
	col *mongo.Collection
}

// NewRepository creates a repo over the students collection.
func NewRepository(m *store.Mongo) *Repository {
	return &Repository{col: m.Collection(store.ColStudents)}
}

// FindByEnrollment returns the student with the enrollment number, or nil.
func (r *Repository) FindByEnrollment(ctx context.Context, enrollmentNo int) (*model.Student, error) {
	var student model.Student
	err := r.col.FindOne(ctx, bson.M{"enrollmentNo": enrollmentNo}).Decode(&student)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// ListByBranchSemester returns all students of a branch+semester.
func (r *Repository) ListByBranchSemester(ctx context.Context, branch string, semester int) ([]model.Student, error) {
	cur, err := r.col.Find(ctx, bson.M{"branch": branch, "semester": semester},
		options.Find().SetSort(bson.D{{Key: "enrollmentNo", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var students []model.Student
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Search returns students matching an exact-match filter.
func (r *Repository) Search(ctx context.Context, filter bson.M) ([]model.Student, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var students []model.Student
	if err := cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// Insert writes a new student. Duplicate enrollment numbers map to
// ErrDuplicateEnrollment.
func (r *Repository) Insert(ctx context.Context, student model.Student) (model.Student, error) {
	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, student)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Student{}, ErrDuplicateEnrollment
		}
		return model.Student{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		student.ID = oid
	}
	return student, nil
}

// UpdateByID applies the given fields. Returns false when no document matched.
func (r *Repository) UpdateByID(ctx context.Context, id string, fields bson.M) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// DeleteByID removes a student. Returns false when no document matched.
func (r *Repository) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// Count counts students matching the filter.
func (r *Repository) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.col.CountDocuments(ctx, filter)
}
