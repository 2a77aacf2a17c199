package attendance

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

// ErrDuplicateKey is returned when an insert trips the unique
// (date, branch, semester, subject) index.
var ErrDuplicateKey = errors.New("attendance record already exists")

// Repository persists attendance documents in Mongo.
type Repository struct {
	col *mongo.Collection
}

// NewRepository creates a repo over the attendance collection.
func NewRepository(m *store.Mongo) *Repository {
	return &Repository{col: m.Collection(store.ColAttendance)}
}

// FindByKey returns the record with the exact composite key, or nil.
func (r *Repository) FindByKey(ctx context.Context, date time.Time, branch string, semester int, subject string) (*model.AttendanceRecord, error) {
	filter := bson.M{
		"date":     date,
		"branch":   branch,
		"semester": semester,
		"subject":  subject,
	}
	var rec model.AttendanceRecord
	if err := r.col.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// Insert writes a new record. A duplicate composite key maps to ErrDuplicateKey.
func (r *Repository) Insert(ctx context.Context, rec model.AttendanceRecord) (model.AttendanceRecord, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, rec)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.AttendanceRecord{}, ErrDuplicateKey
		}
		return model.AttendanceRecord{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid
	}
	return rec, nil
}

// ListFilter narrows a record listing.
type ListFilter struct {
	Branch   string
	Semester int
	Subject  string
	Start    *time.Time
	End      *time.Time
}

// List returns records newest first, capped at 100.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]model.AttendanceRecord, error) {
	filter := bson.M{
		"branch":   f.Branch,
		"semester": f.Semester,
	}
	if f.Subject != "" {
		filter["subject"] = f.Subject
	}
	if f.Start != nil && f.End != nil {
		filter["date"] = bson.M{"$gte": *f.Start, "$lte": *f.End}
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}}).SetLimit(100)
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []model.AttendanceRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListForClass returns every record for a branch+semester, optionally bounded
// by an inclusive date range. Used by the report aggregation.
func (r *Repository) ListForClass(ctx context.Context, branch string, semester int, start, end *time.Time) ([]model.AttendanceRecord, error) {
	filter := bson.M{
		"branch":   branch,
		"semester": semester,
	}
	if start != nil && end != nil {
		filter["date"] = bson.M{"$gte": *start, "$lte": *end}
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []model.AttendanceRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListForStudent returns records for a branch+semester that contain an entry
// for the enrollment number, restricted to the window, newest first.
func (r *Repository) ListForStudent(ctx context.Context, branch string, semester, enrollmentNo int, w Window) ([]model.AttendanceRecord, error) {
	dateFilter := bson.M{"$gte": w.Start}
	if w.EndInclusive {
		dateFilter["$lte"] = w.End
	} else {
		dateFilter["$lt"] = w.End
	}
	filter := bson.M{
		"branch":                  branch,
		"semester":                semester,
		"attendance.enrollmentNo": enrollmentNo,
		"date":                    dateFilter,
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var records []model.AttendanceRecord
	if err := cur.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
