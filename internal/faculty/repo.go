package faculty

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"collegems/internal/model"
	"collegems/internal/store"
)

// Repository persists faculty documents in Mongo.
type Repository struct {
	col *mongo.Collection
}

// NewRepository creates a repo over the faculties collection.
func NewRepository(m *store.Mongo) *Repository {
	return &Repository{col: m.Collection(store.ColFaculties)}
}

// FindByEmployeeID returns the faculty with the employee id, or nil.
func (r *Repository) FindByEmployeeID(ctx context.Context, employeeID string) (*model.Faculty, error) {
	var f model.Faculty
	err := r.col.FindOne(ctx, bson.M{"employeeId": employeeID}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// Search returns faculties matching an exact-match filter.
func (r *Repository) Search(ctx context.Context, filter bson.M) ([]model.Faculty, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var faculties []model.Faculty
	if err := cur.All(ctx, &faculties); err != nil {
		return nil, err
	}
	return faculties, nil
}

// Insert writes a new faculty document.
func (r *Repository) Insert(ctx context.Context, f model.Faculty) (model.Faculty, error) {
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, f)
	if err != nil {
		return model.Faculty{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		f.ID = oid
	}
	return f, nil
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

// DeleteByID removes a faculty. Returns false when no document matched.
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

// Count counts faculties matching the filter.
func (r *Repository) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	return r.col.CountDocuments(ctx, filter)
}

// DeleteAll wipes the collection. Used by the seeder.
func (r *Repository) DeleteAll(ctx context.Context) error {
	_, err := r.col.DeleteMany(ctx, bson.M{})
	return err
}
