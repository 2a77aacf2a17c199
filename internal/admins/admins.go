// Package admins stores the administrator detail documents; credential
// handling for the admin role lives in internal/auth.
package admins

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"collegems/internal/apperr"
	"collegems/internal/model"
	"collegems/internal/store"
)

// Repository persists admin documents in Mongo.
type Repository struct {
	col *mongo.Collection
}

// NewRepository creates a repo over the admins collection.
func NewRepository(m *store.Mongo) *Repository {
	return &Repository{col: m.Collection(store.ColAdmins)}
}

// Search returns admins matching an exact-match filter.
func (r *Repository) Search(ctx context.Context, filter bson.M) ([]model.Admin, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer cur.Close(ctx)

	var admins []model.Admin
	if err := cur.All(ctx, &admins); err != nil {
		return nil, apperr.Internal(err)
	}
	if len(admins) == 0 {
		return nil, apperr.NotFound("No Admin Found")
	}
	return admins, nil
}

// Insert writes a new admin document.
func (r *Repository) Insert(ctx context.Context, a model.Admin) (model.Admin, error) {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, a)
	if err != nil {
		return model.Admin{}, apperr.Internal(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid
	}
	return a, nil
}

// UpdateByID applies the given fields to an admin by document id.
func (r *Repository) UpdateByID(ctx context.Context, id string, fields bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFound("No Admin Exists!")
	}
	delete(fields, "_id")
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.col.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return apperr.Internal(err)
	}
	if res.MatchedCount == 0 {
		return apperr.NotFound("No Admin Exists!")
	}
	return nil
}

// DeleteByID removes an admin by document id.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NotFound("No Admin Exists!")
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperr.Internal(err)
	}
	if res.DeletedCount == 0 {
		return apperr.NotFound("No Admin Exists!")
	}
	return nil
}

// DeleteAll wipes the collection. Used by the seeder.
func (r *Repository) DeleteAll(ctx context.Context) error {
	_, err := r.col.DeleteMany(ctx, bson.M{})
	return err
}
