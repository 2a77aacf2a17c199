package auth

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

// Roles recognized by the credential store, one collection each.
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleAdmin   = "admin"
)

// ErrDuplicateLogin is returned when a loginid is already registered.
var ErrDuplicateLogin = errors.New("loginid already exists")

// Credentials persists per-role login documents. Passwords are stored and
// compared as plaintext, reproducing the system this replaces.
type Credentials struct {
	db *store.Mongo
}

// NewCredentials creates the credential store.
func NewCredentials(db *store.Mongo) *Credentials {
	return &Credentials{db: db}
}

func (c *Credentials) collection(role string) (*mongo.Collection, error) {
	switch role {
	case RoleStudent:
		return c.db.Collection(store.ColStudentCredentials), nil
	case RoleFaculty:
		return c.db.Collection(store.ColFacultyCredentials), nil
	case RoleAdmin:
		return c.db.Collection(store.ColAdminCredentials), nil
	}
	return nil, errors.New("unknown role: " + role)
}

// Find returns the credential for a loginid, or nil.
func (c *Credentials) Find(ctx context.Context, role string, loginid int) (*model.Credential, error) {
	col, err := c.collection(role)
	if err != nil {
		return nil, err
	}
	var cred model.Credential
	if err := col.FindOne(ctx, bson.M{"loginid": loginid}).Decode(&cred); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

// Create registers a credential. Duplicates map to ErrDuplicateLogin.
func (c *Credentials) Create(ctx context.Context, role string, loginid int, password string) (*model.Credential, error) {
	col, err := c.collection(role)
	if err != nil {
		return nil, err
	}
	cred := model.Credential{LoginID: loginid, Password: password}
	res, err := col.InsertOne(ctx, cred)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateLogin
		}
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		cred.ID = oid
	}
	return &cred, nil
}

// UpdateByID replaces the password. Returns false when no document matched.
func (c *Credentials) UpdateByID(ctx context.Context, role, id, password string) (bool, error) {
	col, err := c.collection(role)
	if err != nil {
		return false, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}
	res, err := col.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"password": password}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// DeleteByID removes a credential. Returns false when no document matched.
func (c *Credentials) DeleteByID(ctx context.Context, role, id string) (bool, error) {
	col, err := c.collection(role)
	if err != nil {
		return false, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, err
	}
	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// DeleteAll wipes a role's credentials. Used by the seeder.
func (c *Credentials) DeleteAll(ctx context.Context, role string) error {
	col, err := c.collection(role)
	if err != nil {
		return err
	}
	_, err = col.DeleteMany(ctx, bson.M{})
	return err
}

// Login checks a plaintext password and returns the stored credential.
// Both a missing loginid and a wrong password report the same message.
func (c *Credentials) Login(ctx context.Context, role string, loginid int, password string) (*model.Credential, error) {
	cred, err := c.Find(ctx, role, loginid)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if cred == nil || cred.Password != password {
		return nil, apperr.Validation("Wrong Credentials")
	}
	return cred, nil
}
