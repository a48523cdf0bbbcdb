package db

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"notes-api/models"
)

// UserStore is the only code path that touches the users collection.
type UserStore struct {
	users    *mongo.Collection
	validate *validator.Validate
}

// All returns every user in insertion order.
func (s *UserStore) All(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, Internal("listing users", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, Internal("decoding users", err)
	}
	return users, nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, MalformedID(id)
	}

	var user models.User
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, NotFound("user", id)
	}
	if err != nil {
		return nil, Internal("fetching user", err)
	}
	return &user, nil
}

// ByIDs fetches the username/name projection for the given user ids, keyed
// by id. Ids with no matching document are simply absent from the result.
func (s *UserStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	owners := make(map[primitive.ObjectID]models.User, len(ids))
	if len(ids) == 0 {
		return owners, nil
	}

	cursor, err := s.users.Find(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"username": 1, "name": 1}),
	)
	if err != nil {
		return nil, Internal("resolving note owners", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, Internal("decoding note owners", err)
	}
	for _, u := range users {
		owners[u.ID] = u
	}
	return owners, nil
}

// Create validates and inserts the user. The unique index on username turns
// a duplicate insert into a validation failure.
func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := s.validate.Struct(user); err != nil {
		return Validation(validationMessage(err))
	}

	res, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return Validation("expected `username` to be unique")
	}
	if err != nil {
		return Internal("inserting user", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// AppendNote records a newly created note on its owner's notes array.
func (s *UserStore) AppendNote(ctx context.Context, userID, noteID primitive.ObjectID) error {
	_, err := s.users.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"notes": noteID}},
	)
	if err != nil {
		return Internal("appending note to user", err)
	}
	return nil
}

// Delete removes the user if it exists. Notes referencing the user keep
// their reference; listings resolve it to nothing.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return MalformedID(id)
	}

	if _, err := s.users.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return Internal("deleting user", err)
	}
	return nil
}
