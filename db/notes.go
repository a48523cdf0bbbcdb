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

// NoteStore is the only code path that touches the notes collection.
type NoteStore struct {
	notes    *mongo.Collection
	validate *validator.Validate
}

// All returns every note in insertion order.
func (s *NoteStore) All(ctx context.Context) ([]models.Note, error) {
	cursor, err := s.notes.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, Internal("listing notes", err)
	}
	defer cursor.Close(ctx)

	notes := make([]models.Note, 0)
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, Internal("decoding notes", err)
	}
	return notes, nil
}

func (s *NoteStore) Get(ctx context.Context, id string) (*models.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, MalformedID(id)
	}

	var note models.Note
	err = s.notes.FindOne(ctx, bson.M{"_id": oid}).Decode(&note)
	if err == mongo.ErrNoDocuments {
		return nil, NotFound("note", id)
	}
	if err != nil {
		return nil, Internal("fetching note", err)
	}
	return &note, nil
}

// Create validates and inserts the note, filling in its generated id.
func (s *NoteStore) Create(ctx context.Context, note *models.Note) error {
	if err := s.validate.Struct(note); err != nil {
		return Validation(validationMessage(err))
	}

	res, err := s.notes.InsertOne(ctx, note)
	if err != nil {
		return Internal("inserting note", err)
	}
	note.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// NoteUpdate carries the fields a PUT may replace; nil fields are left alone.
type NoteUpdate struct {
	Content   *string
	Important *bool
}

func (s *NoteStore) Update(ctx context.Context, id string, upd NoteUpdate) (*models.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, MalformedID(id)
	}

	set := bson.M{}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Important != nil {
		set["important"] = *upd.Important
	}
	// an empty $set is rejected by the server
	if len(set) == 0 {
		return s.Get(ctx, id)
	}

	var note models.Note
	err = s.notes.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&note)
	if err == mongo.ErrNoDocuments {
		return nil, NotFound("note", id)
	}
	if err != nil {
		return nil, Internal("updating note", err)
	}
	return &note, nil
}

// Delete removes the note if it exists. Deleting an absent note is not an
// error.
func (s *NoteStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return MalformedID(id)
	}

	if _, err := s.notes.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return Internal("deleting note", err)
	}
	return nil
}
