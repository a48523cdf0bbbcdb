package db

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	notesCollection = "notes"
	usersCollection = "users"
)

// DB owns the Mongo client for the process. It is opened once at startup,
// passed into the store constructors, and closed at shutdown.
type DB struct {
	client   *mongo.Client
	database *mongo.Database
	validate *validator.Validate
}

// Open connects to MongoDB, verifies the connection, and ensures the unique
// index on users.username that backs the uniqueness constraint.
func Open(ctx context.Context, uri, database string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to MongoDB")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging MongoDB")
	}

	d := &DB{
		client:   client,
		database: client.Database(database),
		validate: validator.New(),
	}

	_, err = d.database.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "creating username index")
	}

	return d, nil
}

func (d *DB) Close(ctx context.Context) error {
	return errors.Wrap(d.client.Disconnect(ctx), "disconnecting from MongoDB")
}

func (d *DB) Notes() *NoteStore {
	return &NoteStore{notes: d.database.Collection(notesCollection), validate: d.validate}
}

func (d *DB) Users() *UserStore {
	return &UserStore{users: d.database.Collection(usersCollection), validate: d.validate}
}

// validationMessage turns a validator failure into a client-facing message
// naming the first offending field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return strings.ToLower(verrs[0].Field()) + " is required"
	}
	return err.Error()
}
