package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"notes-api/db"
	"notes-api/models"
)

// memNoteStore and memUserStore back the handler tests with the same error
// taxonomy the Mongo stores produce.

type memNoteStore struct {
	notes []models.Note
}

func (s *memNoteStore) All(ctx context.Context) ([]models.Note, error) {
	out := make([]models.Note, len(s.notes))
	copy(out, s.notes)
	return out, nil
}

func (s *memNoteStore) Get(ctx context.Context, id string) (*models.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.MalformedID(id)
	}
	for _, n := range s.notes {
		if n.ID == oid {
			note := n
			return &note, nil
		}
	}
	return nil, db.NotFound("note", id)
}

func (s *memNoteStore) Create(ctx context.Context, note *models.Note) error {
	if note.Content == "" {
		return db.Validation("content is required")
	}
	note.ID = primitive.NewObjectID()
	s.notes = append(s.notes, *note)
	return nil
}

func (s *memNoteStore) Update(ctx context.Context, id string, upd db.NoteUpdate) (*models.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.MalformedID(id)
	}
	for i := range s.notes {
		if s.notes[i].ID == oid {
			if upd.Content != nil {
				s.notes[i].Content = *upd.Content
			}
			if upd.Important != nil {
				s.notes[i].Important = *upd.Important
			}
			note := s.notes[i]
			return &note, nil
		}
	}
	return nil, db.NotFound("note", id)
}

func (s *memNoteStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return db.MalformedID(id)
	}
	for i := range s.notes {
		if s.notes[i].ID == oid {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return nil
		}
	}
	return nil
}

type memUserStore struct {
	users []models.User
}

func (s *memUserStore) All(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *memUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, db.MalformedID(id)
	}
	for _, u := range s.users {
		if u.ID == oid {
			user := u
			return &user, nil
		}
	}
	return nil, db.NotFound("user", id)
}

func (s *memUserStore) ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	owners := make(map[primitive.ObjectID]models.User, len(ids))
	for _, id := range ids {
		for _, u := range s.users {
			if u.ID == id {
				owners[id] = models.User{ID: u.ID, Username: u.Username, Name: u.Name}
			}
		}
	}
	return owners, nil
}

func (s *memUserStore) Create(ctx context.Context, user *models.User) error {
	if user.Username == "" {
		return db.Validation("username is required")
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return db.Validation("expected `username` to be unique")
		}
	}
	user.ID = primitive.NewObjectID()
	s.users = append(s.users, *user)
	return nil
}

func (s *memUserStore) AppendNote(ctx context.Context, userID, noteID primitive.ObjectID) error {
	for i := range s.users {
		if s.users[i].ID == userID {
			s.users[i].Notes = append(s.users[i].Notes, noteID)
		}
	}
	return nil
}

func (s *memUserStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return db.MalformedID(id)
	}
	for i := range s.users {
		if s.users[i].ID == oid {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return nil
}
