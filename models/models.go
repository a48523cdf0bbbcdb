package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Note is the stored shape of a note document. User holds a reference to
// the owning user's id; it is optional and never cascaded.
type Note struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Content   string              `bson:"content" validate:"required"`
	Important bool                `bson:"important"`
	Date      time.Time           `bson:"date"`
	User      *primitive.ObjectID `bson:"user,omitempty"`
}

// User is the stored shape of a user document. Notes holds the ids of the
// notes created by the user, mirroring the reference on the note side.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username" validate:"required"`
	Name         string               `bson:"name,omitempty"`
	PasswordHash string               `bson:"passwordHash"`
	Notes        []primitive.ObjectID `bson:"notes"`
}

// NoteJSON is the public representation of a note. The internal ObjectID is
// exposed as a hex string under "id". User carries either the owner's hex id
// or a NoteUserJSON when the owner has been resolved.
type NoteJSON struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Important bool      `json:"important"`
	Date      time.Time `json:"date"`
	User      any       `json:"user,omitempty"`
}

// NoteUserJSON is the owner projection embedded in a resolved note listing.
type NoteUserJSON struct {
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	ID       string `json:"id"`
}

// UserJSON is the public representation of a user. It has no password hash
// field at all, so a hash cannot leak through any handler.
type UserJSON struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name,omitempty"`
	Notes    []string `json:"notes"`
}

// JSON renders the note for API responses, leaving any owner reference as a
// hex id string.
func (n Note) JSON() NoteJSON {
	j := NoteJSON{
		ID:        n.ID.Hex(),
		Content:   n.Content,
		Important: n.Important,
		Date:      n.Date,
	}
	if n.User != nil {
		j.User = n.User.Hex()
	}
	return j
}

// JSONWithUser renders the note with its owner resolved to a username/name
// projection. A nil owner drops the user field entirely, which is how notes
// pointing at a deleted user are listed.
func (n Note) JSONWithUser(owner *User) NoteJSON {
	j := n.JSON()
	if owner == nil {
		j.User = nil
		return j
	}
	j.User = NoteUserJSON{
		Username: owner.Username,
		Name:     owner.Name,
		ID:       owner.ID.Hex(),
	}
	return j
}

// JSON renders the user for API responses.
func (u User) JSON() UserJSON {
	notes := make([]string, 0, len(u.Notes))
	for _, id := range u.Notes {
		notes = append(notes, id.Hex())
	}
	return UserJSON{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Name:     u.Name,
		Notes:    notes,
	}
}
