package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"notes-api/db"
	"notes-api/models"
)

// NoteStore is the slice of the persistence layer the notes routes need.
type NoteStore interface {
	All(ctx context.Context) ([]models.Note, error)
	Get(ctx context.Context, id string) (*models.Note, error)
	Create(ctx context.Context, note *models.Note) error
	Update(ctx context.Context, id string, upd db.NoteUpdate) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

type NotesHandler struct {
	notes NoteStore
	users UserStore
}

func NewNotesHandler(notes NoteStore, users UserStore) *NotesHandler {
	return &NotesHandler{notes: notes, users: users}
}

// List returns every note with its owner resolved to a username/name
// projection. Notes whose owner no longer exists are listed without one.
func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	notes, err := h.notes.All(ctx)
	if err != nil {
		return err
	}

	ownerIDs := make([]primitive.ObjectID, 0, len(notes))
	for _, n := range notes {
		if n.User != nil {
			ownerIDs = append(ownerIDs, *n.User)
		}
	}
	owners, err := h.users.ByIDs(ctx, ownerIDs)
	if err != nil {
		return err
	}

	out := make([]models.NoteJSON, 0, len(notes))
	for _, n := range notes {
		if n.User == nil {
			out = append(out, n.JSON())
			continue
		}
		if owner, ok := owners[*n.User]; ok {
			out = append(out, n.JSONWithUser(&owner))
		} else {
			out = append(out, n.JSONWithUser(nil))
		}
	}

	return respondJSON(w, http.StatusOK, out)
}

func (h *NotesHandler) Get(w http.ResponseWriter, r *http.Request) error {
	note, err := h.notes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, note.JSON())
}

type createNoteRequest struct {
	Content   string `json:"content"`
	Important bool   `json:"important"`
	UserID    string `json:"userId"`
}

// Create inserts a new note, and when a userId is supplied, appends the note
// to that user's notes array. The two writes are sequential and not atomic;
// a failed append leaves the note readable and is logged.
func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errors.Wrap(err, "decoding note body")
	}

	var owner *models.User
	if req.UserID != "" {
		var err error
		owner, err = h.users.Get(ctx, req.UserID)
		if err != nil {
			return err
		}
	}

	note := &models.Note{
		Content:   req.Content,
		Important: req.Important,
		Date:      time.Now(),
	}
	if owner != nil {
		note.User = &owner.ID
	}

	if err := h.notes.Create(ctx, note); err != nil {
		return err
	}

	if owner != nil {
		if err := h.users.AppendNote(ctx, owner.ID, note.ID); err != nil {
			logrus.WithError(err).WithField("note", note.ID.Hex()).
				Warn("note created but not recorded on its owner")
		}
	}

	return respondJSON(w, http.StatusOK, note.JSON())
}

type updateNoteRequest struct {
	Content   *string `json:"content"`
	Important *bool   `json:"important"`
}

func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) error {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errors.Wrap(err, "decoding note body")
	}

	note, err := h.notes.Update(r.Context(), chi.URLParam(r, "id"), db.NoteUpdate{
		Content:   req.Content,
		Important: req.Important,
	})
	if err != nil {
		return err
	}
	return respondJSON(w, http.StatusOK, note.JSON())
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.notes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// respondJSON writes the response body. Encode failures are logged rather
// than returned: the status line is already committed, so the error
// translator could not change the response anyway.
func respondJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("writing response body")
	}
	return nil
}
