package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"notes-api/models"
)

// UserStore is the slice of the persistence layer the users routes (and the
// notes create path) need.
type UserStore interface {
	All(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	ByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	Create(ctx context.Context, user *models.User) error
	AppendNote(ctx context.Context, userID, noteID primitive.ObjectID) error
	Delete(ctx context.Context, id string) error
}

type UsersHandler struct {
	users UserStore
}

func NewUsersHandler(users UserStore) *UsersHandler {
	return &UsersHandler{users: users}
}

type createUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Create hashes the password and persists a new user with an empty notes
// array. Only the hash is stored; the response carries neither.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errors.Wrap(err, "decoding user body")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}

	user := &models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
		Notes:        []primitive.ObjectID{},
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		return err
	}

	return respondJSON(w, http.StatusOK, user.JSON())
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.users.All(r.Context())
	if err != nil {
		return err
	}

	out := make([]models.UserJSON, 0, len(users))
	for _, u := range users {
		out = append(out, u.JSON())
	}
	return respondJSON(w, http.StatusOK, out)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
