package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"notes-api/models"
)

func listUsers(t *testing.T, h http.Handler) []map[string]any {
	t.Helper()

	rr := doRequest(t, h, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &users))
	return users
}

func TestCreateUser(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		users := &memUserStore{}
		router := NewRouter(&memNoteStore{}, users)

		rr := doRequest(t, router, http.MethodPost, "/api/users", map[string]any{
			"username": "mluukkai",
			"name":     "Matti Luukkainen",
			"password": "salainen",
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var created map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
		assert.Equal(t, "mluukkai", created["username"])
		assert.Equal(t, "Matti Luukkainen", created["name"])
		assert.Equal(t, []any{}, created["notes"])
		assert.Len(t, created["id"], 24)
		assert.NotContains(t, created, "passwordHash")
		assert.NotContains(t, created, "password")

		// the stored hash verifies against the raw password, which itself
		// is not persisted anywhere
		require.Len(t, users.users, 1)
		stored := users.users[0]
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("salainen")))
		assert.NotEqual(t, "salainen", stored.PasswordHash)
	})

	t.Run("duplicate username", func(t *testing.T) {
		users := &memUserStore{}
		router := NewRouter(&memNoteStore{}, users)

		payload := map[string]any{"username": "root", "password": "sekret"}
		rr := doRequest(t, router, http.MethodPost, "/api/users", payload)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doRequest(t, router, http.MethodPost, "/api/users", payload)
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Contains(t, body["error"], "unique")

		assert.Len(t, listUsers(t, router), 1)
	})

	t.Run("missing username", func(t *testing.T) {
		users := &memUserStore{}
		router := NewRouter(&memNoteStore{}, users)

		rr := doRequest(t, router, http.MethodPost, "/api/users", map[string]any{
			"password": "sekret",
		})
		require.Equal(t, http.StatusBadRequest, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
		assert.Empty(t, users.users)
	})
}

func TestListUsers(t *testing.T) {
	noteID := primitive.NewObjectID()
	users := &memUserStore{users: []models.User{
		{ID: primitive.NewObjectID(), Username: "root", PasswordHash: "$2a$10$secret", Notes: []primitive.ObjectID{noteID}},
		{ID: primitive.NewObjectID(), Username: "mluukkai", Name: "Matti Luukkainen", PasswordHash: "$2a$10$secret"},
	}}
	router := NewRouter(&memNoteStore{}, users)

	listed := listUsers(t, router)
	require.Len(t, listed, 2)

	assert.Equal(t, "root", listed[0]["username"])
	assert.Equal(t, []any{noteID.Hex()}, listed[0]["notes"])
	for _, u := range listed {
		assert.NotContains(t, u, "passwordHash")
		assert.NotContains(t, u, "_id")
	}
}

func TestDeleteUser(t *testing.T) {
	owner := models.User{ID: primitive.NewObjectID(), Username: "root"}
	users := &memUserStore{users: []models.User{owner}}
	notes := &memNoteStore{notes: []models.Note{
		{ID: primitive.NewObjectID(), Content: "orphaned soon", User: &owner.ID},
	}}
	router := NewRouter(notes, users)

	rr := doRequest(t, router, http.MethodDelete, "/api/users/"+owner.ID.Hex(), nil)
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
	assert.Empty(t, listUsers(t, router))

	// deleting again is a no-op
	rr = doRequest(t, router, http.MethodDelete, "/api/users/"+owner.ID.Hex(), nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	// the note keeps its reference but is listed without an owner
	listed := listNotes(t, router)
	require.Len(t, listed, 1)
	assert.NotContains(t, listed[0], "user")

	t.Run("malformed id", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodDelete, "/api/users/nope", nil)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"malformatted id"}`, rr.Body.String())
	})
}
