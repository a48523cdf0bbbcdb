package handlers

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	appmw "notes-api/middleware"
)

// NewRouter assembles the full request handler: request logger first, then
// the notes and users routes, with unmatched paths answered by the unknown
// endpoint responder. main and the tests mount the same router.
func NewRouter(notes NoteStore, users UserStore) *chi.Mux {
	nh := NewNotesHandler(notes, users)
	uh := NewUsersHandler(users)

	r := chi.NewRouter()
	r.Use(appmw.RequestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/api/notes", appmw.Errors(nh.List))
	r.Get("/api/notes/{id}", appmw.Errors(nh.Get))
	r.Post("/api/notes", appmw.Errors(nh.Create))
	r.Put("/api/notes/{id}", appmw.Errors(nh.Update))
	r.Delete("/api/notes/{id}", appmw.Errors(nh.Delete))

	r.Get("/api/users", appmw.Errors(uh.List))
	r.Post("/api/users", appmw.Errors(uh.Create))
	r.Delete("/api/users/{id}", appmw.Errors(uh.Delete))

	r.NotFound(appmw.UnknownEndpoint)
	r.MethodNotAllowed(appmw.UnknownEndpoint)

	return r
}
