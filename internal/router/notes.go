package router

import (
	"net/http"
	"time"

	"mentorapp/internal/activity"
	"mentorapp/internal/auth"
	"mentorapp/internal/models"
	"mentorapp/internal/qerrors"
	repo "mentorapp/internal/repository"

	"github.com/go-chi/chi/v5"
)

func NotesRoutes() *chi.Mux {
	router := chi.NewRouter()
	router.Use(auth.AuthCtx())

	router.Get("/", listNotesHandler)
	router.Post("/", createNoteHandler)
	router.Get("/{noteID}", getNoteHandler)
	router.Put("/{noteID}", updateNoteHandler)
	router.Delete("/{noteID}", deleteNoteHandler)

	return router
}

// GET: /
func listNotesHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	notes, err := repo.Repository.ListNotes(r.Context(), id.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, notes)
}

// POST: /
func createNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}

	var req models.CreateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	now := time.Now()
	note := &models.Note{
		UserID:    id.UserID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if err := repo.Repository.CreateNote(r.Context(), note); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(id.UserID, "Criou uma nota", models.ActionNoteCreate)

	writeJSON(w, r, http.StatusCreated, note)
}

// GET: /{noteID}
func getNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, ok := ownedNote(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, note)
}

// PUT: /{noteID}
func updateNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, ok := ownedNote(w, r)
	if !ok {
		return
	}

	var req models.UpdateNoteRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := repo.Repository.UpdateNote(r.Context(), note.ID, &req, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(note.UserID, "Editou uma nota", models.ActionNoteUpdate)

	writeJSON(w, r, http.StatusOK, updated)
}

// DELETE: /{noteID}
func deleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	note, ok := ownedNote(w, r)
	if !ok {
		return
	}

	if err := repo.Repository.DeleteNote(r.Context(), note.ID); err != nil {
		writeError(w, r, err)
		return
	}
	activity.Record(note.UserID, "Removeu uma nota", models.ActionNoteDelete)

	writeMessage(w, r, http.StatusOK, "nota removida")
}

// ownedNote loads the note in the URL and checks that the caller owns it.
func ownedNote(w http.ResponseWriter, r *http.Request) (*models.Note, bool) {
	id, ok := identity(w, r)
	if !ok {
		return nil, false
	}

	note, err := repo.Repository.GetNote(r.Context(), chi.URLParam(r, "noteID"))
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}
	if note.UserID != id.UserID {
		writeError(w, r, qerrors.PermissionDeniedError)
		return nil, false
	}
	return note, true
}
