// Package record contains all HTTP handlers for address-book records.
//
// Handlers follow the closure / factory pattern: each exported function
// receives its dependencies (storage) once at route registration and
// returns the http.HandlerFunc that serves every request.
//
//	router.HandleFunc("POST /api/records", record.New(storage))
//
// This package is the parsing layer for records: it turns raw JSON into a
// types.RecordInput, checks it with go-playground/validator, and builds
// the validated types.Record. Construction errors are reported back to the
// client unchanged.
package record

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/address-book/internal/storage"
	"github.com/aanand-mishra/address-book/internal/types"
	"github.com/aanand-mishra/address-book/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// View is the JSON shape of a stored record. Classes is a pointer so a
// student with no classes still encodes "classes": [] while a plain person
// has no classes key at all.
type View struct {
	ID      int64      `json:"id"`
	Kind    types.Kind `json:"kind"`
	Name    string     `json:"name"`
	Phone   string     `json:"phone"`
	Email   string     `json:"email"`
	Address string     `json:"address"`
	Tags    []string   `json:"tags"`
	Subject string     `json:"subject,omitempty"`
	Classes *[]string  `json:"classes,omitempty"`
	Summary string     `json:"summary"`
}

// NewView flattens a stored record for the client. Summary is the
// record's String form.
func NewView(stored storage.Stored) View {
	in := types.InputOf(stored.Record)

	var classes *[]string
	if in.Kind == types.KindStudent {
		list := in.Classes
		if list == nil {
			list = []string{}
		}
		classes = &list
	}

	return View{
		ID:      stored.ID,
		Kind:    in.Kind,
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
		Tags:    in.Tags,
		Subject: in.Subject,
		Classes: classes,
		Summary: stored.Record.String(),
	}
}

func newViews(stored []storage.Stored) []View {
	views := make([]View, 0, len(stored))
	for _, s := range stored {
		views = append(views, NewView(s))
	}
	return views
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/records
//
// Request body (JSON):
//
//	{ "kind": "student", "name": "Alex Yeo", "phone": "91234567",
//	  "email": "alex@example.com", "address": "123 Clementi Rd",
//	  "tags": [], "subject": "Math", "classes": ["Math101"] }
//
// Success response (201 Created):
//
//	{ "id": 1 }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, failed validation
//	409 Conflict     — an equal record already exists
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a record")

		rec, ok := decodeRecord(w, r)
		if !ok {
			return
		}

		lastID, err := store.CreateRecord(rec)
		if err != nil {
			writeStorageError(w, err)
			return
		}

		slog.Info("record created",
			slog.Int64("id", lastID),
			slog.String("kind", string(rec.Kind())))

		response.WriteJSON(w, http.StatusCreated, map[string]int64{"id": lastID})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/records/{id}
//
// Error responses:
//
//	400 Bad Request  — id is not a valid integer
//	404 Not Found    — no record with that id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a record", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		stored, err := store.GetRecordByID(intID)
		if err != nil {
			slog.Error("error getting record",
				slog.String("id", id),
				slog.String("error", err.Error()))
			writeStorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, NewView(stored))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/records and GET /api/records?tag=<name>
//
// Returns an empty array [] (not null) when nothing matches.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			stored []storage.Stored
			err    error
		)

		if raw := r.URL.Query().Get("tag"); raw != "" {
			slog.Info("finding records by tag", slog.String("tag", raw))

			tag, tagErr := types.NewTag(raw)
			if tagErr != nil {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(tagErr))
				return
			}
			stored, err = store.FindByTag(tag)
		} else {
			slog.Info("getting all records")
			stored, err = store.GetRecords()
		}

		if err != nil {
			slog.Error("error listing records", slog.String("error", err.Error()))
			writeStorageError(w, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, newViews(stored))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/records/{id}
// Replaces the whole record; the kind may change.
//
// Success response (200 OK) — the updated record view.
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a record", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		rec, ok := decodeRecord(w, r)
		if !ok {
			return
		}

		updated, err := store.UpdateRecordByID(intID, rec)
		if err != nil {
			slog.Error("error updating record",
				slog.String("id", id),
				slog.String("error", err.Error()))
			writeStorageError(w, err)
			return
		}

		slog.Info("record updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, NewView(updated))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/records/{id}
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a record", slog.String("id", id))

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		if err := store.DeleteRecordByID(intID); err != nil {
			slog.Error("error deleting record",
				slog.String("id", id),
				slog.String("error", err.Error()))
			writeStorageError(w, err)
			return
		}

		slog.Info("record deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

func parseID(w http.ResponseWriter, id string) (int64, bool) {
	intID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("invalid id: must be an integer")))
		return 0, false
	}
	return intID, true
}

// decodeRecord reads the request body into a validated types.Record.
// On failure it has already written a 400 response.
func decodeRecord(w http.ResponseWriter, r *http.Request) (types.Record, bool) {
	var in types.RecordInput

	err := json.NewDecoder(r.Body).Decode(&in)
	if errors.Is(err, io.EOF) {
		response.WriteJSON(w, http.StatusBadRequest,
			response.GeneralError(errors.New("request body is empty")))
		return nil, false
	}
	if err != nil {
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return nil, false
	}

	if err := types.Validator().Struct(in); err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(validateErrs))
		} else {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		}
		return nil, false
	}

	rec, err := types.Build(in)
	if err != nil {
		slog.Debug("rejecting record", slog.String("error", err.Error()))
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return nil, false
	}

	return rec, true
}

func writeStorageError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicate):
		status = http.StatusConflict
	}
	response.WriteJSON(w, status, response.GeneralError(err))
}
