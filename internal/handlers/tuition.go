package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Sark-Rakib/e-tuition-bd-server/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// TuitionStore is implemented by services.TuitionService.
type TuitionStore interface {
	Create(ctx context.Context, tuition *models.Tuition) (string, error)
	List(ctx context.Context) ([]models.Tuition, error)
	ListByStudent(ctx context.Context, email string) ([]models.Tuition, error)
	ListPending(ctx context.Context) ([]models.Tuition, error)
	Get(ctx context.Context, id string) (*models.Tuition, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
}

// RoleStore is the slice of the user service the posting handlers need for
// the admin guard and the role side effects.
type RoleStore interface {
	EnsureAdmin(ctx context.Context, email string) error
	FillRole(ctx context.Context, email, role string) error
	UpsertRole(ctx context.Context, email, role string) error
}

type TuitionHandler struct {
	store    TuitionStore
	users    RoleStore
	validate *validator.Validate
}

func NewTuitionHandler(store TuitionStore, users RoleStore) *TuitionHandler {
	return &TuitionHandler{store: store, users: users, validate: validator.New()}
}

// Create inserts a tuition posting. A posting without a status starts
// Pending. Side effect: a student user with no role yet gets "student".
func (h *TuitionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var tuition models.Tuition
	if err := json.NewDecoder(r.Body).Decode(&tuition); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&tuition); err != nil {
		respondMessage(w, http.StatusBadRequest, "studentEmail and subject are required")
		return
	}
	if tuition.Status == "" {
		tuition.Status = models.StatusPending
	}

	id, err := h.store.Create(r.Context(), &tuition)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.users.FillRole(r.Context(), tuition.StudentEmail, models.RoleStudent); err != nil {
		log.Printf("Failed to set student role for %s: %v", tuition.StudentEmail, err)
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *TuitionHandler) List(w http.ResponseWriter, r *http.Request) {
	tuitions, err := h.store.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tuitions)
}

func (h *TuitionHandler) ListByStudent(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	tuitions, err := h.store.ListByStudent(r.Context(), email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tuitions)
}

// ListPending is admin-only; the caller identifies itself with ?email=.
func (h *TuitionHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	if err := h.users.EnsureAdmin(r.Context(), email); err != nil {
		respondError(w, err)
		return
	}

	tuitions, err := h.store.ListPending(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tuitions)
}

func (h *TuitionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	tuition, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tuition)
}

func (h *TuitionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(fields) == 0 {
		respondMessage(w, http.StatusBadRequest, "empty update")
		return
	}

	if err := h.store.Update(r.Context(), id, fields); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *TuitionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *TuitionHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, models.StatusApproved)
}

func (h *TuitionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, models.StatusRejected)
}

// moderate applies the admin guard, then moves the posting's status.
func (h *TuitionHandler) moderate(w http.ResponseWriter, r *http.Request, status string) {
	id := mux.Vars(r)["id"]

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.users.EnsureAdmin(r.Context(), body.Email); err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.SetStatus(r.Context(), id, status); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "status": status})
}
