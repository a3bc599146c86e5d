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

// TutorStore is implemented by services.TutorService.
type TutorStore interface {
	Create(ctx context.Context, tutor *models.Tutor) (string, error)
	List(ctx context.Context) ([]models.Tutor, error)
	ListByEmail(ctx context.Context, email string) ([]models.Tutor, error)
	Get(ctx context.Context, id string) (*models.Tutor, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
}

type TutorHandler struct {
	store    TutorStore
	users    RoleStore
	validate *validator.Validate
}

func NewTutorHandler(store TutorStore, users RoleStore) *TutorHandler {
	return &TutorHandler{store: store, users: users, validate: validator.New()}
}

// Create inserts a tutor profile. Side effect: the tutor's user document
// gets role "tutor" (created if absent).
func (h *TutorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var tutor models.Tutor
	if err := json.NewDecoder(r.Body).Decode(&tutor); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&tutor); err != nil {
		respondMessage(w, http.StatusBadRequest, "tutorEmail is required")
		return
	}
	if tutor.Status == "" {
		tutor.Status = models.StatusPending
	}

	id, err := h.store.Create(r.Context(), &tutor)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.users.UpsertRole(r.Context(), tutor.TutorEmail, models.RoleTutor); err != nil {
		log.Printf("Failed to set tutor role for %s: %v", tutor.TutorEmail, err)
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *TutorHandler) List(w http.ResponseWriter, r *http.Request) {
	tutors, err := h.store.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tutors)
}

// Applications lists the tutor profiles filed by one tutor; profiles double
// as applications, so this is a filtered view over the tutors collection.
func (h *TutorHandler) Applications(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	tutors, err := h.store.ListByEmail(r.Context(), email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tutors)
}

func (h *TutorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	tutor, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tutor)
}

func (h *TutorHandler) Update(w http.ResponseWriter, r *http.Request) {
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

func (h *TutorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

func (h *TutorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, models.StatusApproved)
}

func (h *TutorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, models.StatusRejected)
}

func (h *TutorHandler) moderate(w http.ResponseWriter, r *http.Request, status string) {
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
