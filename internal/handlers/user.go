package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Sark-Rakib/e-tuition-bd-server/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// UserStore is implemented by services.UserService.
type UserStore interface {
	UserList(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) (string, bool, error)
	RoleByEmail(ctx context.Context, email string) (string, error)
	SetRole(ctx context.Context, id, role string) error
	EnsureAdmin(ctx context.Context, email string) error
}

type UserHandler struct {
	store    UserStore
	validate *validator.Validate
}

func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store, validate: validator.New()}
}

func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.UserList(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// CreateUser is idempotent on email: an existing user is reported, not
// modified.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&user); err != nil {
		respondMessage(w, http.StatusBadRequest, "a valid email is required")
		return
	}

	id, created, err := h.store.CreateUser(r.Context(), &user)
	if err != nil {
		respondError(w, err)
		return
	}
	if !created {
		respondJSON(w, http.StatusOK, map[string]string{"message": "user exists"})
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *UserHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	role, err := h.store.RoleByEmail(r.Context(), email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"role": role})
}

func (h *UserHandler) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleAdmin)
}

func (h *UserHandler) RemoveAdmin(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleUser)
}

// setRole promotes or demotes the user named by id. The body carries the
// acting admin's email, which must resolve to an admin role.
func (h *UserHandler) setRole(w http.ResponseWriter, r *http.Request, role string) {
	id := mux.Vars(r)["id"]

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.store.EnsureAdmin(r.Context(), body.Email); err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.SetRole(r.Context(), id, role); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"success": true, "role": role})
}
