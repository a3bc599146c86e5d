package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sark-Rakib/e-tuition-bd-server/internal/models"
	"github.com/Sark-Rakib/e-tuition-bd-server/internal/services"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTutorStore struct {
	tutors map[string]*models.Tutor
}

func newFakeTutorStore() *fakeTutorStore {
	return &fakeTutorStore{tutors: map[string]*models.Tutor{}}
}

func (f *fakeTutorStore) seed(email string) *models.Tutor {
	tutor := &models.Tutor{
		ID:         primitive.NewObjectID(),
		TutorEmail: email,
		Status:     models.StatusPending,
		PostedAt:   time.Now(),
	}
	f.tutors[tutor.ID.Hex()] = tutor
	return tutor
}

func (f *fakeTutorStore) Create(ctx context.Context, tutor *models.Tutor) (string, error) {
	tutor.ID = primitive.NewObjectID()
	tutor.PostedAt = time.Now()
	f.tutors[tutor.ID.Hex()] = tutor
	return tutor.ID.Hex(), nil
}

func (f *fakeTutorStore) List(ctx context.Context) ([]models.Tutor, error) {
	out := []models.Tutor{}
	for _, tu := range f.tutors {
		out = append(out, *tu)
	}
	return out, nil
}

func (f *fakeTutorStore) ListByEmail(ctx context.Context, email string) ([]models.Tutor, error) {
	out := []models.Tutor{}
	for _, tu := range f.tutors {
		if email == "" || tu.TutorEmail == email {
			out = append(out, *tu)
		}
	}
	return out, nil
}

func (f *fakeTutorStore) Get(ctx context.Context, id string) (*models.Tutor, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, services.ErrInvalidID
	}
	tutor, ok := f.tutors[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	return tutor, nil
}

func (f *fakeTutorStore) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return services.ErrInvalidID
	}
	if _, ok := f.tutors[id]; !ok {
		return services.ErrNotFound
	}
	return nil
}

func (f *fakeTutorStore) Delete(ctx context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return services.ErrInvalidID
	}
	if _, ok := f.tutors[id]; !ok {
		return services.ErrNotFound
	}
	delete(f.tutors, id)
	return nil
}

func (f *fakeTutorStore) SetStatus(ctx context.Context, id, status string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return services.ErrInvalidID
	}
	tutor, ok := f.tutors[id]
	if !ok {
		return services.ErrNotFound
	}
	tutor.Status = status
	if status == models.StatusApproved {
		now := time.Now()
		tutor.ApprovedAt = &now
	}
	return nil
}

func tutorRouter(h *TutorHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/tutors", h.Create).Methods("POST")
	r.HandleFunc("/tutors", h.List).Methods("GET")
	r.HandleFunc("/tutors/{id}", h.Get).Methods("GET")
	r.HandleFunc("/tutors/{id}", h.Delete).Methods("DELETE")
	r.HandleFunc("/tutors/{id}/approve", h.Approve).Methods("PATCH")
	r.HandleFunc("/tutor/{id}/approve", h.Approve).Methods("PATCH")
	r.HandleFunc("/applications", h.Applications).Methods("GET")
	return r
}

func TestCreateTutorUpsertsRole(t *testing.T) {
	store := newFakeTutorStore()
	roles := newFakeRoleStore()
	router := tutorRouter(NewTutorHandler(store, roles))

	rec := postJSON(t, router, "POST", "/tutors", map[string]string{
		"tutorEmail": "tutor@x.com",
		"tutorName":  "T",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, models.RoleTutor, roles.upserted["tutor@x.com"])
}

func TestApproveTutorLegacyPath(t *testing.T) {
	store := newFakeTutorStore()
	tutor := store.seed("tutor@x.com")
	router := tutorRouter(NewTutorHandler(store, newFakeRoleStore("admin@x.com")))

	// the singular /tutor path is an alias of /tutors
	rec := postJSON(t, router, "PATCH", "/tutor/"+tutor.ID.Hex()+"/approve", map[string]string{"email": "admin@x.com"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.StatusApproved, tutor.Status)
	assert.NotNil(t, tutor.ApprovedAt)
}

func TestApproveTutorRequiresAdmin(t *testing.T) {
	store := newFakeTutorStore()
	tutor := store.seed("tutor@x.com")
	router := tutorRouter(NewTutorHandler(store, newFakeRoleStore()))

	rec := postJSON(t, router, "PATCH", "/tutors/"+tutor.ID.Hex()+"/approve", map[string]string{"email": "tutor@x.com"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, models.StatusPending, tutor.Status)
}

func TestApplicationsFiltersByTutorEmail(t *testing.T) {
	store := newFakeTutorStore()
	store.seed("a@x.com")
	store.seed("a@x.com")
	store.seed("b@x.com")
	router := tutorRouter(NewTutorHandler(store, newFakeRoleStore()))

	req := httptest.NewRequest("GET", "/applications?email=a@x.com", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var apps []models.Tutor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apps))
	require.Len(t, apps, 2)
	for _, app := range apps {
		assert.Equal(t, "a@x.com", app.TutorEmail)
	}
}

func TestDeleteTutorMalformedID(t *testing.T) {
	router := tutorRouter(NewTutorHandler(newFakeTutorStore(), newFakeRoleStore()))

	req := httptest.NewRequest("DELETE", "/tutors/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
