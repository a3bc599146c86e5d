package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Sark-Rakib/e-tuition-bd-server/internal/models"
	"github.com/Sark-Rakib/e-tuition-bd-server/internal/services"
	"github.com/go-playground/validator/v10"
)

// PaymentStore is implemented by services.PaymentService.
type PaymentStore interface {
	CreateCheckoutSession(ctx context.Context, req services.CheckoutRequest) (*models.Payment, error)
	HandleWebhook(ctx context.Context, event services.WebhookEvent) error
	ListByTutorEmail(ctx context.Context, email string) ([]models.Payment, error)
}

type PaymentHandler struct {
	store        PaymentStore
	webhookToken string
	validate     *validator.Validate
}

func NewPaymentHandler(store PaymentStore, webhookToken string) *PaymentHandler {
	return &PaymentHandler{store: store, webhookToken: webhookToken, validate: validator.New()}
}

// CreateCheckoutSession returns the gateway's redirect URL for hiring the
// named tutor at their expected salary.
func (h *PaymentHandler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req services.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "expectedSalary, tutorName, tutorEmail and tutorId are required")
		return
	}

	payment, err := h.store.CreateCheckoutSession(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"url": payment.CheckoutURL})
}

// Webhook accepts gateway callbacks guarded by a shared token header.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("x-webhook-token") != h.webhookToken {
		respondMessage(w, http.StatusUnauthorized, "unauthorized webhook")
		return
	}

	var event services.WebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}

	if err := h.store.HandleWebhook(r.Context(), event); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	payments, err := h.store.ListByTutorEmail(r.Context(), email)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, payments)
}
