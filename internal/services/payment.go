package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sark-Rakib/e-tuition-bd-server/internal/config"
	"github.com/Sark-Rakib/e-tuition-bd-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const stripeAPIBase = "https://api.stripe.com"

// CheckoutRequest is the body of POST /create-checkout-session.
// ExpectedSalary is a numeric string in major units.
type CheckoutRequest struct {
	ExpectedSalary string `json:"expectedSalary" validate:"required"`
	TutorName      string `json:"tutorName" validate:"required"`
	TutorEmail     string `json:"tutorEmail" validate:"required,email"`
	TutorID        string `json:"tutorId" validate:"required"`
}

// WebhookEvent is the subset of a Stripe event the webhook cares about.
type WebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

type PaymentService struct {
	collection *mongo.Collection
	secretKey  string
	clientURL  string
	apiBase    string
	httpClient *http.Client
}

func NewPaymentService(db *mongo.Database, cfg *config.Config) *PaymentService {
	return &PaymentService{
		collection: db.Collection("payments"),
		secretKey:  cfg.StripeSecretKey,
		clientURL:  cfg.ClientBaseURL,
		apiBase:    stripeAPIBase,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AmountFromSalary converts a major-unit salary string into integer minor
// units (x100). Rounded, not truncated: 4.35 in float64 is slightly below
// 4.35 and would otherwise charge a cent short.
func AmountFromSalary(salary string) (int64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(salary), 64)
	if err != nil || value <= 0 {
		return 0, ErrInvalidAmount
	}
	return int64(math.Round(value * 100)), nil
}

// checkoutParams builds the form body for a single-line-item, quantity-one
// hosted checkout session.
func checkoutParams(req CheckoutRequest, amount int64, clientURL string) url.Values {
	params := url.Values{}
	params.Set("mode", "payment")
	params.Set("success_url", clientURL+"/payment/success")
	params.Set("cancel_url", clientURL+"/payment/cancel")
	params.Set("customer_email", req.TutorEmail)
	params.Set("line_items[0][quantity]", "1")
	params.Set("line_items[0][price_data][currency]", "usd")
	params.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(amount, 10))
	params.Set("line_items[0][price_data][product_data][name]", req.TutorName)
	params.Set("metadata[tutorId]", req.TutorID)
	params.Set("metadata[tutorEmail]", req.TutorEmail)
	return params
}

// CreateCheckoutSession creates a hosted checkout session at the gateway,
// persists the payment as unpaid and returns it with the redirect URL set.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	amount, err := AmountFromSalary(req.ExpectedSalary)
	if err != nil {
		return nil, err
	}

	if s.secretKey == "" {
		log.Printf("STRIPE_SECRET_KEY environment variable not set")
		return nil, fmt.Errorf("STRIPE_SECRET_KEY not set")
	}

	body := checkoutParams(req, amount, s.clientURL).Encode()

	var resp *http.Response
	for retries := 3; retries > 0; retries-- {
		httpReq, err := http.NewRequestWithContext(ctx, "POST", s.apiBase+"/v1/checkout/sessions", strings.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create session request: %v", err)
		}
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		httpReq.SetBasicAuth(s.secretKey, "")

		resp, err = s.httpClient.Do(httpReq)
		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}
		if err != nil {
			log.Printf("Checkout session request failed (attempt %d): %v", 4-retries, err)
			if retries == 1 {
				return nil, fmt.Errorf("checkout session creation failed: %v", err)
			}
		} else {
			respBody, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			log.Printf("Checkout session request failed with status %d (attempt %d): %s", resp.StatusCode, 4-retries, string(respBody))
			if retries == 1 {
				return nil, fmt.Errorf("checkout session creation failed with status %d", resp.StatusCode)
			}
		}
		time.Sleep(time.Second * time.Duration(3-retries))
	}
	defer resp.Body.Close()

	var sessionResp struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %v", err)
	}
	if sessionResp.URL == "" {
		return nil, fmt.Errorf("no redirect URL in session response")
	}

	payment := &models.Payment{
		ID:          primitive.NewObjectID(),
		SessionID:   sessionResp.ID,
		TutorID:     req.TutorID,
		TutorName:   req.TutorName,
		TutorEmail:  req.TutorEmail,
		Amount:      amount,
		Currency:    "usd",
		Status:      models.PaymentUnpaid,
		CheckoutURL: sessionResp.URL,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if _, err := s.collection.InsertOne(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	log.Printf("Checkout session created: session=%s, tutor=%s, amount=%d", payment.SessionID, payment.TutorEmail, payment.Amount)
	return payment, nil
}

// HandleWebhook flips the payment matching the event's session id to its
// terminal status. Unrecognized event types are acknowledged and ignored.
func (s *PaymentService) HandleWebhook(ctx context.Context, event WebhookEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var status string
	switch event.Type {
	case "checkout.session.completed":
		status = models.PaymentPaid
	case "checkout.session.expired":
		status = models.PaymentExpired
	default:
		log.Printf("Unhandled webhook event type: %s", event.Type)
		return nil
	}

	sessionID := event.Data.Object.ID
	if sessionID == "" {
		return fmt.Errorf("missing session id in webhook event")
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"sessionId": sessionID}, bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update payment for session %s: %w", sessionID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}

	log.Printf("Payment for session %s moved to %s", sessionID, status)
	return nil
}

// ListByTutorEmail returns payments newest first; empty email returns all.
func (s *PaymentService) ListByTutorEmail(ctx context.Context, email string) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if email != "" {
		filter["tutorEmail"] = email
	}

	cur, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	// non-nil so an empty listing encodes as [] rather than null
	payments := []models.Payment{}
	defer cur.Close(ctx)
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}

	return payments, nil
}
