package services

import (
	"context"
	"testing"

	"github.com/Sark-Rakib/e-tuition-bd-server/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestAmountFromSalary(t *testing.T) {
	tests := []struct {
		salary string
		want   int64
		ok     bool
	}{
		{"12000", 1200000, true},
		{"99.5", 9950, true},
		{" 150 ", 15000, true},
		// float64 puts these a hair under the exact value; truncation
		// would drop a cent
		{"4.35", 435, true},
		{"1.15", 115, true},
		{"99.99", 9999, true},
		{"0", 0, false},
		{"-50", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := AmountFromSalary(tt.salary)
		if tt.ok {
			require.NoError(t, err, "salary %q", tt.salary)
			assert.Equal(t, tt.want, got, "salary %q", tt.salary)
		} else {
			assert.ErrorIs(t, err, ErrInvalidAmount, "salary %q", tt.salary)
		}
	}
}

func TestCheckoutParams(t *testing.T) {
	req := CheckoutRequest{
		ExpectedSalary: "12000",
		TutorName:      "Jane Tutor",
		TutorEmail:     "jane@x.com",
		TutorID:        "abc123",
	}

	params := checkoutParams(req, 1200000, "https://app.example.com")

	assert.Equal(t, "payment", params.Get("mode"))
	assert.Equal(t, "1", params.Get("line_items[0][quantity]"))
	assert.Equal(t, "usd", params.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "1200000", params.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "Jane Tutor", params.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "jane@x.com", params.Get("customer_email"))
	assert.Equal(t, "abc123", params.Get("metadata[tutorId]"))
	assert.Equal(t, "https://app.example.com/payment/success", params.Get("success_url"))
	assert.Equal(t, "https://app.example.com/payment/cancel", params.Get("cancel_url"))
}

func TestPaymentListEmptyIsNotNil(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("empty collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "e-tuition-bd.payments", mtest.FirstBatch))

		svc := NewPaymentService(mt.DB, &config.Config{})
		payments, err := svc.ListByTutorEmail(context.Background(), "")
		require.NoError(mt, err)
		assert.NotNil(mt, payments)
		assert.Empty(mt, payments)
	})
}
