package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/careerlift/resumeaudit/config"
)

func setCheckoutEnv(t *testing.T) {
	t.Helper()
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_abc")
	t.Setenv("STRIPE_PRICE_ID", "price_123")
	t.Setenv("PUBLIC_BASE_URL", "https://audit.example.com")
	t.Setenv("SUBMISSION_LIMIT", "50")
}

func postCheckout(c *CheckoutController) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/checkout", c.Create)
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckoutRedirectsToHostedPage(t *testing.T) {
	setCheckoutEnv(t)

	var gotPrice, gotSuccess, gotCancel string
	c := &CheckoutController{
		counter: &stubCounter{count: 10},
		createSession: func(ctx context.Context, priceID, successURL, cancelURL string) (string, string, error) {
			gotPrice, gotSuccess, gotCancel = priceID, successURL, cancelURL
			return "cs_test_42", "https://checkout.stripe.com/c/pay/cs_test_42", nil
		},
	}

	w := postCheckout(c)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_42", w.Header().Get("Location"))
	assert.Equal(t, "price_123", gotPrice)
	assert.Equal(t, "https://audit.example.com/upload?session_id={CHECKOUT_SESSION_ID}", gotSuccess)
	assert.Equal(t, "https://audit.example.com/?canceled=1", gotCancel)
}

func TestCheckoutMissingPaymentConfig(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("STRIPE_SECRET_KEY", "")

	called := false
	c := &CheckoutController{
		counter: &stubCounter{},
		createSession: func(ctx context.Context, priceID, successURL, cancelURL string) (string, string, error) {
			called = true
			return "", "", nil
		},
	}

	w := postCheckout(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Server configuration error: missing payment settings."}`, w.Body.String())
	assert.False(t, called)
}

func TestCheckoutRefusedAtCapacity(t *testing.T) {
	setCheckoutEnv(t)

	called := false
	c := &CheckoutController{
		counter: &stubCounter{count: 50},
		createSession: func(ctx context.Context, priceID, successURL, cancelURL string) (string, string, error) {
			called = true
			return "", "", nil
		},
	}

	w := postCheckout(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t,
		`{"error":"submission limit reached","message":"The beta is full. Submissions are closed for now."}`,
		w.Body.String())
	assert.False(t, called)
}

func TestCheckoutProceedsWhenCounterUnavailable(t *testing.T) {
	setCheckoutEnv(t)

	c := &CheckoutController{
		counter: &stubCounter{readErr: errors.New("db down")},
		createSession: func(ctx context.Context, priceID, successURL, cancelURL string) (string, string, error) {
			return "cs_test_1", "https://checkout.stripe.com/c/pay/cs_test_1", nil
		},
	}

	w := postCheckout(c)

	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestCheckoutSessionCreationFailure(t *testing.T) {
	setCheckoutEnv(t)

	c := &CheckoutController{
		counter: &stubCounter{count: 1},
		createSession: func(ctx context.Context, priceID, successURL, cancelURL string) (string, string, error) {
			return "", "", errors.New("stripe unavailable")
		},
	}

	w := postCheckout(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred. Please try again later."}`, w.Body.String())
}
