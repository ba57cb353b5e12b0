// Package payments wraps the Stripe hosted-checkout session API behind the
// two narrow operations the intake workflow needs: creating a session and
// reading back its payment status. The provider owns the session lifecycle;
// this package never mutates a session after creation.
package payments

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// Client is a stateless handle to the payment provider, constructed per
// request from configuration.
type Client struct {
	api *client.API
}

// New builds a Client for the given secret key.
func New(secretKey string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{api: api}
}

// CheckoutSessionIDPlaceholder is substituted by the provider with the real
// session id when it redirects the buyer back to the success URL.
const CheckoutSessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// CreateCheckoutSession creates a single-payment checkout session for one
// unit of the given price and returns its id and hosted checkout URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL string) (string, string, error) {
	params := &stripe.CheckoutSessionParams{
		Params: stripe.Params{Context: ctx},
		Mode:   stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", "", fmt.Errorf("create checkout session: %w", err)
	}
	return s.ID, s.URL, nil
}

// VerifySession retrieves a session by id and reports whether it is paid.
// A lookup failure is an error; an unpaid session is (false, nil).
func (c *Client) VerifySession(ctx context.Context, sessionID string) (bool, error) {
	params := &stripe.CheckoutSessionParams{Params: stripe.Params{Context: ctx}}
	s, err := c.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return false, fmt.Errorf("retrieve checkout session: %w", err)
	}
	return s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid, nil
}
