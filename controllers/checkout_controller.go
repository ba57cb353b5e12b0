package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/careerlift/resumeaudit/admission"
	"github.com/careerlift/resumeaudit/config"
	"github.com/careerlift/resumeaudit/payments"
	"github.com/careerlift/resumeaudit/store"
	"github.com/careerlift/resumeaudit/utils"
)

// CheckoutController creates hosted checkout sessions and redirects the buyer
// to the provider's payment page.
type CheckoutController struct {
	counter       counterReader
	createSession func(ctx context.Context, priceID, successURL, cancelURL string) (id, url string, err error)
}

// NewCheckoutController wires the controller to the database counter and the
// Stripe session API. The payment client is built per request from config.
func NewCheckoutController(db *gorm.DB) *CheckoutController {
	return &CheckoutController{
		counter: store.NewCounter(db),
		createSession: func(ctx context.Context, priceID, successURL, cancelURL string) (string, string, error) {
			return payments.New(config.Get().StripeSecretKey).
				CreateCheckoutSession(ctx, priceID, successURL, cancelURL)
		},
	}
}

// Create handles POST /checkout: capacity gate, session creation, 303
// redirect to the hosted checkout URL.
//
// The capacity check here and the counter increment at upload time are
// deliberately not one transaction; a burst of concurrent checkouts can
// overshoot the limit. The cap is soft.
func (c *CheckoutController) Create(ctx *gin.Context) {
	cfg := config.Get()
	if !cfg.PaymentConfigured() || cfg.StripePriceID == "" || cfg.PublicBaseURL == "" {
		utils.Fail(ctx, http.StatusInternalServerError,
			"Server configuration error: missing payment settings.")
		return
	}

	count, err := c.counter.Read(ctx.Request.Context())
	if err != nil {
		// The gate is advisory; a counter outage should not block sales.
		if utils.Sugar != nil {
			utils.Sugar.Warnf("capacity pre-check skipped, counter read failed: %v", err)
		}
	} else if count >= int64(cfg.SubmissionLimit) {
		utils.FailWithMessage(ctx, http.StatusForbidden,
			admission.ErrCapacityExceeded.Error(),
			admission.UserMessage(admission.ErrCapacityExceeded))
		return
	}

	successURL := cfg.PublicBaseURL + "/upload?session_id=" + payments.CheckoutSessionIDPlaceholder
	cancelURL := cfg.PublicBaseURL + "/?canceled=1"

	id, checkoutURL, err := c.createSession(ctx.Request.Context(), cfg.StripePriceID, successURL, cancelURL)
	if err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Errorf("checkout session creation failed: %v", err)
		}
		utils.Fail(ctx, http.StatusInternalServerError, utils.GenericErrorMessage)
		return
	}

	if utils.Sugar != nil {
		utils.Sugar.Infof("checkout session created id=%s", id)
	}
	ctx.Redirect(http.StatusSeeOther, checkoutURL)
}
