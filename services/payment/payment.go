// Package payment wraps the Stripe calls the subscription flow needs:
// starting a checkout session and opening the billing portal.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	billingportalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"

	"booklyo/models"
	"booklyo/services/audit"
)

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.PaymentSession, error)
	CreatePortalSession(ctx context.Context, req models.PortalSessionRequest) (*models.PaymentSession, error)
}

type DefaultPaymentService struct {
	Audit  audit.AuditService
	Logger *zap.Logger

	// Fallback URLs from config, used when the request leaves them blank.
	SuccessURL string
	CancelURL  string
	ReturnURL  string
}

// CreateCheckoutSession opens a Stripe subscription checkout for the
// given price. The customer record is keyed by email; Stripe dedupes on
// its side.
func (s *DefaultPaymentService) CreateCheckoutSession(ctx context.Context, req models.CheckoutSessionRequest) (*models.PaymentSession, error) {
	if req.PriceID == "" {
		return nil, fmt.Errorf("price id is required")
	}
	successURL := req.SuccessURL
	if successURL == "" {
		successURL = s.SuccessURL
	}
	cancelURL := req.CancelURL
	if cancelURL == "" {
		cancelURL = s.CancelURL
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(req.PriceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	if req.UserID != "" {
		params.ClientReferenceID = stripe.String(req.UserID)
	}
	params.Context = ctx

	sess, err := checkoutsession.New(params)
	if err != nil {
		s.Logger.Error("stripe checkout session failed",
			zap.String("priceId", req.PriceID),
			zap.Error(err))
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.Audit.Log(ctx, models.AuditCheckoutStarted, models.AuditSeverityInfo, req.UserID, map[string]any{
		"priceId":   req.PriceID,
		"sessionId": sess.ID,
	})
	return &models.PaymentSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// CreatePortalSession opens the Stripe billing portal for an existing
// customer so they can manage or cancel their subscription.
func (s *DefaultPaymentService) CreatePortalSession(ctx context.Context, req models.PortalSessionRequest) (*models.PaymentSession, error) {
	if req.CustomerID == "" {
		return nil, fmt.Errorf("customer id is required")
	}
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = s.ReturnURL
	}

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(req.CustomerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	sess, err := billingportalsession.New(params)
	if err != nil {
		s.Logger.Error("stripe portal session failed",
			zap.String("customerId", req.CustomerID),
			zap.Error(err))
		return nil, fmt.Errorf("create portal session: %w", err)
	}
	return &models.PaymentSession{SessionID: sess.ID, URL: sess.URL}, nil
}
