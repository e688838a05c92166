package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booklyo/middleware"
	"booklyo/models"
	"booklyo/services/establishment"
	"booklyo/services/payment"
	"booklyo/utils"
)

// CreateCheckoutSession starts a Stripe subscription checkout and
// returns the hosted checkout URL.
func CreateCheckoutSession(svc payment.PaymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email      string `json:"email"`
			Name       string `json:"name"`
			PriceID    string `json:"priceId"`
			SuccessURL string `json:"successUrl"`
			CancelURL  string `json:"cancelUrl"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		sess, err := svc.CreateCheckoutSession(c.Request.Context(), models.CheckoutSessionRequest{
			UserID:     middleware.UID(c),
			Email:      input.Email,
			Name:       input.Name,
			PriceID:    input.PriceID,
			SuccessURL: input.SuccessURL,
			CancelURL:  input.CancelURL,
		})
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to create checkout session", err.Error())
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// CreatePortalSession opens the Stripe billing portal for the caller's
// Stripe customer. When the request omits customerId, the id stored on
// the caller's establishment is used.
func CreatePortalSession(svc payment.PaymentService, estSvc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CustomerID string `json:"customerId"`
			ReturnURL  string `json:"returnUrl"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		if input.CustomerID == "" {
			est, err := estSvc.GetByOwnerUID(c.Request.Context(), middleware.UID(c))
			if err != nil || est.StripeCustomerID == "" {
				utils.JSONError(c, http.StatusBadRequest, "no Stripe customer on file", "")
				return
			}
			input.CustomerID = est.StripeCustomerID
		}

		sess, err := svc.CreatePortalSession(c.Request.Context(), models.PortalSessionRequest{
			CustomerID: input.CustomerID,
			ReturnURL:  input.ReturnURL,
		})
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "failed to create portal session", err.Error())
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}
