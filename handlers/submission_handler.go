package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gopkg.in/go-playground/validator.v9"

	"github.com/vincentbastille10/SpectraAIDirectory/helper"
	"github.com/vincentbastille10/SpectraAIDirectory/models"
	"github.com/vincentbastille10/SpectraAIDirectory/services"
)

// maxWebhookBody bounds webhook payload reads.
const maxWebhookBody = 2 << 20

type SubmissionHandler struct {
	submissionService services.SubmissionService
	Helper            *helper.HTTPHelper
}

func NewSubmissionHandler(submissionService services.SubmissionService, h *helper.HTTPHelper) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService, Helper: h}
}

// ShowForm describes the submission contract for clients rendering the form.
func (h *SubmissionHandler) ShowForm(c *gin.Context) {
	h.Helper.SendSuccess(c, "Submit a tool", gin.H{
		"required": []string{"name", "url"},
		"optional": []string{"short_description", "long_description", "logo_url", "category", "tags"},
		"method":   "POST",
		"action":   "/ajouter",
	})
}

// Submit validates the form, creates the draft and redirects the browser to
// the hosted payment page.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req models.SubmitToolRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	if err := h.Helper.Validate.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			h.Helper.SendValidationError(c, fieldErrors)
			return
		}
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	redirectURL, _, err := h.submissionService.Submit(req)
	if err != nil {
		var provider models.ErrorProvider
		switch {
		case errors.Is(err, services.ErrMissingFields):
			h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		case errors.As(err, &provider):
			h.Helper.SendProviderError(c, err.Error(), h.Helper.EmptyJsonMap())
		default:
			h.Helper.SendError(c, err.Error(), h.Helper.EmptyJsonMap(), 500, `databaseError`)
		}
		return
	}

	c.Redirect(http.StatusSeeOther, redirectURL)
}

// CheckoutSuccess is the browser-return confirmation endpoint.
func (h *SubmissionHandler) CheckoutSuccess(c *gin.Context) {
	sessionID := c.Query("session_id")
	rawToolID := c.Query("tool_id")

	if sessionID == "" || rawToolID == "" {
		c.String(http.StatusBadRequest, "Missing parameters.")
		return
	}

	toolID, err := strconv.ParseUint(rawToolID, 10, 32)
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid tool id.")
		return
	}

	tool, err := h.submissionService.ConfirmCheckout(sessionID, uint(toolID))
	if err != nil {
		var unconfirmed models.ErrorPaymentUnconfirmed
		var provider models.ErrorProvider
		switch {
		case errors.As(err, &unconfirmed):
			c.String(http.StatusBadRequest, "Payment not confirmed.")
		case errors.As(err, &provider):
			c.String(http.StatusInternalServerError, "Payment verification failed: %v", err)
		default:
			c.String(http.StatusInternalServerError, "Error: %v", err)
		}
		return
	}

	c.String(http.StatusOK, "Payment confirmed. %s is now published at /tool/%s", tool.Name, tool.Slug)
}

// CheckoutCancel deletes the draft the buyer walked away from.
func (h *SubmissionHandler) CheckoutCancel(c *gin.Context) {
	if raw := c.Query("tool_id"); raw != "" {
		if toolID, err := strconv.ParseUint(raw, 10, 32); err == nil {
			if _, err := h.submissionService.CancelCheckout(uint(toolID)); err != nil {
				c.String(http.StatusInternalServerError, "Error: %v", err)
				return
			}
		}
	}

	c.String(http.StatusOK, "Payment cancelled. Your tool has not been published.")
}

// Webhook receives asynchronous provider notifications.
func (h *SubmissionHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable payload")
		return
	}

	if err := h.submissionService.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); err != nil {
		c.String(http.StatusBadRequest, "webhook error: %v", err)
		return
	}

	c.String(http.StatusOK, "ok")
}
