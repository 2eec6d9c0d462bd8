package controllers

import (
	"log/slog"
	"net/http"

	"festregistry/internal/delivery/http/helpers"
	"festregistry/internal/domain"
	"festregistry/internal/validation"
)

type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
}

func NewContactController(logger *slog.Logger, svc domain.ContactService) *ContactController {
	return &ContactController{
		Logger:  logger,
		Service: svc,
	}
}

// ContactRequest is the request body for POST /contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate sanitizes the fields in place and returns a field->message map.
func (r *ContactRequest) Validate() map[string]string {
	r.Name = validation.Sanitize(r.Name)
	r.Email = validation.Sanitize(r.Email)
	r.Subject = validation.Sanitize(r.Subject)
	r.Message = validation.Sanitize(r.Message)

	errs := map[string]string{}
	if !validation.MinLen(r.Name, 2) {
		errs["name"] = "name is required (minimum 2 characters)"
	}
	if !validation.ValidEmail(r.Email) {
		errs["email"] = "valid email is required"
	}
	if !validation.MinLen(r.Message, 10) {
		errs["message"] = "message must be at least 10 characters"
	}
	return errs
}

// Submit godoc
// @Summary Submit a contact message
// @Description Stores a contact-us message. Plain append; no uniqueness rules.
// @Tags contact
// @Accept json
// @Produce json
// @Param body body controllers.ContactRequest true "Contact fields"
// @Success 201 {object} helpers.APIResponse "code: CONTACT_SUCCESS"
// @Failure 400 {object} helpers.APIResponse "code: VALIDATION_FAILED"
// @Failure 405 {object} helpers.APIResponse "code: METHOD_NOT_ALLOWED"
// @Failure 500 {object} helpers.APIResponse "code: CONTACT_ERROR"
// @Router /contact [post]
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		helpers.WriteError(w, http.StatusMethodNotAllowed,
			"contact only accepts POST requests", helpers.CodeMethodNotAllowed)
		return
	}

	var req ContactRequest
	decodeBody(r, &req, func(form map[string]string) {
		req.Name = form["name"]
		req.Email = form["email"]
		req.Subject = form["subject"]
		req.Message = form["message"]
	})

	if errs := req.Validate(); len(errs) > 0 {
		helpers.WriteErrorData(w, http.StatusBadRequest, "validation failed",
			map[string]any{"errors": errs}, helpers.CodeValidationFailed)
		return
	}

	msg := &domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	id, err := c.Service.Submit(r.Context(), msg)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "contact submission failed",
			"path", r.URL.Path, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError,
			"message could not be stored, please try again", helpers.CodeContactError)
		return
	}

	helpers.WriteSuccess(w, http.StatusCreated,
		"message received, we will respond within 24 hours",
		map[string]any{"message_id": id, "status": "received"},
		helpers.CodeContactSuccess)
}
