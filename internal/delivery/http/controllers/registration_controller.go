package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"festregistry/internal/delivery/http/helpers"
	"festregistry/internal/domain"
	"festregistry/internal/validation"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterRequest is the request body for POST /register.
type RegisterRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	College string `json:"college"`
	Event   string `json:"event"`
}

// Validate sanitizes every field in place and returns a field->message map.
// All violations are collected; validation never stops at the first error.
func (r *RegisterRequest) Validate() map[string]string {
	r.Name = validation.Sanitize(r.Name)
	r.Email = validation.Sanitize(r.Email)
	r.Phone = validation.Sanitize(r.Phone)
	r.College = validation.Sanitize(r.College)
	r.Event = validation.Sanitize(r.Event)

	errs := map[string]string{}
	if !validation.MinLen(r.Name, 2) {
		errs["name"] = "name must be at least 2 characters"
	}
	if !validation.ValidEmail(r.Email) {
		errs["email"] = "invalid email format"
	}
	if !validation.ValidPhone(r.Phone) {
		errs["phone"] = "invalid phone number format"
	}
	if !validation.MinLen(r.College, 2) {
		errs["college"] = "college must be at least 2 characters"
	}
	if strings.TrimSpace(r.Event) == "" {
		errs["event"] = "event selection required"
	}
	return errs
}

// Register godoc
// @Summary Register for an event
// @Description Accepts a registration submission, enforces email uniqueness, and returns the assigned public identifier with the updated total-registration count.
// @Tags registration
// @Accept json
// @Produce json
// @Param body body controllers.RegisterRequest true "Registration fields"
// @Success 201 {object} helpers.APIResponse "code: REGISTRATION_SUCCESS"
// @Failure 400 {object} helpers.APIResponse "code: VALIDATION_FAILED, data.errors is a field->message map"
// @Failure 405 {object} helpers.APIResponse "code: METHOD_NOT_ALLOWED"
// @Failure 409 {object} helpers.APIResponse "code: DUPLICATE_EMAIL"
// @Failure 500 {object} helpers.APIResponse "code: DATABASE_ERROR"
// @Router /register [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		helpers.WriteError(w, http.StatusMethodNotAllowed,
			"registration only accepts POST requests", helpers.CodeMethodNotAllowed)
		return
	}

	var req RegisterRequest
	decodeBody(r, &req, func(form map[string]string) {
		req.Name = form["name"]
		req.Email = form["email"]
		req.Phone = form["phone"]
		req.College = form["college"]
		req.Event = form["event"]
	})

	if errs := req.Validate(); len(errs) > 0 {
		helpers.WriteErrorData(w, http.StatusBadRequest, "validation failed",
			map[string]any{"errors": errs}, helpers.CodeValidationFailed)
		return
	}

	input := domain.RegistrationInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		College:     req.College,
		EventKey:    req.Event,
		OriginAddr:  helpers.ClientAddr(r),
		OriginAgent: r.UserAgent(),
	}
	result, err := c.Service.Register(r.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			helpers.WriteError(w, http.StatusConflict,
				"this email is already registered", helpers.CodeDuplicateEmail)
			return
		}
		c.Logger.ErrorContext(r.Context(), "registration failed",
			"path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteError(w, http.StatusInternalServerError,
			"registration could not be completed, please try again", helpers.CodeDatabaseError)
		return
	}

	helpers.WriteSuccess(w, http.StatusCreated,
		"registration completed successfully", result, helpers.CodeRegistrationSuccess)
}

// decodeBody decodes a JSON request body into dest; when the body is not
// JSON it falls back to form values handed to fromForm, matching the
// original front-end which submits either encoding. The body is read once
// so both decoders see the same bytes.
func decodeBody(r *http.Request, dest any, fromForm func(map[string]string)) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		return
	}
	if err := json.Unmarshal(body, dest); err == nil {
		return
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return
	}
	form := make(map[string]string, len(values))
	for key := range values {
		form[key] = values.Get(key)
	}
	if len(form) > 0 {
		fromForm(form)
	}
}
