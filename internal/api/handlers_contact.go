package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/giralt/sitecms/internal/email"
)

// Mailer relays contact-form submissions.
type Mailer interface {
	SendContactMessage(msg email.ContactMessage) error
}

// ContactHandler holds the contact-form handler.
type ContactHandler struct {
	mailer Mailer // nil when SMTP is not configured
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(mailer Mailer) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	if h.mailer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody("contact form is not configured"))
		return
	}

	if err := h.mailer.SendContactMessage(email.ContactMessage{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ProjectType: req.ProjectType,
		Message:     req.Message,
	}); err != nil {
		slog.Error("contact relay failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, errorBody("failed to send message"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message sent successfully",
	})
}
