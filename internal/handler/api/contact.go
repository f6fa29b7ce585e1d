// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jadofils/company-portifolio/internal/model"
	"github.com/jadofils/company-portifolio/internal/service"
	"github.com/jadofils/company-portifolio/internal/store"
)

// contactPolicy strips all markup: inquiries are plain text.
var contactPolicy = bluemonday.StrictPolicy()

func sanitizeContactField(s string) string {
	return strings.TrimSpace(contactPolicy.Sanitize(s))
}

// ContactMessageResponse represents a contact message in API responses.
type ContactMessageResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func messageToResponse(m store.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Company:   m.Company,
		Message:   m.Message,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

// ContactRequest is the public request body for submitting a message.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Message string `json:"message"`
}

const maxMessageLength = 10000

// SubmitContact accepts a contact form submission from the public site.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	req.Name = sanitizeContactField(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = sanitizeContactField(req.Message)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fieldErrors["email"] = "A valid email address is required"
	}
	if req.Message == "" {
		fieldErrors["message"] = "Message is required"
	} else if len(req.Message) > maxMessageLength {
		fieldErrors["message"] = "Message is too long"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	msg, err := h.queries.CreateContactMessage(r.Context(), store.CreateContactMessageParams{
		Name:      req.Name,
		Email:     req.Email,
		Company:   sanitizeContactField(req.Company),
		Message:   req.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to store contact message", "error", err)
		WriteInternalError(w, "Failed to submit message")
		return
	}

	h.audit.Record(r.Context(), service.Entry{
		Table: model.TableContactMessages, RecordID: msg.ID,
		Action: model.ChangeActionCreate, NewData: msg,
	})
	WriteCreated(w, messageToResponse(msg))
}

// ListContactMessages returns contact messages for the admin panel,
// optionally filtered by status.
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	var (
		rows []store.ContactMessage
		err  error
	)
	if status == "" {
		rows, err = h.queries.ListContactMessages(r.Context())
	} else if !model.IsValidMessageStatus(status) {
		WriteBadRequest(w, "Unknown message status", nil)
		return
	} else {
		rows, err = h.queries.ListContactMessagesByStatus(r.Context(), status)
	}
	if err != nil {
		slog.Error("failed to list contact messages", "error", err)
		WriteInternalError(w, "Failed to list messages")
		return
	}

	unread, err := h.queries.CountContactMessagesByStatus(r.Context(), model.MessageStatusUnread)
	if err != nil {
		slog.Warn("failed to count unread messages", "error", err)
	}

	out := make([]ContactMessageResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, messageToResponse(row))
	}
	WriteSuccess(w, out, &Meta{Total: unread})
}

// UpdateMessageStatusRequest is the request body for marking a message
// read or unread.
type UpdateMessageStatusRequest struct {
	Status string `json:"status"`
}

// UpdateContactMessageStatus marks a message read or unread. Messages
// are never deleted.
func (h *Handler) UpdateContactMessageStatus(w http.ResponseWriter, r *http.Request) {
	msg, ok := requireEntityByID(w, r, "message", func(id int64) (store.ContactMessage, error) {
		return h.queries.GetContactMessageByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UpdateMessageStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if !model.IsValidMessageStatus(req.Status) {
		WriteValidationError(w, map[string]string{"status": "Status must be read or unread"})
		return
	}

	err := h.queries.UpdateContactMessageStatus(r.Context(), store.UpdateContactMessageStatusParams{
		ID:     msg.ID,
		Status: req.Status,
	})
	if err != nil {
		slog.Error("failed to update message status", "id", msg.ID, "error", err)
		WriteInternalError(w, "Failed to update message")
		return
	}

	h.audit.Record(r.Context(), service.Entry{
		Table: model.TableContactMessages, RecordID: msg.ID,
		Action:  model.ChangeActionStatusChange,
		OldData: map[string]string{"status": msg.Status},
		NewData: map[string]string{"status": req.Status},
		UserID:  currentUserID(r),
	})

	msg.Status = req.Status
	WriteSuccess(w, messageToResponse(msg), nil)
}
