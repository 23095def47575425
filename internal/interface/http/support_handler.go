package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/wellness-hub/internal/domain/appointment"
	"github.com/yanqian/wellness-hub/internal/domain/companion"
	"github.com/yanqian/wellness-hub/internal/domain/feedback"
	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
)

// SubmitFeedback stores a feedback entry.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var req feedback.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	entry, err := h.feedbackSvc.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "feedback_failed")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListFeedback returns the caller's own feedback.
func (h *Handler) ListFeedback(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.feedbackSvc.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "feedback_failed")
		return
	}
	c.JSON(http.StatusOK, items(entries))
}

// ListAllFeedback returns every entry to admins.
func (h *Handler) ListAllFeedback(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.feedbackSvc.ListAll(c.Request.Context(), claims.Email)
	if err != nil {
		h.fail(c, err, "feedback_failed")
		return
	}
	c.JSON(http.StatusOK, items(entries))
}

// Chat answers a companion message. A model failure still carries the
// fallback reply in the body.
func (h *Handler) Chat(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var req companion.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.companionSvc.Reply(c.Request.Context(), claims.UserID, req)
	if err != nil {
		if apperrors.IsCode(err, "llm_error") {
			h.logger.Warn("serving companion fallback", "userId", claims.UserID, "error", err)
			c.JSON(http.StatusBadGateway, resp)
			return
		}
		h.fail(c, err, "chat_failed")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Counselors lists the counselor directory with slots and reasons.
func (h *Handler) Counselors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"items":   h.appointmentSvc.Counselors(c.Request.Context()),
		"slots":   appointment.Slots,
		"reasons": appointment.Reasons,
	})
}

// OpenSlots lists the free slots for a counselor on ?date=YYYY-MM-DD.
func (h *Handler) OpenSlots(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid counselor id", err))
		return
	}
	slots, err := h.appointmentSvc.OpenSlots(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		h.fail(c, err, "appointment_failed")
		return
	}
	c.JSON(http.StatusOK, items(slots))
}

// BookAppointment books a counselor session.
func (h *Handler) BookAppointment(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var req appointment.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	appt, err := h.appointmentSvc.Book(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "appointment_failed")
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// ListAppointments returns the caller's bookings, soonest first.
func (h *Handler) ListAppointments(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	appts, err := h.appointmentSvc.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "appointment_failed")
		return
	}
	c.JSON(http.StatusOK, items(appts))
}

// CancelAppointment deletes one of the caller's bookings.
func (h *Handler) CancelAppointment(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.appointmentSvc.Cancel(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		h.fail(c, err, "appointment_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateExport stores a JSON export of the caller's data.
func (h *Handler) CreateExport(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	receipt, err := h.exportSvc.Export(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "export_failed")
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// FetchExport streams a stored export back to its owner.
func (h *Handler) FetchExport(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	body, err := h.exportSvc.Fetch(c.Request.Context(), claims.UserID, c.Param("key"))
	if err != nil {
		h.fail(c, err, "export_failed")
		return
	}
	defer body.Close()
	c.DataFromReader(http.StatusOK, -1, "application/json", body, map[string]string{
		"Content-Disposition": `attachment; filename="wellness-export.json"`,
	})
}
