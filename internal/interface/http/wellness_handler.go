package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/wellness-hub/internal/domain/wellness"
)

// LogMood records a mood entry.
func (h *Handler) LogMood(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var body struct {
		wellness.MoodRequest
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req := body.MoodRequest
	if req.At, ok = h.timestamp(c, body.Date); !ok {
		return
	}
	entry, err := h.wellnessSvc.LogMood(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "mood_failed")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListMoods returns the caller's mood history, newest first.
func (h *Handler) ListMoods(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.wellnessSvc.ListMoods(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "mood_failed")
		return
	}
	c.JSON(http.StatusOK, items(entries))
}

// LogActivity records a generic tracker activity.
func (h *Handler) LogActivity(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var body struct {
		wellness.ActivityRequest
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req := body.ActivityRequest
	if req.At, ok = h.timestamp(c, body.Date); !ok {
		return
	}
	entry, err := h.wellnessSvc.LogActivity(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "activity_failed")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListActivities returns the caller's activity history.
func (h *Handler) ListActivities(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.wellnessSvc.ListActivities(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "activity_failed")
		return
	}
	c.JSON(http.StatusOK, items(entries))
}

// LogExercise records a workout.
func (h *Handler) LogExercise(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var body struct {
		wellness.ExerciseRequest
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req := body.ExerciseRequest
	if req.At, ok = h.timestamp(c, body.Date); !ok {
		return
	}
	entry, err := h.wellnessSvc.LogExercise(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "exercise_failed")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListExercises returns the caller's workouts.
func (h *Handler) ListExercises(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.wellnessSvc.ListExercises(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "exercise_failed")
		return
	}
	c.JSON(http.StatusOK, items(entries))
}

// LogMeditation records a meditation session.
func (h *Handler) LogMeditation(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var body struct {
		wellness.MeditationRequest
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req := body.MeditationRequest
	if req.At, ok = h.timestamp(c, body.Date); !ok {
		return
	}
	entry, err := h.wellnessSvc.LogMeditation(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "meditation_failed")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListMeditations returns the caller's sessions.
func (h *Handler) ListMeditations(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.wellnessSvc.ListMeditations(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "meditation_failed")
		return
	}
	c.JSON(http.StatusOK, items(entries))
}

// LogSleep records a night of sleep.
func (h *Handler) LogSleep(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var body struct {
		wellness.SleepRequest
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req := body.SleepRequest
	if req.At, ok = h.timestamp(c, body.Date); !ok {
		return
	}
	entry, err := h.wellnessSvc.LogSleep(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "sleep_failed")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListSleep returns the caller's sleep logs.
func (h *Handler) ListSleep(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.wellnessSvc.ListSleep(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "sleep_failed")
		return
	}
	c.JSON(http.StatusOK, items(entries))
}

// AddJournal stores a journal entry.
func (h *Handler) AddJournal(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	var body struct {
		wellness.JournalRequest
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	req := body.JournalRequest
	if req.At, ok = h.timestamp(c, body.Date); !ok {
		return
	}
	entry, err := h.wellnessSvc.AddJournal(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.fail(c, err, "journal_failed")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ListJournals returns the caller's journal.
func (h *Handler) ListJournals(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := h.wellnessSvc.ListJournals(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "journal_failed")
		return
	}
	c.JSON(http.StatusOK, items(entries))
}

// DeleteJournal removes one of the caller's journal entries.
func (h *Handler) DeleteJournal(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid journal id", err))
		return
	}
	if err := h.wellnessSvc.DeleteJournal(c.Request.Context(), claims.UserID, id); err != nil {
		h.fail(c, err, "journal_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// WeeklyStats returns the week-to-date cards from the dedicated logs.
func (h *Handler) WeeklyStats(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.wellnessSvc.WeeklyStats(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "stats_failed")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// WeeklyProgress returns the week-to-date cards from the activity tracker.
func (h *Handler) WeeklyProgress(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	stats, err := h.wellnessSvc.WeeklyProgress(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "stats_failed")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Dashboard returns the full derived dashboard.
func (h *Handler) Dashboard(c *gin.Context) {
	claims, ok := currentUser(c)
	if !ok {
		return
	}
	dashboard, err := h.wellnessSvc.Dashboard(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err, "dashboard_failed")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
