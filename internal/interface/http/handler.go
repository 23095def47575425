package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/wellness-hub/internal/domain/appointment"
	"github.com/yanqian/wellness-hub/internal/domain/auth"
	"github.com/yanqian/wellness-hub/internal/domain/companion"
	"github.com/yanqian/wellness-hub/internal/domain/export"
	"github.com/yanqian/wellness-hub/internal/domain/feedback"
	"github.com/yanqian/wellness-hub/internal/domain/wellness"
	apperrors "github.com/yanqian/wellness-hub/pkg/errors"
	"github.com/yanqian/wellness-hub/pkg/util"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc        auth.Service
	wellnessSvc    wellness.Service
	feedbackSvc    feedback.Service
	companionSvc   companion.Service
	appointmentSvc appointment.Service
	exportSvc      export.Service
	loc            *time.Location
	logger         *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	authSvc auth.Service,
	wellnessSvc wellness.Service,
	feedbackSvc feedback.Service,
	companionSvc companion.Service,
	appointmentSvc appointment.Service,
	exportSvc export.Service,
	loc *time.Location,
	logger *slog.Logger,
) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		authSvc:        authSvc,
		wellnessSvc:    wellnessSvc,
		feedbackSvc:    feedbackSvc,
		companionSvc:   companionSvc,
		appointmentSvc: appointmentSvc,
		exportSvc:      exportSvc,
		loc:            loc,
		logger:         logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// codeStatuses maps domain error codes to HTTP statuses. Codes not listed
// become 500 with the domain code preserved.
var codeStatuses = []struct {
	code   string
	status int
}{
	{"invalid_input", http.StatusBadRequest},
	{"invalid_credentials", http.StatusUnauthorized},
	{"invalid_token", http.StatusUnauthorized},
	{"forbidden", http.StatusForbidden},
	{"not_found", http.StatusNotFound},
	{"user_not_found", http.StatusNotFound},
	{"email_exists", http.StatusConflict},
	{"slot_taken", http.StatusConflict},
	{"llm_error", http.StatusBadGateway},
	{"storage_error", http.StatusInternalServerError},
}

// fromDomainError translates a service error into an HTTPError.
func fromDomainError(err error, fallbackCode string) *HTTPError {
	for _, m := range codeStatuses {
		if apperrors.IsCode(err, m.code) {
			if m.code == "invalid_input" {
				return NewHTTPError(m.status, "invalid_request", errMessage(err), err)
			}
			return NewHTTPError(m.status, m.code, errMessage(err), err)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, fallbackCode, errMessage(err), err)
}

func (h *Handler) fail(c *gin.Context, err error, fallbackCode string) {
	abortWithError(c, fromDomainError(err, fallbackCode))
}

func badRequest(c *gin.Context, err error) {
	abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
}

// timestamp parses an optional client timestamp. Offset-less values are read
// in the configured timezone. An empty value yields nil.
func (h *Handler) timestamp(c *gin.Context, raw string) (*time.Time, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}
	ts, err := util.ParseTimestamp(raw, h.loc)
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	return &ts, true
}

// currentUser returns the authenticated claims or aborts with 401.
func currentUser(c *gin.Context) (auth.Claims, bool) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing token", nil))
		return auth.Claims{}, false
	}
	return claims, true
}

// items wraps a list response, rendering nil as an empty array.
func items[T any](list []T) gin.H {
	if list == nil {
		list = []T{}
	}
	return gin.H{"items": list}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
