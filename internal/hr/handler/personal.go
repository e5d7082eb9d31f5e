package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/hr/service"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// PersonalHandler serves the caller's own HR records
type PersonalHandler struct {
	hrService *service.HRService
	logger    *logger.Logger
}

// NewPersonalHandler creates a new personal handler
func NewPersonalHandler(svc *service.HRService, log *logger.Logger) *PersonalHandler {
	return &PersonalHandler{
		hrService: svc,
		logger:    log,
	}
}

func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r.Context())
	if userID == "" {
		httputil.Error(w, errors.Unauthorized("identity required"))
		return "", false
	}
	return userID, true
}

// GetHRFile gets the caller's HR dossier
func (h *PersonalHandler) GetHRFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	file, err := h.hrService.GetHRFile(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, file)
}

// UpsertHRFile writes the caller's HR dossier
func (h *PersonalHandler) UpsertHRFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req service.UpsertHRFileRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	file, err := h.hrService.UpsertHRFile(r.Context(), userID, &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, file)
}

// ListLeave lists the caller's leave records
func (h *PersonalHandler) ListLeave(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	records, err := h.hrService.ListLeaveByUser(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, records)
}

// ListTimesheets lists the caller's timesheet entries
func (h *PersonalHandler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	entries, err := h.hrService.ListTimesheetsByUser(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, entries)
}

// ListPayslips lists the caller's payslips
func (h *PersonalHandler) ListPayslips(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	payslips, err := h.hrService.ListPayslipsByUser(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payslips)
}

// ListReviews lists the caller's performance reviews
func (h *PersonalHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	reviews, err := h.hrService.ListReviewsByUser(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, reviews)
}

// ListExpenses lists the caller's expense claims
func (h *PersonalHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	expenses, err := h.hrService.ListExpensesByUser(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, expenses)
}

// ListNotes lists the notes filed about the caller
func (h *PersonalHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	notes, err := h.hrService.ListNotesByUser(r.Context(), userID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, notes)
}
