package handler

import (
	"net/http"

	"github.com/teamflow/teamflow-backend/internal/hr/service"
	"github.com/teamflow/teamflow-backend/pkg/httputil"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// RecordsHandler handles the HR record endpoints
type RecordsHandler struct {
	hrService *service.HRService
	logger    *logger.Logger
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(svc *service.HRService, log *logger.Logger) *RecordsHandler {
	return &RecordsHandler{
		hrService: svc,
		logger:    log,
	}
}

// ListEmployeeRecords lists every user with their org role and HR file state
func (h *RecordsHandler) ListEmployeeRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.hrService.ListEmployeeRecords(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, records)
}

// ListPayrollRecords lists all payslips with their owners
func (h *RecordsHandler) ListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	payslips, err := h.hrService.ListPayslips(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payslips)
}

// GetSettings summarises the HR configuration in use
func (h *RecordsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.hrService.GetSettings(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, settings)
}

// ListLeave lists all leave records
func (h *RecordsHandler) ListLeave(w http.ResponseWriter, r *http.Request) {
	records, err := h.hrService.ListLeave(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, records)
}

// CreateLeave creates a leave record
func (h *RecordsHandler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var req service.CreateLeaveRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	rec, err := h.hrService.CreateLeave(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, rec)
}

// ListTimesheets lists all timesheet entries
func (h *RecordsHandler) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	entries, err := h.hrService.ListTimesheets(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, entries)
}

// CreateTimesheet creates a timesheet entry
func (h *RecordsHandler) CreateTimesheet(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTimesheetRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	ts, err := h.hrService.CreateTimesheet(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, ts)
}

// ListPayslips lists all payslips
func (h *RecordsHandler) ListPayslips(w http.ResponseWriter, r *http.Request) {
	payslips, err := h.hrService.ListPayslips(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payslips)
}

// CreatePayslip creates a payslip
func (h *RecordsHandler) CreatePayslip(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePayslipRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	p, err := h.hrService.CreatePayslip(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, p)
}

// ListReviews lists all performance reviews
func (h *RecordsHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.hrService.ListReviews(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, reviews)
}

// CreateReview creates a performance review
func (h *RecordsHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req service.CreateReviewRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	rev, err := h.hrService.CreateReview(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, rev)
}

// ListExpenses lists all expense claims
func (h *RecordsHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.hrService.ListExpenses(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, expenses)
}

// CreateExpense creates an expense claim
func (h *RecordsHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req service.CreateExpenseRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	e, err := h.hrService.CreateExpense(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, e)
}

// ListNotes lists all private notes
func (h *RecordsHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.hrService.ListNotes(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, notes)
}

// CreateNote creates a private note
func (h *RecordsHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req service.CreateNoteRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	n, err := h.hrService.CreateNote(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, n)
}

// ListPolicies lists all policies
func (h *RecordsHandler) ListPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.hrService.ListPolicies(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, policies)
}

// CreatePolicy creates a policy
func (h *RecordsHandler) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePolicyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.Error(w, err)
		return
	}

	p, err := h.hrService.CreatePolicy(r.Context(), &req)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	httputil.Created(w, p)
}
