package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/teamflow/teamflow-backend/internal/hr/repository"
	"github.com/teamflow/teamflow-backend/pkg/errors"
	"github.com/teamflow/teamflow-backend/pkg/logger"
)

// HRService handles HR records, policies and the HR views
type HRService struct {
	employeeRepo  *repository.EmployeeRepository
	hrFileRepo    *repository.HRFileRepository
	leaveRepo     *repository.LeaveRepository
	timesheetRepo *repository.TimesheetRepository
	payslipRepo   *repository.PayslipRepository
	reviewRepo    *repository.ReviewRepository
	expenseRepo   *repository.ExpenseRepository
	noteRepo      *repository.NoteRepository
	policyRepo    *repository.PolicyRepository
	logger        *logger.Logger
}

// NewHRService creates a new HR service
func NewHRService(
	employeeRepo *repository.EmployeeRepository,
	hrFileRepo *repository.HRFileRepository,
	leaveRepo *repository.LeaveRepository,
	timesheetRepo *repository.TimesheetRepository,
	payslipRepo *repository.PayslipRepository,
	reviewRepo *repository.ReviewRepository,
	expenseRepo *repository.ExpenseRepository,
	noteRepo *repository.NoteRepository,
	policyRepo *repository.PolicyRepository,
	log *logger.Logger,
) *HRService {
	return &HRService{
		employeeRepo:  employeeRepo,
		hrFileRepo:    hrFileRepo,
		leaveRepo:     leaveRepo,
		timesheetRepo: timesheetRepo,
		payslipRepo:   payslipRepo,
		reviewRepo:    reviewRepo,
		expenseRepo:   expenseRepo,
		noteRepo:      noteRepo,
		policyRepo:    policyRepo,
		logger:        log,
	}
}

// UpsertHRFileRequest writes the free-form HR dossier of a user
type UpsertHRFileRequest struct {
	Data types.JSONText `json:"data" validate:"required"`
}

// CreateLeaveRequest represents a create leave record request
type CreateLeaveRequest struct {
	UserID    string    `json:"user_id" validate:"required,uuid4"`
	LeaveType string    `json:"leave_type" validate:"required"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Reason    string    `json:"reason"`
}

// CreateTimesheetRequest represents a create timesheet entry request
type CreateTimesheetRequest struct {
	UserID      string    `json:"user_id" validate:"required,uuid4"`
	EntryDate   time.Time `json:"entry_date" validate:"required"`
	HoursWorked float64   `json:"hours_worked" validate:"required,gt=0"`
}

// CreatePayslipRequest represents a create payslip request
type CreatePayslipRequest struct {
	UserID   string    `json:"user_id" validate:"required,uuid4"`
	PayDate  time.Time `json:"pay_date" validate:"required"`
	Amount   float64   `json:"amount" validate:"required,gt=0"`
	FilePath string    `json:"file_path" validate:"required"`
}

// CreateReviewRequest represents a create performance review request
type CreateReviewRequest struct {
	UserID     string    `json:"user_id" validate:"required,uuid4"`
	ReviewDate time.Time `json:"review_date" validate:"required"`
	Review     string    `json:"review" validate:"required"`
}

// CreateExpenseRequest represents a create expense claim request
type CreateExpenseRequest struct {
	UserID      string    `json:"user_id" validate:"required,uuid4"`
	ExpenseDate time.Time `json:"expense_date" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Description string    `json:"description"`
	FilePath    string    `json:"file_path"`
}

// CreateNoteRequest represents a create private note request
type CreateNoteRequest struct {
	UserID   string    `json:"user_id" validate:"required,uuid4"`
	NoteDate time.Time `json:"note_date" validate:"required"`
	Note     string    `json:"note" validate:"required"`
}

// CreatePolicyRequest represents a create policy request
type CreatePolicyRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// Settings summarise the HR configuration in use
type Settings struct {
	LeaveTypes    []string `json:"leave_types"`
	PolicyCount   int      `json:"policy_count"`
	EmployeeCount int      `json:"employee_count"`
}

// requireUser rejects references to users that do not exist
func (s *HRService) requireUser(ctx context.Context, userID string) error {
	exists, err := s.employeeRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NotFound("user")
	}
	return nil
}

// ListEmployeeRecords lists every user with their org role and HR file state
func (s *HRService) ListEmployeeRecords(ctx context.Context) ([]*repository.EmployeeRecord, error) {
	return s.employeeRepo.List(ctx)
}

// GetHRFile gets the HR dossier of a user
func (s *HRService) GetHRFile(ctx context.Context, userID string) (*repository.HRFile, error) {
	return s.hrFileRepo.GetByUser(ctx, userID)
}

// UpsertHRFile writes the HR dossier of a user
func (s *HRService) UpsertHRFile(ctx context.Context, userID string, req *UpsertHRFileRequest) (*repository.HRFile, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	file := &repository.HRFile{
		UserID: userID,
		Data:   req.Data,
	}
	if err := s.hrFileRepo.Upsert(ctx, file); err != nil {
		return nil, err
	}

	return file, nil
}

// CreateLeave creates a leave record
func (s *HRService) CreateLeave(ctx context.Context, req *CreateLeaveRequest) (*repository.LeaveRecord, error) {
	if err := s.requireUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	rec := &repository.LeaveRecord{
		UserID:    req.UserID,
		LeaveType: req.LeaveType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
	}
	if err := s.leaveRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// ListLeave lists all leave records
func (s *HRService) ListLeave(ctx context.Context) ([]*repository.LeaveRecord, error) {
	return s.leaveRepo.List(ctx)
}

// ListLeaveByUser lists the leave records of one user
func (s *HRService) ListLeaveByUser(ctx context.Context, userID string) ([]*repository.LeaveRecord, error) {
	return s.leaveRepo.ListByUser(ctx, userID)
}

// CreateTimesheet creates a timesheet entry
func (s *HRService) CreateTimesheet(ctx context.Context, req *CreateTimesheetRequest) (*repository.Timesheet, error) {
	if err := s.requireUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	ts := &repository.Timesheet{
		UserID:      req.UserID,
		EntryDate:   req.EntryDate,
		HoursWorked: req.HoursWorked,
	}
	if err := s.timesheetRepo.Create(ctx, ts); err != nil {
		return nil, err
	}

	return ts, nil
}

// ListTimesheets lists all timesheet entries
func (s *HRService) ListTimesheets(ctx context.Context) ([]*repository.Timesheet, error) {
	return s.timesheetRepo.List(ctx)
}

// ListTimesheetsByUser lists the timesheet entries of one user
func (s *HRService) ListTimesheetsByUser(ctx context.Context, userID string) ([]*repository.Timesheet, error) {
	return s.timesheetRepo.ListByUser(ctx, userID)
}

// CreatePayslip creates a payslip
func (s *HRService) CreatePayslip(ctx context.Context, req *CreatePayslipRequest) (*repository.Payslip, error) {
	if err := s.requireUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	p := &repository.Payslip{
		UserID:   req.UserID,
		PayDate:  req.PayDate,
		Amount:   req.Amount,
		FilePath: req.FilePath,
	}
	if err := s.payslipRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ListPayslips lists all payslips
func (s *HRService) ListPayslips(ctx context.Context) ([]*repository.Payslip, error) {
	return s.payslipRepo.List(ctx)
}

// ListPayslipsByUser lists the payslips of one user
func (s *HRService) ListPayslipsByUser(ctx context.Context, userID string) ([]*repository.Payslip, error) {
	return s.payslipRepo.ListByUser(ctx, userID)
}

// CreateReview creates a performance review
func (s *HRService) CreateReview(ctx context.Context, req *CreateReviewRequest) (*repository.PerformanceReview, error) {
	if err := s.requireUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	rev := &repository.PerformanceReview{
		UserID:     req.UserID,
		ReviewDate: req.ReviewDate,
		Review:     req.Review,
	}
	if err := s.reviewRepo.Create(ctx, rev); err != nil {
		return nil, err
	}

	return rev, nil
}

// ListReviews lists all performance reviews
func (s *HRService) ListReviews(ctx context.Context) ([]*repository.PerformanceReview, error) {
	return s.reviewRepo.List(ctx)
}

// ListReviewsByUser lists the performance reviews of one user
func (s *HRService) ListReviewsByUser(ctx context.Context, userID string) ([]*repository.PerformanceReview, error) {
	return s.reviewRepo.ListByUser(ctx, userID)
}

// CreateExpense creates an expense claim
func (s *HRService) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*repository.Expense, error) {
	if err := s.requireUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	e := &repository.Expense{
		UserID:      req.UserID,
		ExpenseDate: req.ExpenseDate,
		Amount:      req.Amount,
		Description: req.Description,
		FilePath:    req.FilePath,
	}
	if err := s.expenseRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// ListExpenses lists all expense claims
func (s *HRService) ListExpenses(ctx context.Context) ([]*repository.Expense, error) {
	return s.expenseRepo.List(ctx)
}

// ListExpensesByUser lists the expense claims of one user
func (s *HRService) ListExpensesByUser(ctx context.Context, userID string) ([]*repository.Expense, error) {
	return s.expenseRepo.ListByUser(ctx, userID)
}

// CreateNote creates a private note
func (s *HRService) CreateNote(ctx context.Context, req *CreateNoteRequest) (*repository.PrivateNote, error) {
	if err := s.requireUser(ctx, req.UserID); err != nil {
		return nil, err
	}

	n := &repository.PrivateNote{
		UserID:   req.UserID,
		NoteDate: req.NoteDate,
		Note:     req.Note,
	}
	if err := s.noteRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	return n, nil
}

// ListNotes lists all private notes
func (s *HRService) ListNotes(ctx context.Context) ([]*repository.PrivateNote, error) {
	return s.noteRepo.List(ctx)
}

// ListNotesByUser lists the private notes about one user
func (s *HRService) ListNotesByUser(ctx context.Context, userID string) ([]*repository.PrivateNote, error) {
	return s.noteRepo.ListByUser(ctx, userID)
}

// CreatePolicy creates a policy
func (s *HRService) CreatePolicy(ctx context.Context, req *CreatePolicyRequest) (*repository.Policy, error) {
	p := &repository.Policy{
		Title:   req.Title,
		Content: req.Content,
	}
	if err := s.policyRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// ListPolicies lists all policies
func (s *HRService) ListPolicies(ctx context.Context) ([]*repository.Policy, error) {
	return s.policyRepo.List(ctx)
}

// GetSettings summarises the HR configuration in use
func (s *HRService) GetSettings(ctx context.Context) (*Settings, error) {
	leaveTypes, err := s.leaveRepo.DistinctTypes(ctx)
	if err != nil {
		return nil, err
	}

	policyCount, err := s.policyRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Settings{
		LeaveTypes:    leaveTypes,
		PolicyCount:   policyCount,
		EmployeeCount: len(employees),
	}, nil
}
