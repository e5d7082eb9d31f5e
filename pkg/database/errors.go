package database

import (
	"strings"

	"github.com/lib/pq"
	"github.com/teamflow/teamflow-backend/pkg/errors"
)

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error.
//
// Foreign-key violations map to NotFound: every FK in the schema references
// a record the caller named in the request, so a violation means that record
// does not exist. Violations raised after the handler-level existence checks
// passed (a delete racing a create) map the same way.
func MapPQError(err error) *errors.AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}

	switch pqErr.Code {
	// Foreign key violation (23503)
	case "23503":
		return errors.NotFound(referencedResource(pqErr))

	// Unique constraint violation (23505)
	case "23505":
		return errors.Conflict(formatConstraintMessage(pqErr))

	// Not null violation (23502)
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	// Check constraint violation (23514)
	case "23514":
		return mapCheckConstraint(pqErr)

	default:
		// Remaining class-23 codes are integrity violations we did not
		// anticipate; anything else is not a constraint problem.
		if pqErr.Code.Class() == "23" {
			return errors.Integrity("storage constraint violated: " + string(pqErr.Code))
		}
		return nil
	}
}

// referencedResource derives the referenced entity from an FK constraint name.
// Constraints follow the fk_<table>_<referenced> naming in the migrations.
func referencedResource(pqErr *pq.Error) string {
	constraint := pqErr.Constraint

	switch {
	case strings.HasSuffix(constraint, "_user"), strings.Contains(constraint, "attendee"),
		strings.Contains(constraint, "member"):
		return "user"
	case strings.HasSuffix(constraint, "_department"):
		return "department"
	case strings.HasSuffix(constraint, "_objective"):
		return "objective"
	case strings.HasSuffix(constraint, "_profile"):
		return "profile"
	default:
		return "referenced record"
	}
}

// mapCheckConstraint maps specific CHECK constraint names to user-friendly messages.
func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "role_valid"):
		return errors.Validation(map[string]string{
			"role": "must be one of: admin, customer, manager, hr",
		})

	case strings.Contains(constraint, "time_range_valid"), strings.Contains(constraint, "date_range_valid"):
		return errors.Validation(map[string]string{
			"end_time": "must not be before start time",
		})

	case strings.Contains(constraint, "amount_positive"), strings.Contains(constraint, "hours_positive"):
		return errors.Validation(map[string]string{
			"amount": "must be greater than zero",
		})

	default:
		return errors.BadRequest("data validation failed: " + constraint)
	}
}

// formatConstraintMessage creates a user-friendly message for unique constraint violations.
func formatConstraintMessage(pqErr *pq.Error) string {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "users_email"):
		return "a user with this email already exists"
	case strings.Contains(constraint, "users_username"):
		return "a user with this username already exists"
	case strings.Contains(constraint, "profiles_user"):
		return "this user already has a profile"
	case strings.Contains(constraint, "hr_files_user"):
		return "this user already has an HR file"
	default:
		return "a record with these values already exists"
	}
}
