package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs a stable error code with a human readable message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts a storage-level error into a code and message the
// API can return. Constraint details are mapped, internals are hidden.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// PostgreSQL unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStrLower)
	}

	// Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Network errors
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Storage is unavailable. Please try again later",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "An internal error occurred. Please try again later",
	}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	// School domain uniqueness is surfaced unchanged to the caller
	if strings.Contains(errLower, "domain") || strings.Contains(errLower, "idx_schools_domain") {
		return ErrorInfo{
			Code:    SchoolDomainExists,
			Message: "A school with this domain is already registered",
		}
	}

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "This email is already registered",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "The record already exists",
	}
}

func parseForeignKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "business_type_id") || strings.Contains(errLower, "fk_business_types") {
		return ErrorInfo{
			Code:    BusinessTypeNotFound,
			Message: "The referenced business type does not exist",
		}
	}
	if strings.Contains(errLower, "business_id") || strings.Contains(errLower, "fk_businesses") {
		return ErrorInfo{
			Code:    BusinessNotFound,
			Message: "The referenced business does not exist",
		}
	}
	if strings.Contains(errLower, "school_id") || strings.Contains(errLower, "fk_schools") {
		return ErrorInfo{
			Code:    SchoolNotFound,
			Message: "The referenced school does not exist",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record does not exist",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "business") {
		return "Business not found"
	}
	if strings.Contains(contextLower, "incentive") {
		return "Incentive not found"
	}
	if strings.Contains(contextLower, "school") {
		return "School not found"
	}
	if strings.Contains(contextLower, "user") {
		return "User not found"
	}

	return "The requested record was not found"
}
