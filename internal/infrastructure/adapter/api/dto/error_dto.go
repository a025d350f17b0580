package dto

import (
	errs "github.com/avesta-dev/backend-template/internal/domain/error"
)

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	ErrorID   string `json:"error_id,omitempty"`
	Reason    any    `json:"reason,omitempty"`
}

// FromDomainError maps a structured domain error to its API shape. The
// reason payload is exposed only for validation errors.
func FromDomainError(e *errs.Error) ErrorResponse {
	res := ErrorResponse{
		ErrorCode: e.Code,
		Message:   e.Message,
		ErrorID:   e.ID,
	}
	if e.Code == errs.CodeValidation {
		res.Reason = e.Reason
	}
	return res
}
