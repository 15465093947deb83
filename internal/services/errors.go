package services

import (
	"errors"
	"fmt"

	"github.com/Anhcodervuive/Freelancer-Client-matching-platform-be-sub002/internal/utils"
)

// DomainError is the error surface of the mediation workflow. Every
// rule violation is raised at the point of detection and carried to the
// HTTP boundary verbatim; nothing is swallowed or retried.
type DomainError struct {
	Code    string
	Message string
	Details map[string]string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewValidationError(message string, details map[string]string) *DomainError {
	return &DomainError{Code: utils.CodeValidationError, Message: message, Details: details}
}

func NewPermissionDenied(message string) *DomainError {
	return &DomainError{Code: utils.CodePermissionDenied, Message: message}
}

func NewInvalidState(format string, args ...interface{}) *DomainError {
	return &DomainError{Code: utils.CodeInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewNotFound(resource string) *DomainError {
	return &DomainError{Code: utils.CodeNotFound, Message: resource + " not found"}
}

// AsDomainError unwraps err to a DomainError when it is one.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	if domainErr, ok := AsDomainError(err); ok {
		return domainErr.Code == utils.CodeNotFound
	}
	return false
}
