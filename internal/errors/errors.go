// Package errors defines typed business errors shared across services.
// Handlers map DomainError codes to HTTP statuses.
package errors

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
