// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
    CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
    return fmt.Sprintf("campaign with ID %s not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id string) error {
    return &ErrCampaignNotFound{CampaignID: id}
}

// DispatchError is returned when the Typefully API rejects a draft request
type DispatchError struct {
    StatusCode int
    StatusText string
    Body       string
}

func (e *DispatchError) Error() string {
    return fmt.Sprintf("typefully draft request failed: %d %s: %s", e.StatusCode, e.StatusText, e.Body)
}

// Helper constructor
func NewDispatchError(statusCode int, statusText, body string) error {
    return &DispatchError{StatusCode: statusCode, StatusText: statusText, Body: body}
}

// ErrPrecondition is returned when a pipeline stage is invoked on a
// campaign that is missing a required input
type ErrPrecondition struct {
    Message string
}

func (e *ErrPrecondition) Error() string {
    return e.Message
}

// Helper constructor
func NewPrecondition(format string, args ...interface{}) error {
    return &ErrPrecondition{Message: fmt.Sprintf(format, args...)}
}

// ErrInvalidTransition is returned when a campaign status change breaks lifecycle order
type ErrInvalidTransition struct {
    From string
    To   string
}

func (e *ErrInvalidTransition) Error() string {
    return fmt.Sprintf("invalid campaign status transition from %s to %s", e.From, e.To)
}

// Helper constructor
func NewInvalidTransition(from, to string) error {
    return &ErrInvalidTransition{From: from, To: to}
}
