package apperrors

import "fmt"

// ErrLeadNotFound indicates the requested lead id does not exist.
type ErrLeadNotFound struct {
	ID int64
}

func (e *ErrLeadNotFound) Error() string {
	return fmt.Sprintf("lead with id %d not found", e.ID)
}

func NewLeadNotFound(id int64) error {
	return &ErrLeadNotFound{ID: id}
}

// ErrDuplicatePhone indicates a create collided with an existing lead on the
// normalized phone number. Phone holds the value as the caller submitted it.
type ErrDuplicatePhone struct {
	Phone string
}

func (e *ErrDuplicatePhone) Error() string {
	return fmt.Sprintf("lead with phone %s already exists", e.Phone)
}

func NewDuplicatePhone(phone string) error {
	return &ErrDuplicatePhone{Phone: phone}
}

// ValidationError reports a missing or unusable request field. It is raised
// before anything reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
