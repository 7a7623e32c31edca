// api/errors/ticket_errors.go
package errors

import "errors"

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrInvalidTicketData  = errors.New("invalid ticket data")
	ErrInvalidStatus      = errors.New("invalid ticket status")
	ErrStatusTransition   = errors.New("illegal ticket status transition")
	ErrTicketNumberExists = errors.New("ticket number already exists")
)
