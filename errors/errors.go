package errors

import "fmt"

var (
	ErrWorkerPanic        = fmt.Errorf("worker panic")
	ErrEmptyWords         = fmt.Errorf("no words have been found")
	ErrInvalidPayload     = fmt.Errorf("invalid event payload")
	ErrUnknownEvent       = fmt.Errorf("unknown event type")
	ErrUnknownParticipant = fmt.Errorf("unknown participant")
	ErrUnknownThread      = fmt.Errorf("unknown thread")
	ErrNoActiveSession    = fmt.Errorf("no active trade session")
	ErrUnknownGroup       = fmt.Errorf("unknown item group")
	ErrSessionClosed      = fmt.Errorf("session no longer accepts events")
)
