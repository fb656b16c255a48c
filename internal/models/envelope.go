package models

// Envelope wraps every TaleTrail API response. Data is only trustworthy when
// Success is true.
type Envelope[T any] struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    T            `json:"data"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// ErrorDetail is the optional machine-readable part of a failed envelope.
type ErrorDetail struct {
	Type    string `json:"type"`
	Details string `json:"details"`
}

// Err returns nil for a successful envelope and an *ApplicationError
// otherwise.
func (e *Envelope[T]) Err() error {
	if e.Success {
		return nil
	}
	appErr := &ApplicationError{Message: e.Message}
	if e.Error != nil {
		appErr.Type = e.Error.Type
		appErr.Details = e.Error.Details
	}
	return appErr
}

// ApplicationError is a success=false envelope delivered with a 2xx status.
type ApplicationError struct {
	Message string
	Type    string
	Details string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return "request was not successful"
	}
	return e.Message
}
