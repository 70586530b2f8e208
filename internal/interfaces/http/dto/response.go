package dto

// Response is the envelope every endpoint returns. Status reports
// whether the request succeeded; Errors carries failure details and is
// never set together with Data.
type Response struct {
	Status  bool   `json:"Status"`
	Message string `json:"Message,omitempty"`
	Data    any    `json:"Data,omitempty"`
	Errors  any    `json:"Errors,omitempty"`
}

// ErrorInfo is the structured form placed in Response.Errors for
// anticipated failures.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response carrying data.
func NewSuccessResponse(data any) Response {
	return Response{
		Status: true,
		Data:   data,
	}
}

// NewSuccessMessage creates a success response with a message only.
func NewSuccessMessage(message string) Response {
	return Response{
		Status:  true,
		Message: message,
	}
}

// NewErrorResponse creates a failure response with a coded error.
func NewErrorResponse(code, message string) Response {
	return Response{
		Status: false,
		Errors: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewValidationErrorResponse creates a failure response carrying
// per-field validation details.
func NewValidationErrorResponse(errors any) Response {
	return Response{
		Status: false,
		Errors: errors,
	}
}
