package response

// Response is the envelope used by middleware when a request is rejected
// before reaching a handler.
type Response struct {
	Success bool        `json:"success"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Error(code, message string, details interface{}) Response {
	return Response{
		Success: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
