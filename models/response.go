package models

// Response is the envelope the relay answers with. Success is 1 or 0 and
// failed responses carry a machine readable ErrorCode.
type Response struct {
	Success      int         `json:"success"`
	ErrorCode    string      `json:"error_code,omitempty"`
	ErrorDetails string      `json:"error_details,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

// ErrorResponse builds a failed Response.
func ErrorResponse(code, details string) Response {
	return Response{ErrorCode: code, ErrorDetails: details}
}
