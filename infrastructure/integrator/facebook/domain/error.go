package fbdomain

import "fmt"

// ErrorResponse is the error envelope of the Graph API
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Message      string `json:"message"`
	Type         string `json:"type"`
	Code         int    `json:"code"`
	ErrorSubcode int    `json:"error_subcode,omitempty"`
	FBTraceID    string `json:"fbtrace_id"`
}

// IsTokenExpired reports code 190, or an OAuthException with a session subcode (460, 463, 467)
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Code == 190 ||
		(e.Error.Type == "OAuthException" && (e.Error.ErrorSubcode == 460 || e.Error.ErrorSubcode == 463 || e.Error.ErrorSubcode == 467))
}

func (e *ErrorResponse) String() string {
	return fmt.Sprintf("graph error %d (%s): %s", e.Error.Code, e.Error.Type, e.Error.Message)
}
