package dto

// Envelope wraps a payload under key, e.g. {"success":true,"bookings":[...]}.
func Envelope(key string, payload any) map[string]any {
	return map[string]any{"success": true, key: payload}
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func Failure(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}

type DeletedResponse struct {
	Success bool `json:"success"`
	ID      uint `json:"id"`
}
